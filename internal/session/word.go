package session

// CharState classifies one displayed character of a word.
type CharState int

const (
	// CharPending has not been typed yet.
	CharPending CharState = iota
	// CharCorrect was typed and matches the target.
	CharCorrect
	// CharIncorrect was typed and differs from the target.
	CharIncorrect
	// CharExtra was typed past the end of the target.
	CharExtra
)

// Mark is a displayed character and its state.
type Mark struct {
	Char  byte
	State CharState
}

// WordEntry is one target word and the input typed for it.
type WordEntry struct {
	Target string
	typed  []byte
}

// Typed returns the input typed so far for this word.
func (w WordEntry) Typed() string {
	return string(w.typed)
}

// CorrectPrefixLen returns how many leading typed characters match the target.
func (w WordEntry) CorrectPrefixLen() int {
	n := 0
	for n < len(w.typed) && n < len(w.Target) && w.typed[n] == w.Target[n] {
		n++
	}
	return n
}

// ExtraCount returns how many characters were typed past the target length.
func (w WordEntry) ExtraCount() int {
	if extra := len(w.typed) - len(w.Target); extra > 0 {
		return extra
	}
	return 0
}

// Display returns the target followed by any extra typed characters.
func (w WordEntry) Display() string {
	if w.ExtraCount() == 0 {
		return w.Target
	}
	return w.Target + string(w.typed[len(w.Target):])
}

// Marks judges every displayed character against the current input.
func (w WordEntry) Marks() []Mark {
	n := len(w.Target)
	if len(w.typed) > n {
		n = len(w.typed)
	}
	marks := make([]Mark, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(w.Target):
			marks[i] = Mark{Char: w.typed[i], State: CharExtra}
		case i >= len(w.typed):
			marks[i] = Mark{Char: w.Target[i], State: CharPending}
		case w.typed[i] == w.Target[i]:
			marks[i] = Mark{Char: w.Target[i], State: CharCorrect}
		default:
			marks[i] = Mark{Char: w.Target[i], State: CharIncorrect}
		}
	}
	return marks
}

// judge counts correct and incorrect characters for a submitted word.
// Untyped target characters count as incorrect.
func (w WordEntry) judge() (correct, incorrect int) {
	for i, c := range w.typed {
		if i < len(w.Target) && c == w.Target[i] {
			correct++
		} else {
			incorrect++
		}
	}
	if short := len(w.Target) - len(w.typed); short > 0 {
		incorrect += short
	}
	return correct, incorrect
}
