package session

// Input is the category of a keystroke.
type Input int

const (
	// InputIgnored is consumed without changing state.
	InputIgnored Input = iota
	// InputBackspace deletes the last typed character of the current word.
	InputBackspace
	// InputSubmit finalizes the current word.
	InputSubmit
	// InputChar appends a printable character.
	InputChar
)

// Classify maps a key to its input category. Backspace is checked first,
// then submit keys, then printable ASCII.
func Classify(r rune) Input {
	switch {
	case r == 127 || r == 8:
		return InputBackspace
	case r == ' ' || r == '\n' || r == '\r':
		return InputSubmit
	case r >= ' ' && r <= '~':
		return InputChar
	default:
		return InputIgnored
	}
}
