package wordlist

// Usable reports whether a word can be typed with single-byte printable input.
// Spaces are rejected because they submit the current word.
func Usable(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch <= ' ' || ch > '~' {
			return false
		}
	}
	return true
}
