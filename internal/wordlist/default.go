package wordlist

import (
	"bufio"
	_ "embed"
	"strings"
)

//go:embed data/english.txt
var englishWords string

// Default returns the embedded English word pool.
func Default() []string {
	words, err := parse(bufio.NewScanner(strings.NewReader(englishWords)))
	if err != nil {
		panic("wordlist: embedded pool is unusable: " + err.Error())
	}
	return words
}
