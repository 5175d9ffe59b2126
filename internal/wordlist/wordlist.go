// Package wordlist loads word pools from files.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyWordList reports a word list without usable words.
var ErrEmptyWordList = errors.New("word list is empty")

// WordListError describes a word list that could not be loaded.
type WordListError struct {
	Path string
	Err  error
}

func (e *WordListError) Error() string {
	return fmt.Sprintf("failed to load word list %s: %v", e.Path, e.Err)
}

func (e *WordListError) Unwrap() error {
	return e.Err
}

// LoadPool reads one word per line from the provided file path.
// Lines that are blank or not usable words are skipped.
func LoadPool(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &WordListError{Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	words, err := parse(bufio.NewScanner(file))
	if err != nil {
		return nil, &WordListError{Path: path, Err: err}
	}
	return words, nil
}

// Resolve returns the default pool when path is empty and the file pool otherwise.
func Resolve(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadPool(path)
}

func parse(scanner *bufio.Scanner) ([]string, error) {
	var words []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !Usable(line) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	return words, nil
}
