// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Mode selects how a test terminates.
type Mode string

const (
	// ModeTime ends the test after a fixed number of seconds.
	ModeTime Mode = "time"
	// ModeWords ends the test after a fixed number of submitted words.
	ModeWords Mode = "words"
)

// ParseMode converts a CLI or config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTime:
		return ModeTime, nil
	case ModeWords:
		return ModeWords, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected time or words)", s)
	}
}

// Config defines test settings.
type Config struct {
	Mode         Mode
	Seconds      int
	Words        int
	Seed         *int64
	WordListPath string
}

// Validate checks the ranges accepted on the command line.
func (c Config) Validate() error {
	if c.Mode != ModeTime && c.Mode != ModeWords {
		return fmt.Errorf("--mode must be time or words")
	}
	if c.Seconds <= 0 {
		return fmt.Errorf("--seconds must be > 0")
	}
	if c.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	return nil
}
