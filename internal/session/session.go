// Package session implements the typing test state machine.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/typeterm/typeterm/internal/metrics"
	"github.com/typeterm/typeterm/internal/model"
)

const (
	// extendBatch is how many words are appended when the stream runs out.
	extendBatch = 100
	// minTimeWords is the smallest initial batch in time mode.
	minTimeWords = 200
)

// State is the lifecycle stage of a session.
type State int

const (
	// NotStarted waits for the first accepted keystroke.
	NotStarted State = iota
	// Running accepts keystrokes until the test ends.
	Running
	// Finished is terminal.
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// WordSource supplies target words.
type WordSource interface {
	Generate(count int, seed *int64, pool []string) []string
}

// Counters are the running totals of a session.
type Counters struct {
	Keystrokes     int
	Correct        int
	Incorrect      int
	CompletedWords int
}

// Session is the mutable state of one typing test attempt.
type Session struct {
	cfg    model.Config
	pool   []string
	source WordSource
	now    func() time.Time

	words     []WordEntry
	index     int
	viewStart int

	startedAt time.Time
	endedAt   time.Time
	counters  Counters
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now as the session clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New builds a session with its initial word batch drawn using cfg.Seed.
func New(cfg model.Config, pool []string, source WordSource, opts ...Option) (*Session, error) {
	if len(pool) == 0 {
		return nil, errors.New("word pool is empty")
	}
	if source == nil {
		return nil, errors.New("word source is nil")
	}
	s := &Session{
		cfg:    cfg,
		pool:   pool,
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	count := cfg.Words
	if cfg.Mode == model.ModeTime && count < minTimeWords {
		count = minTimeWords
	}
	targets := source.Generate(count, cfg.Seed, pool)
	if len(targets) == 0 {
		return nil, fmt.Errorf("word source returned no words for count %d", count)
	}
	s.words = make([]WordEntry, 0, len(targets))
	s.appendTargets(targets)
	return s, nil
}

// HandleKey feeds one keystroke to the session.
func (s *Session) HandleKey(r rune) {
	if s.Finished() {
		return
	}
	s.checkDeadline()
	if s.Finished() {
		return
	}
	input := Classify(r)
	if input == InputIgnored {
		return
	}
	if !s.Started() {
		s.startedAt = s.now()
	}

	switch input {
	case InputBackspace:
		cur := s.current()
		if len(cur.typed) > 0 {
			cur.typed = cur.typed[:len(cur.typed)-1]
			s.counters.Keystrokes++
		}
	case InputSubmit:
		s.submit()
	case InputChar:
		cur := s.current()
		cur.typed = append(cur.typed, byte(r))
		s.counters.Keystrokes++
	}
	s.checkDeadline()
}

// Tick re-evaluates time-mode expiry without input.
func (s *Session) Tick() {
	s.checkDeadline()
}

func (s *Session) submit() {
	correct, incorrect := s.current().judge()
	s.counters.Correct += correct
	s.counters.Incorrect += incorrect
	s.counters.CompletedWords++
	s.index++

	if s.cfg.Mode == model.ModeWords && s.counters.CompletedWords >= s.cfg.Words {
		s.finish()
		return
	}
	if s.index >= len(s.words) {
		s.appendTargets(s.source.Generate(extendBatch, nil, s.pool))
	}
	if s.index >= len(s.words) {
		panic(fmt.Sprintf("session: index %d past %d words after extension", s.index, len(s.words)))
	}
}

func (s *Session) appendTargets(targets []string) {
	for _, t := range targets {
		s.words = append(s.words, WordEntry{Target: t})
	}
}

func (s *Session) checkDeadline() {
	if s.cfg.Mode != model.ModeTime || s.State() != Running {
		return
	}
	if s.Elapsed() >= time.Duration(s.cfg.Seconds)*time.Second {
		s.finish()
	}
}

func (s *Session) finish() {
	if !s.endedAt.IsZero() {
		return
	}
	s.endedAt = s.now()
}

// current returns the word being typed. Only valid while not finished.
func (s *Session) current() *WordEntry {
	if s.index >= len(s.words) {
		panic(fmt.Sprintf("session: index %d out of range of %d words", s.index, len(s.words)))
	}
	return &s.words[s.index]
}

// State reports the lifecycle stage.
func (s *Session) State() State {
	switch {
	case !s.endedAt.IsZero():
		return Finished
	case !s.startedAt.IsZero():
		return Running
	default:
		return NotStarted
	}
}

// Started reports whether the first keystroke was accepted.
func (s *Session) Started() bool {
	return !s.startedAt.IsZero()
}

// Finished reports whether the termination condition fired.
func (s *Session) Finished() bool {
	return !s.endedAt.IsZero()
}

// Config returns the test parameters.
func (s *Session) Config() model.Config {
	return s.cfg
}

// StartedAt returns the start time, zero before start.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// EndedAt returns the end time, zero until finished.
func (s *Session) EndedAt() time.Time {
	return s.endedAt
}

// Counters returns a copy of the running totals.
func (s *Session) Counters() Counters {
	return s.counters
}

// Index returns the position of the word being typed.
func (s *Session) Index() int {
	return s.index
}

// Len returns the number of words in the stream.
func (s *Session) Len() int {
	return len(s.words)
}

// Word returns the entry at i.
func (s *Session) Word(i int) WordEntry {
	return s.words[i]
}

// Current returns the word being typed, or nil once the stream is exhausted.
func (s *Session) Current() *WordEntry {
	if s.index >= len(s.words) {
		return nil
	}
	w := s.words[s.index]
	return &w
}

// Text returns the display text of word i for layout.
func (s *Session) Text(i int) string {
	return s.words[i].Display()
}

// ViewStart returns the first word index the layout should try.
func (s *Session) ViewStart() int {
	return s.viewStart
}

// SetViewStart stores the first visible word chosen by the layout engine.
func (s *Session) SetViewStart(i int) {
	s.viewStart = i
}

// Elapsed returns the running or final test duration.
func (s *Session) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.endedAt
	if end.IsZero() {
		end = s.now()
	}
	if d := end.Sub(s.startedAt); d > 0 {
		return d
	}
	return 0
}

// WPM returns words per minute over correct characters.
func (s *Session) WPM() float64 {
	return metrics.WPM(s.counters.Correct, s.Elapsed())
}

// Accuracy returns the percentage of judged characters that were correct.
func (s *Session) Accuracy() float64 {
	return metrics.Accuracy(s.counters.Correct, s.counters.Incorrect)
}

// RemainingSeconds returns seconds left in time mode and 0 otherwise.
func (s *Session) RemainingSeconds() int {
	if s.cfg.Mode != model.ModeTime {
		return 0
	}
	return metrics.Remaining(time.Duration(s.cfg.Seconds)*time.Second, s.Elapsed())
}

// RemainingWords returns words left in words mode and 0 otherwise.
func (s *Session) RemainingWords() int {
	if s.cfg.Mode != model.ModeWords {
		return 0
	}
	if left := s.cfg.Words - s.counters.CompletedWords; left > 0 {
		return left
	}
	return 0
}
