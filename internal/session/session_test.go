package session

import (
	"math"
	"testing"
	"time"

	"github.com/typeterm/typeterm/internal/model"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// cycleSource returns words from a fixed list in order and records calls.
type cycleSource struct {
	words []string
	next  int
	seeds []*int64
	sizes []int
}

func (c *cycleSource) Generate(count int, seed *int64, _ []string) []string {
	c.seeds = append(c.seeds, seed)
	c.sizes = append(c.sizes, count)
	out := make([]string, count)
	for i := range out {
		out[i] = c.words[c.next%len(c.words)]
		c.next++
	}
	return out
}

var testPool = []string{"cat", "dog", "hi"}

func newTestSession(t *testing.T, cfg model.Config, words ...string) (*Session, *fakeClock, *cycleSource) {
	t.Helper()
	if len(words) == 0 {
		words = []string{"cat"}
	}
	clock := newFakeClock()
	src := &cycleSource{words: words}
	s, err := New(cfg, testPool, src, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, clock, src
}

func typeString(s *Session, text string) {
	for _, r := range text {
		s.HandleKey(r)
	}
}

func wordsConfig(n int) model.Config {
	return model.Config{Mode: model.ModeWords, Seconds: 60, Words: n}
}

func timeConfig(secs int) model.Config {
	return model.Config{Mode: model.ModeTime, Seconds: secs, Words: 50}
}

func TestNewRejectsEmptyPool(t *testing.T) {
	if _, err := New(wordsConfig(3), nil, &cycleSource{words: []string{"a"}}); err == nil {
		t.Fatalf("expected error for empty pool")
	}
}

func TestInitialBatchSize(t *testing.T) {
	s, _, src := newTestSession(t, wordsConfig(7))
	if s.Len() != 7 {
		t.Fatalf("expected 7 words in words mode, got %d", s.Len())
	}
	if src.seeds[0] != nil {
		t.Fatalf("expected nil seed to be passed through")
	}

	seed := int64(99)
	cfg := timeConfig(30)
	cfg.Seed = &seed
	s, _, src = newTestSession(t, cfg)
	if s.Len() != minTimeWords {
		t.Fatalf("expected %d words in time mode, got %d", minTimeWords, s.Len())
	}
	if src.seeds[0] == nil || *src.seeds[0] != seed {
		t.Fatalf("expected configured seed for initial batch")
	}
}

func TestMetricsBeforeStart(t *testing.T) {
	s, clock, _ := newTestSession(t, timeConfig(60))
	clock.Advance(10 * time.Second)
	if s.State() != NotStarted {
		t.Fatalf("expected not started, got %s", s.State())
	}
	if s.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed, got %v", s.Elapsed())
	}
	if math.Abs(s.WPM()) > 1e-9 {
		t.Fatalf("expected zero WPM, got %f", s.WPM())
	}
	if s.Accuracy() != 100.0 {
		t.Fatalf("expected 100 accuracy, got %f", s.Accuracy())
	}
	if s.RemainingSeconds() != 60 {
		t.Fatalf("expected 60 remaining seconds, got %d", s.RemainingSeconds())
	}
	s.Tick()
	if s.State() != NotStarted {
		t.Fatalf("tick must not start the session")
	}
}

func TestSubmissionAccounting(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		typed         string
		wantCorrect   int
		wantIncorrect int
	}{
		{name: "one mismatch", target: "cat", typed: "cot", wantCorrect: 2, wantIncorrect: 1},
		{name: "empty submit", target: "cat", typed: "", wantCorrect: 0, wantIncorrect: 3},
		{name: "extra chars", target: "hi", typed: "hire", wantCorrect: 2, wantIncorrect: 2},
		{name: "short", target: "cat", typed: "c", wantCorrect: 1, wantIncorrect: 2},
		{name: "exact", target: "dog", typed: "dog", wantCorrect: 3, wantIncorrect: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, wordsConfig(5), tt.target)
			typeString(s, tt.typed)
			s.HandleKey(' ')
			c := s.Counters()
			if c.Correct != tt.wantCorrect || c.Incorrect != tt.wantIncorrect {
				t.Fatalf("expected %d/%d, got %d/%d", tt.wantCorrect, tt.wantIncorrect, c.Correct, c.Incorrect)
			}
			if c.CompletedWords != 1 || s.Index() != 1 {
				t.Fatalf("expected one completed word and index 1, got %d and %d", c.CompletedWords, s.Index())
			}
			if s.Word(0).Typed() != tt.typed {
				t.Fatalf("expected submitted word to keep %q, got %q", tt.typed, s.Word(0).Typed())
			}
		})
	}
}

func TestEmptySubmitStartsSession(t *testing.T) {
	s, _, _ := newTestSession(t, wordsConfig(5))
	s.HandleKey('\r')
	if s.State() != Running {
		t.Fatalf("expected submit to start the session, got %s", s.State())
	}
	if s.Index() != 1 {
		t.Fatalf("expected index 1, got %d", s.Index())
	}
	s.HandleKey('\n')
	if s.Index() != 2 {
		t.Fatalf("expected line feed to submit, got index %d", s.Index())
	}
}

func TestBackspace(t *testing.T) {
	s, _, _ := newTestSession(t, wordsConfig(5), "cat", "dog")
	typeString(s, "ca")
	s.HandleKey(127)
	if got := s.Current().Typed(); got != "c" {
		t.Fatalf("expected %q, got %q", "c", got)
	}
	if s.Counters().Keystrokes != 3 {
		t.Fatalf("expected 3 keystrokes, got %d", s.Counters().Keystrokes)
	}

	s.HandleKey(' ')
	s.HandleKey(8)
	if s.Index() != 1 {
		t.Fatalf("backspace must not cross into the previous word")
	}
	if got := s.Word(0).Typed(); got != "c" {
		t.Fatalf("submitted word changed to %q", got)
	}
	if s.Counters().Keystrokes != 3 {
		t.Fatalf("empty backspace must not count a keystroke, got %d", s.Counters().Keystrokes)
	}
}

func TestBackspaceStartsSession(t *testing.T) {
	s, _, _ := newTestSession(t, wordsConfig(5))
	s.HandleKey(127)
	if s.State() != Running {
		t.Fatalf("expected backspace to start the session")
	}
}

func TestIgnoredInput(t *testing.T) {
	s, _, _ := newTestSession(t, wordsConfig(5))
	for _, r := range []rune{0, '\t', 27, 200, 'é'} {
		s.HandleKey(r)
	}
	if s.State() != NotStarted {
		t.Fatalf("ignored input must not start the session")
	}
	if s.Current().Typed() != "" || s.Counters().Keystrokes != 0 {
		t.Fatalf("ignored input must not change state")
	}
}

func TestStartedAtIsFirstAcceptedKey(t *testing.T) {
	cfg := wordsConfig(5)
	s, clock, _ := newTestSession(t, cfg)
	if s.Config() != cfg {
		t.Fatalf("expected config %+v, got %+v", cfg, s.Config())
	}
	if !s.StartedAt().IsZero() {
		t.Fatalf("expected zero start before input")
	}
	s.HandleKey(27)
	clock.Advance(2 * time.Second)
	want := clock.Now()
	s.HandleKey('c')
	clock.Advance(time.Second)
	s.HandleKey('a')
	if !s.StartedAt().Equal(want) {
		t.Fatalf("expected start %v, got %v", want, s.StartedAt())
	}
	if s.Elapsed() != time.Second {
		t.Fatalf("expected 1s elapsed, got %v", s.Elapsed())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want Input
	}{
		{127, InputBackspace},
		{8, InputBackspace},
		{' ', InputSubmit},
		{'\n', InputSubmit},
		{'\r', InputSubmit},
		{'a', InputChar},
		{'~', InputChar},
		{'!', InputChar},
		{'\t', InputIgnored},
		{0x7f + 1, InputIgnored},
		{'ü', InputIgnored},
	}
	for _, tt := range tests {
		if got := Classify(tt.r); got != tt.want {
			t.Fatalf("Classify(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestWordsModeTermination(t *testing.T) {
	s, clock, _ := newTestSession(t, wordsConfig(3), "cat")
	for i := 0; i < 2; i++ {
		typeString(s, "cat ")
		if s.Finished() {
			t.Fatalf("finished after %d words", i+1)
		}
	}
	clock.Advance(time.Hour)
	s.Tick()
	if s.Finished() {
		t.Fatalf("time must not end a words-mode session")
	}
	typeString(s, "cat ")
	if !s.Finished() {
		t.Fatalf("expected finish after third word")
	}
	if s.Counters().CompletedWords != 3 {
		t.Fatalf("expected 3 completed words, got %d", s.Counters().CompletedWords)
	}
	if s.Index() > s.Len() {
		t.Fatalf("index %d exceeds %d words", s.Index(), s.Len())
	}
	if s.Current() != nil {
		t.Fatalf("expected no current word after the last submission")
	}
	if s.RemainingWords() != 0 {
		t.Fatalf("expected no remaining words")
	}
}

func TestTimeModeZeroSecondsEndsOnTick(t *testing.T) {
	s, _, _ := newTestSession(t, timeConfig(0))
	s.HandleKey('c')
	s.Tick()
	if s.State() != Finished {
		t.Fatalf("expected finished, got %s", s.State())
	}
	if s.Counters().CompletedWords != 0 {
		t.Fatalf("expected no completed words, got %d", s.Counters().CompletedWords)
	}
}

func TestTimeModeExpiry(t *testing.T) {
	s, clock, _ := newTestSession(t, timeConfig(10))
	typeString(s, "cat ")
	clock.Advance(9 * time.Second)
	s.Tick()
	if s.Finished() {
		t.Fatalf("finished early")
	}
	if s.RemainingSeconds() != 1 {
		t.Fatalf("expected 1 second left, got %d", s.RemainingSeconds())
	}
	clock.Advance(time.Second)
	s.Tick()
	if !s.Finished() {
		t.Fatalf("expected finish at deadline")
	}
	ended := s.EndedAt()
	clock.Advance(time.Second)
	s.Tick()
	if !s.EndedAt().Equal(ended) {
		t.Fatalf("end time must be set once")
	}
	if s.Elapsed() != 10*time.Second {
		t.Fatalf("expected frozen elapsed of 10s, got %v", s.Elapsed())
	}
	if s.RemainingSeconds() != 0 {
		t.Fatalf("expected no remaining seconds")
	}
}

func TestKeystrokeAfterDeadlineIsDropped(t *testing.T) {
	s, clock, _ := newTestSession(t, timeConfig(5))
	s.HandleKey('c')
	clock.Advance(6 * time.Second)
	s.HandleKey('a')
	if !s.Finished() {
		t.Fatalf("expected keystroke to detect expiry")
	}
	if got := s.Word(0).Typed(); got != "c" {
		t.Fatalf("expected late key to be dropped, got %q", got)
	}
}

func TestFinishedIgnoresKeys(t *testing.T) {
	s, _, _ := newTestSession(t, wordsConfig(1), "cat")
	typeString(s, "cat ")
	before := s.Counters()
	typeString(s, "dog ")
	s.HandleKey(127)
	if s.Counters() != before {
		t.Fatalf("finished session changed counters: %+v -> %+v", before, s.Counters())
	}
}

func TestTimeModeExtendsStream(t *testing.T) {
	s, clock, src := newTestSession(t, timeConfig(600), "cat", "dog")
	prevIndex := s.Index()
	for i := 0; i < minTimeWords+extendBatch+5; i++ {
		s.HandleKey(' ')
		clock.Advance(time.Millisecond)
		if s.Index() < prevIndex {
			t.Fatalf("index decreased from %d to %d", prevIndex, s.Index())
		}
		if s.Index() >= s.Len() {
			t.Fatalf("index %d not below %d words", s.Index(), s.Len())
		}
		prevIndex = s.Index()
	}
	if s.Len() != minTimeWords+2*extendBatch {
		t.Fatalf("expected two extensions, got %d words", s.Len())
	}
	if len(src.sizes) != 3 || src.sizes[1] != extendBatch {
		t.Fatalf("unexpected generate calls: %v", src.sizes)
	}
	for _, seed := range src.seeds[1:] {
		if seed != nil {
			t.Fatalf("extension must draw unseeded")
		}
	}
}

func TestWPMAndAccuracy(t *testing.T) {
	s, clock, _ := newTestSession(t, timeConfig(60), "hello")
	typeString(s, "hello")
	clock.Advance(6 * time.Second)
	s.HandleKey(' ')
	typeString(s, "hxllo ")
	// 9 correct chars over 6 seconds: (9/5) / 0.1 min.
	if got := s.WPM(); math.Abs(got-18) > 1e-9 {
		t.Fatalf("expected 18 WPM, got %f", got)
	}
	if got := s.Accuracy(); math.Abs(got-90) > 1e-9 {
		t.Fatalf("expected 90%% accuracy, got %f", got)
	}
}

func TestViewStartRoundTrip(t *testing.T) {
	s, _, _ := newTestSession(t, wordsConfig(5))
	s.SetViewStart(3)
	if s.ViewStart() != 3 {
		t.Fatalf("expected view start 3, got %d", s.ViewStart())
	}
}

func TestStateString(t *testing.T) {
	if NotStarted.String() != "not started" || Running.String() != "running" || Finished.String() != "finished" {
		t.Fatalf("unexpected state names")
	}
}
