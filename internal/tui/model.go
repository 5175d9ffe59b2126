// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/typeterm/typeterm/internal/layout"
	"github.com/typeterm/typeterm/internal/metrics"
	"github.com/typeterm/typeterm/internal/model"
	"github.com/typeterm/typeterm/internal/session"
)

// tickInterval is how often time-mode expiry is re-evaluated without input.
const tickInterval = 50 * time.Millisecond

// Rows above the typing area: header, stats, hint.
const headerRows = 3

type tickMsg time.Time

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	pool   []string
	source session.WordSource
	opts   []session.Option
	keys   KeyMap

	session *session.Session

	width  int
	height int

	// per-second WPM history of the current session
	samples     []float64
	sampledSecs int

	err error
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	headerStyle      = lipgloss.NewStyle().Bold(true)
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	resultStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// NewModel constructs a typing TUI model with a fresh session.
func NewModel(cfg model.Config, pool []string, source session.WordSource, opts ...session.Option) (*Model, error) {
	m := &Model{
		config: cfg,
		pool:   pool,
		source: source,
		opts:   opts,
		keys:   DefaultKeyMap(),
	}
	if err := m.restart(); err != nil {
		return nil, err
	}
	return m, nil
}

// Session returns the active session.
func (m *Model) Session() *session.Session {
	return m.session
}

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.session.Tick()
		m.sample()
		return m, tick()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Restart) || m.session.Finished() {
			if err := m.restart(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			return m, nil
		}
		for _, r := range keyRunes(msg) {
			m.session.HandleKey(r)
		}
		m.sample()
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lines := []string{
		" " + headerStyle.Render(m.renderHeader()),
		" " + m.renderStats(),
	}

	bodyHeight := m.height - headerRows
	switch m.session.State() {
	case session.Finished:
		lines = append(lines, "")
		if bodyHeight > 0 {
			lines = append(lines, lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderResults()))
		}
	default:
		hint := ""
		if !m.session.Started() {
			hint = hintStyle.Render("Start typing to begin...")
		}
		lines = append(lines, " "+hint)
		lines = append(lines, m.renderTypingArea(m.width-2, m.height-headerRows-1)...)
	}

	view := strings.Join(lines, "\n")
	return lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(view)
}

func (m *Model) renderHeader() string {
	cfg := m.session.Config()
	mode := "Mode: " + strings.ToUpper(string(cfg.Mode))
	var left string
	if cfg.Mode == model.ModeTime {
		left = fmt.Sprintf("%02ds left", m.session.RemainingSeconds())
	} else {
		left = fmt.Sprintf("%d words left", m.session.RemainingWords())
	}
	return strings.Join([]string{mode, left, m.keys.hint()}, " | ")
}

func (m *Model) renderStats() string {
	return fmt.Sprintf("WPM: %.1f | Acc: %.0f%% | Time: %02ds",
		m.session.WPM(),
		m.session.Accuracy(),
		int(m.session.Elapsed()/time.Second),
	)
}

func (m *Model) renderTypingArea(width, height int) []string {
	lay, err := layout.Follow(m.session, width, height)
	if err != nil {
		if errors.Is(err, layout.ErrViewportTooSmall) {
			return []string{" " + incorrectStyle.Render("viewport too small")}
		}
		return []string{" " + incorrectStyle.Render(err.Error())}
	}
	rows := renderWords(lay, m.session)
	for i := range rows {
		rows[i] = " " + rows[i]
	}
	return rows
}

func (m *Model) renderResults() string {
	c := m.session.Counters()
	lines := []string{
		resultStyle.Render(fmt.Sprintf("Results · WPM %.1f | Acc %.0f%%", m.session.WPM(), m.session.Accuracy())),
		"",
	}
	lines = append(lines, formatTable(nil, [][]string{
		{"Correct chars", fmt.Sprintf("%d", c.Correct)},
		{"Incorrect chars", fmt.Sprintf("%d", c.Incorrect)},
		{"Keystrokes", fmt.Sprintf("%d", c.Keystrokes)},
		{"Words", fmt.Sprintf("%d", c.CompletedWords)},
		{"Time", fmt.Sprintf("%.1fs", m.session.Elapsed().Seconds())},
	}, map[int]bool{1: true})...)
	if spark := metrics.Sparkline(m.samples); spark != "" {
		lines = append(lines, "", "WPM "+spark)
	}
	restart := m.keys.Restart.Help().Key
	quit := m.keys.Quit.Help().Key
	lines = append(lines, "", hintStyle.Render(fmt.Sprintf("Press %s to restart or %s to quit", restart, quit)))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// restart discards the current session and builds a new one.
func (m *Model) restart() error {
	s, err := session.New(m.config, m.pool, m.source, m.opts...)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	m.session = s
	m.samples = nil
	m.sampledSecs = 0
	return nil
}

// sample records the WPM once for every whole second the session has run.
func (m *Model) sample() {
	if !m.session.Started() {
		return
	}
	secs := int(m.session.Elapsed() / time.Second)
	for m.sampledSecs < secs {
		m.samples = append(m.samples, m.session.WPM())
		m.sampledSecs++
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// keyRunes maps a key event to the raw characters the session classifies.
func keyRunes(msg tea.KeyMsg) []rune {
	switch msg.Type {
	case tea.KeyBackspace:
		return []rune{127}
	case tea.KeyCtrlH:
		return []rune{8}
	case tea.KeyEnter:
		return []rune{'\r'}
	case tea.KeyCtrlJ:
		return []rune{'\n'}
	case tea.KeySpace:
		return []rune{' '}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		return msg.Runes
	default:
		return nil
	}
}
