package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/typeterm/typeterm/internal/layout"
	"github.com/typeterm/typeterm/internal/session"
)

// wordRole is where a word sits relative to the cursor.
type wordRole int

const (
	roleSubmitted wordRole = iota
	roleCurrent
	roleUpcoming
)

func roleOf(idx, current int) wordRole {
	switch {
	case idx < current:
		return roleSubmitted
	case idx == current:
		return roleCurrent
	default:
		return roleUpcoming
	}
}

func renderWord(w session.WordEntry, role wordRole) string {
	var b strings.Builder
	for _, mark := range w.Marks() {
		style := pendingStyle
		switch mark.State {
		case session.CharCorrect:
			style = correctStyle
		case session.CharIncorrect, session.CharExtra:
			style = incorrectStyle
		case session.CharPending:
			if role == roleCurrent {
				style = currentWordStyle
			}
		}
		b.WriteString(style.Render(string(mark.Char)))
	}
	return b.String()
}

// renderWords draws every placed word at its row and column.
func renderWords(lay layout.Layout, s *session.Session) []string {
	rows := make([]strings.Builder, lay.Rows())
	cols := make([]int, lay.Rows())
	for _, p := range lay.Positions {
		b := &rows[p.Row]
		if gap := p.Col - cols[p.Row]; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		word := s.Word(p.Index)
		b.WriteString(renderWord(word, roleOf(p.Index, s.Index())))
		cols[p.Row] = p.Col + runewidth.StringWidth(word.Display())
	}
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return lines
}
