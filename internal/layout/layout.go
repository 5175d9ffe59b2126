// Package layout wraps the word stream into a viewport and keeps the
// current word visible.
package layout

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// maxScrollAttempts bounds the scroll-follow search.
const maxScrollAttempts = 1000

// ErrViewportTooSmall reports that the current word cannot be placed.
var ErrViewportTooSmall = errors.New("viewport too small")

// Document is the word stream seen by the layout engine.
type Document interface {
	Len() int
	Text(i int) string
	Index() int
	ViewStart() int
	SetViewStart(i int)
}

// Position is where a word is drawn, relative to the viewport origin.
type Position struct {
	Index int
	Row   int
	Col   int
}

// Layout is the result of one wrap pass.
type Layout struct {
	Start      int
	Positions  []Position
	Current    Position
	HasCurrent bool
}

// Rows returns the number of rows holding at least one word.
func (l Layout) Rows() int {
	if len(l.Positions) == 0 {
		return 0
	}
	return l.Positions[len(l.Positions)-1].Row + 1
}

// Wrap fills rows greedily starting at word start. Words after the first on a
// row are preceded by one space; a word wider than the viewport still takes a
// row of its own.
func Wrap(doc Document, start, width, height int) Layout {
	out := Layout{Start: start}
	if height <= 0 || width <= 0 {
		return out
	}
	current := doc.Index()
	row, col := 0, 0
	lineUsed := false
	for i := start; i < doc.Len(); i++ {
		w := runewidth.StringWidth(doc.Text(i))
		gap := 0
		if lineUsed {
			gap = 1
		}
		if lineUsed && col+gap+w > width {
			row++
			if row >= height {
				break
			}
			col, gap = 0, 0
		}
		col += gap
		pos := Position{Index: i, Row: row, Col: col}
		out.Positions = append(out.Positions, pos)
		if i == current {
			out.Current = pos
			out.HasCurrent = true
		}
		col += w
		lineUsed = true
	}
	return out
}

// Follow finds the first start at or after doc.ViewStart() whose layout
// contains the current word, and stores it back on doc. Starts too far behind
// the current word to share a viewport with it are skipped.
func Follow(doc Document, width, height int) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d", ErrViewportTooSmall, width, height)
	}
	start := doc.ViewStart()
	if current := doc.Index(); start > current {
		start = current
	}
	// A row holds at most (width+1)/2 words, so earlier starts can never
	// reach the current word.
	if lo := doc.Index() - ((width+1)/2)*height; start < lo {
		start = lo
	}
	if lo := doc.Index() - (maxScrollAttempts - 1); start < lo {
		start = lo
	}
	if start < 0 {
		start = 0
	}
	for attempt := 0; attempt < maxScrollAttempts; attempt++ {
		lay := Wrap(doc, start+attempt, width, height)
		if lay.HasCurrent {
			doc.SetViewStart(lay.Start)
			return lay, nil
		}
	}
	return Layout{}, fmt.Errorf("%w: word %d does not fit %dx%d", ErrViewportTooSmall, doc.Index(), width, height)
}
