// Package tui is the interactive terminal editor for a crossword grid.
//
// The Editor is the grid's rendering and input collaborator: it draws the
// cells with tcell, forwards keys to the focused cell's Handler and receives
// focus requests and entry totals back from the grid.
package tui

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/xgrid/internal/undo"
	"github.com/mesh-intelligence/xgrid/pkg/grid"
)

// Status messages.
const (
	msgCopied      = "Grid copied to clipboard"
	msgCopyFailed  = "Failed to copy the grid"
	msgConfirm     = "Reset the grid? Press y to confirm"
	msgResetDone   = "Grid reset"
	msgResetCancel = "Reset cancelled"
	msgNothingUndo = "Nothing to undo"
	msgNothingRedo = "Nothing to redo"
)

// Layout.
const (
	cellWidth  = 3
	cellHeight = 2
	blockRune  = '█'
)

// Clipboard receives the serialized grid on copy.
type Clipboard interface {
	WriteAll(text string) error
}

// Options configures an Editor.
type Options struct {
	// History holds undo/redo snapshots. Nil uses undo.New(undo.DefaultDepth).
	History *undo.History

	// Clipboard is used by the copy key. Nil disables copying.
	Clipboard Clipboard

	// Logger receives debug output. Nil discards it.
	Logger logrus.FieldLogger
}

// Editor draws a grid on a tcell screen and turns key presses into grid
// operations.
type Editor struct {
	screen  tcell.Screen
	grid    *grid.Grid
	history *undo.History
	clip    Clipboard
	log     logrus.FieldLogger

	row, col     int
	total        int
	status       string
	confirmReset bool
}

// New creates an editor drawing on screen. The screen must already be
// initialized. Attach the grid with SetGrid before Run; the editor is
// created first because the grid takes it as Focuser and change listener.
func New(screen tcell.Screen, opts Options) *Editor {
	history := opts.History
	if history == nil {
		history = undo.New(undo.DefaultDepth)
	}
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Editor{
		screen:  screen,
		history: history,
		clip:    opts.Clipboard,
		log:     log,
	}
}

// SetGrid attaches the grid to edit.
func (ed *Editor) SetGrid(g *grid.Grid) {
	ed.grid = g
	g.Handler(0, 0).Focus()
	across, down := g.EntryCounts()
	ed.total = across + down
}

// Focus moves the cursor to (row, col). It implements grid.Focuser.
func (ed *Editor) Focus(row, col int) {
	ed.row, ed.col = row, col
}

// OnChange records the entry totals. Pass it as grid.Options.OnChange.
func (ed *Editor) OnChange(across, down int) {
	ed.total = across + down
}

// Cursor returns the focused position.
func (ed *Editor) Cursor() (row, col int) { return ed.row, ed.col }

// Status returns the message shown under the totals line.
func (ed *Editor) Status() string { return ed.status }

// Total returns the displayed entry total.
func (ed *Editor) Total() int { return ed.total }

// Run draws and handles events until the user quits.
func (ed *Editor) Run() {
	for {
		ed.Draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		if ev == nil {
			return
		}
		if ed.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent applies one event and reports whether the editor should quit.
func (ed *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		ed.screen.Sync()
	case *tcell.EventKey:
		return ed.handleKey(ev)
	}
	return false
}

func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	if ed.confirmReset {
		ed.confirmReset = false
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y') {
			ed.apply(ed.grid.Reset)
			ed.status = msgResetDone
		} else {
			ed.status = msgResetCancel
		}
		return false
	}

	ed.status = ""
	h := ed.grid.Handler(ed.row, ed.col)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		h.Move(grid.Up)
	case tcell.KeyDown:
		h.Move(grid.Down)
	case tcell.KeyLeft:
		h.Move(grid.Left)
	case tcell.KeyRight:
		h.Move(grid.Right)
	case tcell.KeyCtrlZ:
		ed.undo()
	case tcell.KeyCtrlY:
		ed.redo()
	case tcell.KeyRune:
		cell := ed.grid.CellAt(ed.row, ed.col)
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			ed.apply(func() { h.ToggleWhite(!cell.IsWhite()) })
		case 'o':
			ed.apply(func() { h.ToggleCircle(!cell.IsCircle()) })
		case 'u':
			ed.undo()
		case 'r':
			ed.redo()
		case 'R':
			ed.confirmReset = true
			ed.status = msgConfirm
		case 'c':
			ed.copyGrid()
		}
	}
	return false
}

// apply runs a mutation, recording the previous state for undo when the
// pattern actually changed.
func (ed *Editor) apply(mutate func()) {
	before := ed.grid.Serialize()
	mutate()
	if ed.grid.Serialize() != before {
		ed.history.Record(before)
	}
}

func (ed *Editor) undo() {
	prev, ok := ed.history.Undo(ed.grid.Serialize())
	if !ok {
		ed.status = msgNothingUndo
		return
	}
	ed.grid.Restore(prev)
}

func (ed *Editor) redo() {
	next, ok := ed.history.Redo(ed.grid.Serialize())
	if !ok {
		ed.status = msgNothingRedo
		return
	}
	ed.grid.Restore(next)
}

func (ed *Editor) copyGrid() {
	if ed.clip == nil {
		ed.status = msgCopyFailed
		return
	}
	if err := ed.clip.WriteAll(ed.grid.Serialize()); err != nil {
		ed.log.WithError(err).Warn("clipboard write failed")
		ed.status = msgCopyFailed
		return
	}
	ed.status = msgCopied
}

// Draw renders the grid, the totals line and the status message.
func (ed *Editor) Draw() {
	ed.screen.Clear()

	white := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	black := tcell.StyleDefault.Foreground(tcell.ColorGray)
	focused := tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)

	size := ed.grid.Size()
	for r := range size {
		for c := range size {
			cell := ed.grid.CellAt(r, c)
			x, y := c*cellWidth, r*cellHeight

			style := white
			if !cell.IsWhite() {
				style = black
			}
			if r == ed.row && c == ed.col {
				style = focused
			}

			top := []rune("   ")
			bottom := []rune("   ")
			switch {
			case !cell.IsWhite():
				top = []rune{blockRune, blockRune, blockRune}
				bottom = top
			default:
				if n, ok := cell.Number(); ok {
					copy(top, []rune(fmt.Sprintf("%-3d", n)))
				}
				if cell.IsCircle() {
					bottom[1] = 'o'
				}
			}
			for i := range cellWidth {
				ed.screen.SetContent(x+i, y, top[i], nil, style)
				ed.screen.SetContent(x+i, y+1, bottom[i], nil, style)
			}
		}
	}

	ed.drawText(0, size*cellHeight, fmt.Sprintf("Total entries: %d", ed.total))
	ed.drawText(0, size*cellHeight+1, ed.status)
}

func (ed *Editor) drawText(x, y int, text string) {
	for i, r := range []rune(text) {
		ed.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
