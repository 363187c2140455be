// Package undo keeps a bounded undo/redo history of serialized grids.
package undo

import "github.com/gammazero/deque"

// DefaultDepth is the number of undo steps kept when none is configured.
const DefaultDepth = 100

// History stores grid snapshots. Record is called with the state before a
// change; Undo and Redo exchange the current state for a stored one.
type History struct {
	depth int
	undo  deque.Deque[string]
	redo  deque.Deque[string]
}

// New returns a History keeping at most depth undo steps. Depth below 1
// selects DefaultDepth.
func New(depth int) *History {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Record pushes the state preceding a change and clears the redo stack.
// The oldest snapshot is dropped once depth is exceeded.
func (h *History) Record(before string) {
	h.undo.PushBack(before)
	for h.undo.Len() > h.depth {
		h.undo.PopFront()
	}
	h.redo.Clear()
}

// Undo returns the previous state and remembers current for Redo.
func (h *History) Undo(current string) (string, bool) {
	if h.undo.Len() == 0 {
		return "", false
	}
	prev := h.undo.PopBack()
	h.redo.PushBack(current)
	return prev, true
}

// Redo returns the state undone last and remembers current for Undo.
func (h *History) Redo(current string) (string, bool) {
	if h.redo.Len() == 0 {
		return "", false
	}
	next := h.redo.PopBack()
	h.undo.PushBack(current)
	return next, true
}

// CanUndo reports whether Undo would return a state.
func (h *History) CanUndo() bool { return h.undo.Len() > 0 }

// CanRedo reports whether Redo would return a state.
func (h *History) CanRedo() bool { return h.redo.Len() > 0 }
