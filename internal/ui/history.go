package ui

import "github.com/piwi3910/PipeLoad/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the editable order state at a point in time.
type Snapshot struct {
	Pipes     []model.Pipe
	Container model.Container
	Settings  model.Settings
	Label     string // Human-readable description (e.g. "Add Pipe")
}

// History manages undo/redo stacks of project snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	// Pop from undo
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	// Push current state onto redo
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	// Pop from redo
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	// Push current state onto undo
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// copyPipes returns a copy of a pipes slice.
func copyPipes(pipes []model.Pipe) []model.Pipe {
	if pipes == nil {
		return nil
	}
	cp := make([]model.Pipe, len(pipes))
	copy(cp, pipes)
	return cp
}

// MakeSnapshot creates a snapshot from the current project state with a label.
func MakeSnapshot(proj model.Project, label string) Snapshot {
	return Snapshot{
		Pipes:     copyPipes(proj.Pipes),
		Container: proj.Container,
		Settings:  proj.Settings,
		Label:     label,
	}
}

// Apply restores the snapshot into proj and drops the stale result.
func (s Snapshot) Apply(proj *model.Project) {
	proj.Pipes = copyPipes(s.Pipes)
	if proj.Pipes == nil {
		proj.Pipes = []model.Pipe{}
	}
	proj.Container = s.Container
	proj.Settings = s.Settings
	proj.Result = nil
}
