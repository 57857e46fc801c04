package ui

import (
	"testing"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func projectWith(pipes ...model.Pipe) model.Project {
	proj := model.NewProject()
	proj.Pipes = pipes
	return proj
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	// Initial state, before adding a pipe
	h.Push(MakeSnapshot(projectWith(), "initial"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	current := MakeSnapshot(projectWith(model.NewPipe("PE 110", 11, 9, 1200, 120, 3.35)), "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Pipes) != 0 {
		t.Errorf("expected 0 pipes after undo, got %d", len(restored.Pipes))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()
	p1 := model.NewPipe("PE 110", 11, 9, 1200, 120, 3.35)
	p2 := model.NewPipe("PE 160", 16, 13.08, 1200, 60, 7)

	h.Push(MakeSnapshot(projectWith(), "empty"))
	h.Push(MakeSnapshot(projectWith(p1), "one pipe"))

	current := MakeSnapshot(projectWith(p1, p2), "two pipes")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Pipes) != 1 {
		t.Errorf("expected 1 pipe, got %d", len(restored.Pipes))
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Pipes) != 2 {
		t.Errorf("expected 2 pipes after redo, got %d", len(redone.Pipes))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(projectWith(), "empty"))
	current := MakeSnapshot(projectWith(model.NewPipe("PE 110", 11, 9, 1200, 120, 3.35)), "one pipe")

	if _, ok := h.Undo(current); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(projectWith(), "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(projectWith(), ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(projectWith(), "current")
	if _, ok := h.Undo(current); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(current); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(projectWith(), "a"))
	h.Push(MakeSnapshot(projectWith(), "b"))
	h.Undo(MakeSnapshot(projectWith(), "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	proj := projectWith(model.NewPipe("PE 110", 11, 9, 1200, 120, 3.35))
	snap := MakeSnapshot(proj, "test")

	proj.Pipes[0].Label = "Modified"
	proj.Container.Width = 1

	if snap.Pipes[0].Label != "PE 110" {
		t.Error("snapshot pipes should be independent of the project")
	}
	if snap.Container.Width == 1 {
		t.Error("snapshot container should be independent of the project")
	}
}

func TestSnapshotApply(t *testing.T) {
	proj := projectWith(model.NewPipe("PE 110", 11, 9, 1200, 120, 3.35))
	proj.Settings.MinSpace = 2
	snap := MakeSnapshot(proj, "before")

	proj.Pipes = nil
	proj.Settings.MinSpace = 0
	proj.Result = &model.CalculationResult{}

	snap.Apply(&proj)

	if len(proj.Pipes) != 1 {
		t.Errorf("expected 1 pipe restored, got %d", len(proj.Pipes))
	}
	if proj.Settings.MinSpace != 2 {
		t.Errorf("expected MinSpace 2, got %f", proj.Settings.MinSpace)
	}
	if proj.Result != nil {
		t.Error("restoring a snapshot should drop the stale result")
	}

	empty := Snapshot{}
	empty.Apply(&proj)
	if proj.Pipes == nil {
		t.Error("pipes should never be nil after apply")
	}
}
