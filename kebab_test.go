package kebab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newTestApp chdirs into a scratch working directory (so the journal lands
// in a per-test .kebab/) and builds an App over a tree subdirectory.
func newTestApp(t *testing.T, cfg *Config) (*App, string) {
	t.Helper()
	wd := t.TempDir()
	t.Chdir(wd)

	root := filepath.Join(wd, "tree")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if cfg.Root == "" {
		cfg.Root = root
	}

	app, err := NewApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return app, root
}

func TestRunThenUndoRestoresTree(t *testing.T) {
	app, root := newTestApp(t, &Config{})
	writeFile(t, filepath.Join(root, "My File.TXT"))
	writeFile(t, filepath.Join(root, "Sub Dir", "Another_File.txt"))
	writeFile(t, filepath.Join(root, "Deep Dir", "Nested Dir", "Last_One.md"))
	before := snapshot(t, root)

	summary, err := app.Execute()
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Renamed) != 6 {
		t.Fatalf("renamed: got %d entries (%v), want 6", len(summary.Renamed), summary.Renamed)
	}
	if equalSnapshots(before, snapshot(t, root)) {
		t.Fatal("run did not change the tree")
	}

	undoApp, err := NewApp(&Config{Undo: true})
	if err != nil {
		t.Fatal(err)
	}
	undoSummary, err := undoApp.Execute()
	if err != nil {
		t.Fatal(err)
	}
	if len(undoSummary.Restored) != 6 {
		t.Fatalf("restored: got %d, want 6", len(undoSummary.Restored))
	}
	if len(undoSummary.Unresolvable) != 0 {
		t.Fatalf("unresolvable: %v", undoSummary.Unresolvable)
	}

	after := snapshot(t, root)
	if !equalSnapshots(before, after) {
		t.Errorf("tree not restored:\nbefore %v\nafter  %v", before, after)
	}
}

func TestUndoSurvivesProcessRestart(t *testing.T) {
	app, root := newTestApp(t, &Config{})
	writeFile(t, filepath.Join(root, "Some File.txt"))
	before := snapshot(t, root)

	if _, err := app.Execute(); err != nil {
		t.Fatal(err)
	}

	// A fresh App stands in for a new process invocation; only the
	// persisted journal connects the two.
	fresh, err := NewApp(&Config{Undo: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fresh.Execute(); err != nil {
		t.Fatal(err)
	}
	if !equalSnapshots(before, snapshot(t, root)) {
		t.Error("tree not restored after restart-style undo")
	}
}

func TestDoubleUndo(t *testing.T) {
	app, root := newTestApp(t, &Config{})
	writeFile(t, filepath.Join(root, "Some File.txt"))
	if _, err := app.Execute(); err != nil {
		t.Fatal(err)
	}

	undoCfg := func() *App {
		a, err := NewApp(&Config{Undo: true})
		if err != nil {
			t.Fatal(err)
		}
		return a
	}

	if _, err := undoCfg().Execute(); err != nil {
		t.Fatal(err)
	}
	before := snapshot(t, root)

	if _, err := undoCfg().Execute(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("second undo: got %v, want ErrNothingToUndo", err)
	}
	if !equalSnapshots(before, snapshot(t, root)) {
		t.Error("second undo changed the filesystem")
	}
}

func TestUndoWithoutAnyRun(t *testing.T) {
	app, _ := newTestApp(t, &Config{Undo: true})
	if _, err := app.Execute(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("got %v, want ErrNothingToUndo", err)
	}
}

func TestUndoTargetMissing(t *testing.T) {
	app, root := newTestApp(t, &Config{})
	writeFile(t, filepath.Join(root, "First File.txt"))
	writeFile(t, filepath.Join(root, "Second File.txt"))
	if _, err := app.Execute(); err != nil {
		t.Fatal(err)
	}

	// Someone deletes one renamed file before the undo.
	if err := os.Remove(filepath.Join(root, "first-file.txt")); err != nil {
		t.Fatal(err)
	}

	undoApp, err := NewApp(&Config{Undo: true})
	if err != nil {
		t.Fatal(err)
	}
	summary, err := undoApp.Execute()
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Unresolvable) != 1 {
		t.Fatalf("unresolvable: %v, want 1 entry", summary.Unresolvable)
	}
	if len(summary.Restored) != 1 {
		t.Fatalf("restored: %v, want 1 entry", summary.Restored)
	}
	if _, err := os.Stat(filepath.Join(root, "Second File.txt")); err != nil {
		t.Errorf("surviving entry not restored: %v", err)
	}
}

func TestUndoRestoresDisambiguatedNames(t *testing.T) {
	app, root := newTestApp(t, &Config{})
	writeFile(t, filepath.Join(root, "a b.txt"))
	writeFile(t, filepath.Join(root, "a_b.txt"))
	before := snapshot(t, root)

	if _, err := app.Execute(); err != nil {
		t.Fatal(err)
	}

	undoApp, err := NewApp(&Config{Undo: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := undoApp.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := snapshot(t, root); !equalSnapshots(before, got) {
		t.Errorf("originals not restored: %v, want %v", got, before)
	}
}

func TestDryRunMutatesNothing(t *testing.T) {
	app, root := newTestApp(t, &Config{DryRun: true})
	writeFile(t, filepath.Join(root, "My File.TXT"))
	writeFile(t, filepath.Join(root, "Sub Dir", "Another_File.txt"))
	before := snapshot(t, root)

	summary, err := app.Execute()
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Renamed) != 3 {
		t.Fatalf("dry-run plan: got %d entries, want 3", len(summary.Renamed))
	}

	if !equalSnapshots(before, snapshot(t, root)) {
		t.Error("dry run mutated the tree")
	}
	if _, err := os.Stat(filepath.Join(stateDirName, journalFileName)); !errors.Is(err, os.ErrNotExist) {
		t.Error("dry run wrote a journal")
	}
}

func TestInvalidRoot(t *testing.T) {
	app, _ := newTestApp(t, &Config{Root: "does-not-exist"})
	if _, err := app.Execute(); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("missing root: got %v, want ErrInvalidRoot", err)
	}

	wd, _ := os.Getwd()
	writeFile(t, filepath.Join(wd, "a file"))
	fileApp, err := NewApp(&Config{Root: "a file"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fileApp.Execute(); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("file root: got %v, want ErrInvalidRoot", err)
	}
}

func TestRunSummaryCounts(t *testing.T) {
	app, root := newTestApp(t, &Config{})
	writeFile(t, filepath.Join(root, "clean.txt"))
	writeFile(t, filepath.Join(root, "Dirty File.txt"))

	summary, err := app.Execute()
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 {
		t.Errorf("skipped: got %d, want 1", summary.Skipped)
	}
	if len(summary.Renamed) != 1 {
		t.Errorf("renamed: got %d, want 1", len(summary.Renamed))
	}
	if len(summary.Failed) != 0 {
		t.Errorf("failed: %v", summary.Failed)
	}
}
