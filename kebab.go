package kebab

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrInvalidRoot means the root argument is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid root directory")
	// ErrNothingToUndo means no persisted journal exists for undo.
	ErrNothingToUndo = errors.New("nothing to undo")
)

type Config struct {
	Root          string
	DryRun        bool
	Undo          bool
	IncludeHidden bool
}

type ProgressUpdate func(current, total int)

type App struct {
	cfg              *Config
	journal          *Journal
	pathResolver     *PathResolver
	progressCallback ProgressUpdate
	lastSummary      Summary
}

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

func NewApp(cfg *Config) (*App, error) {
	pr, err := NewPathResolver()
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:          cfg,
		journal:      NewJournal(pr.wd),
		pathResolver: pr,
	}, nil
}

func (a *App) SetProgressCallback(cb ProgressUpdate) { a.progressCallback = cb }

func (a *App) Execute() (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
		a.lastSummary = summary
	}()

	if a.cfg.Undo {
		return a.undoLastRun()
	}

	plan, engine, err := a.Plan()
	if err != nil {
		return Summary{}, err
	}
	if a.cfg.DryRun {
		return a.dryRunSummary(plan, engine), nil
	}
	return a.ApplyPlan(plan, engine)
}

// Plan validates the root and computes the full bottom-up rename plan
// without touching the filesystem.
func (a *App) Plan() ([]PlannedRename, *Engine, error) {
	root, err := a.pathResolver.ValidateRoot(a.cfg.Root)
	if err != nil {
		return nil, nil, err
	}

	engine := NewEngine(root, a.cfg.IncludeHidden)
	return engine.Plan(), engine, nil
}

// ApplyPlan performs the renames and persists the journal, replacing any
// journal from a previous run.
func (a *App) ApplyPlan(plan []PlannedRename, engine *Engine) (Summary, error) {
	records, failed := engine.Apply(plan, a.progressCallback)

	if err := a.journal.Save(records); err != nil {
		return Summary{}, fmt.Errorf("renames applied but journal not saved: %w", err)
	}

	s := Summary{
		Message: "Applied",
		Skipped: engine.Skipped(),
	}
	for _, rec := range records {
		s.Renamed = append(s.Renamed, fmt.Sprintf("%s -> %s", rec.OldPath, rec.NewPath))
	}
	for _, fe := range append(engine.PlanErrors(), failed...) {
		s.Failed = append(s.Failed, fe.String())
	}
	a.relativizeSummaryPaths(&s)
	return s, nil
}

func (a *App) dryRunSummary(plan []PlannedRename, engine *Engine) Summary {
	s := Summary{
		Message: "Dry run",
		Skipped: engine.Skipped(),
	}
	for _, p := range plan {
		s.Renamed = append(s.Renamed, fmt.Sprintf("%s -> %s", p.OldPath, p.NewPath))
	}
	for _, fe := range engine.PlanErrors() {
		s.Failed = append(s.Failed, fe.String())
	}
	a.relativizeSummaryPaths(&s)
	return s
}

func (a *App) undoLastRun() (Summary, error) {
	records, err := a.journal.Load()
	if err != nil {
		return Summary{}, err
	}

	restored, unresolvable := ReplayReverse(records)
	if err := a.journal.Consume(); err != nil {
		return Summary{}, fmt.Errorf("undo applied but journal not cleared: %w", err)
	}

	s := Summary{Message: "Undone"}
	for _, rec := range restored {
		s.Restored = append(s.Restored, fmt.Sprintf("%s -> %s", rec.NewPath, rec.OldPath))
	}
	for _, fe := range unresolvable {
		s.Unresolvable = append(s.Unresolvable, fe.String())
	}
	a.relativizeSummaryPaths(&s)
	return s, nil
}
