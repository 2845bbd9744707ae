package kebab

import (
	"fmt"
	"sync"
	"time"
)

type spinner struct {
	frames []string
	index  int
}

func newSpinner() spinner {
	return spinner{frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}}
}
func (s *spinner) tick()       { s.index = (s.index + 1) % len(s.frames) }
func (s spinner) View() string { return s.frames[s.index] }

// TUI wraps App execution with a spinner and progress counter, then prints
// the rendered summary.
type TUI struct {
	app         *App
	noAnimation bool
	spinner     spinner
	mu          sync.Mutex
	cur, total  int
}

func NewTUI(app *App, noAnimation bool) *TUI {
	return &TUI{app: app, noAnimation: noAnimation, spinner: newSpinner()}
}

func (t *TUI) Run() error {
	if t.noAnimation {
		summary, err := t.app.Execute()
		if err == nil {
			fmt.Print(FormatSummary(summary))
		}
		return err
	}

	t.app.SetProgressCallback(func(c, tot int) {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.cur, t.total = c, tot
	})

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(100 * time.Millisecond):
				t.spinner.tick()
				t.renderProgress()
			}
		}
	}()

	summary, err := t.app.Execute()
	close(done)
	fmt.Print("\r\x1b[K")

	if err == nil {
		fmt.Print(FormatSummary(summary))
	}
	return err
}

func (t *TUI) renderProgress() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Printf("\r%s Renaming... %d/%d\x1b[K", t.spinner.View(), t.cur, t.total)
}
