package kebab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	renamedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	restoredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
)

// Summary is the user-facing result of one invocation. Renamed and Restored
// hold "old -> new" pairs; Failed and Unresolvable hold per-entry failure
// descriptions.
type Summary struct {
	Renamed      []string
	Restored     []string
	Failed       []string
	Unresolvable []string
	Skipped      int
	Message      string
}

// String renders the summary without any styling, one line per entry. This
// is what lands on the clipboard with --copy.
func (s Summary) String() string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(s.Message + "\n\n")
	}

	writeList := func(title string, list []string) {
		if len(list) == 0 {
			return
		}
		b.WriteString(title + "\n")
		for _, line := range alignArrows(list) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	writeList("Renamed:", s.Renamed)
	writeList("Restored:", s.Restored)
	writeList("Unresolvable:", s.Unresolvable)
	writeList("Failed:", s.Failed)
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "Skipped: %d already normalized\n", s.Skipped)
	}
	return b.String()
}

func FormatSummary(s Summary) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message) + "\n\n")
	}

	renderList := func(title string, style lipgloss.Style, list []string) {
		if len(list) == 0 {
			return
		}
		b.WriteString(style.Render(title) + "\n")
		for _, line := range alignArrows(list) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	renderList("Renamed:", renamedStyle, s.Renamed)
	renderList("Restored:", restoredStyle, s.Restored)
	renderList("Unresolvable:", errorStyle, s.Unresolvable)
	renderList("Failed:", errorStyle, s.Failed)
	if s.Skipped > 0 {
		b.WriteString(skippedStyle.Render(fmt.Sprintf("Skipped: %d already normalized", s.Skipped)) + "\n")
	}

	return b.String()
}

// alignArrows pads the left side of "old -> new" pairs to the longest old
// path so the arrows line up.
func alignArrows(list []string) []string {
	width := 0
	for _, line := range list {
		if parts := strings.SplitN(line, " -> ", 2); len(parts) == 2 && len(parts[0]) > width {
			width = len(parts[0])
		}
	}

	out := make([]string, 0, len(list))
	for _, line := range list {
		parts := strings.SplitN(line, " -> ", 2)
		if len(parts) != 2 {
			out = append(out, line)
			continue
		}
		out = append(out, fmt.Sprintf("%-*s -> %s", width, parts[0], parts[1]))
	}
	return out
}

func (a *App) relativizeSummaryPaths(s *Summary) {
	wd, _ := os.Getwd()
	relPath := func(p string) string {
		if r, err := filepath.Rel(wd, p); err == nil {
			return r
		}
		return p
	}

	relList := func(paths []string) []string {
		var res []string
		for _, p := range paths {
			if strings.Contains(p, " -> ") {
				parts := strings.SplitN(p, " -> ", 2)
				res = append(res, fmt.Sprintf("%s -> %s", relPath(parts[0]), relPath(parts[1])))
			} else {
				res = append(res, relPath(p))
			}
		}
		return res
	}
	// Failed and Unresolvable embed error text after the path, so they are
	// left as recorded.
	s.Renamed = relList(s.Renamed)
	s.Restored = relList(s.Restored)
}
