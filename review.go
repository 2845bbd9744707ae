package kebab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	reviewTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	reviewCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	reviewDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	reviewHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// reviewModel lets the user walk the planned renames and deselect entries
// before anything touches the filesystem.
type reviewModel struct {
	plan     []PlannedRename
	selected []bool
	cursor   int
	accepted bool
}

func newReviewModel(plan []PlannedRename) reviewModel {
	selected := make([]bool, len(plan))
	for i := range selected {
		selected[i] = true
	}
	return reviewModel{plan: plan, selected: selected}
}

func (m reviewModel) Init() tea.Cmd { return nil }

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.plan)-1 {
				m.cursor++
			}
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "a":
			all := true
			for _, sel := range m.selected {
				if !sel {
					all = false
					break
				}
			}
			for i := range m.selected {
				m.selected[i] = !all
			}
		case "enter":
			m.accepted = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder
	b.WriteString(reviewTitleStyle.Render(fmt.Sprintf("Planned renames (%d)", len(m.plan))) + "\n\n")

	wd, _ := os.Getwd()
	for i, p := range m.plan {
		cursor := "  "
		if i == m.cursor {
			cursor = reviewCursorStyle.Render("> ")
		}
		check := "[x]"
		if !m.selected[i] {
			check = "[ ]"
		}

		line := fmt.Sprintf("%s %s -> %s", check, relTo(wd, p.OldPath), relTo(wd, p.NewPath))
		if !m.selected[i] {
			line = reviewDimStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n" + reviewHelpStyle.Render("space toggle · a all · enter apply · q abort") + "\n")
	return b.String()
}

func relTo(wd, p string) string {
	if r, err := filepath.Rel(wd, p); err == nil {
		return r
	}
	return p
}

// ReviewPlan runs the interactive review. It returns the confirmed subset of
// plan in the original order, or ok=false when the user aborted.
//
// Deselecting a directory never strands its contents: entries inside it were
// planned first and keep their paths, since the directory itself would have
// been renamed only after them.
func ReviewPlan(plan []PlannedRename) (confirmed []PlannedRename, ok bool, err error) {
	model, err := tea.NewProgram(newReviewModel(plan)).Run()
	if err != nil {
		return nil, false, err
	}

	m := model.(reviewModel)
	if !m.accepted {
		return nil, false, nil
	}
	for i, p := range m.plan {
		if m.selected[i] {
			confirmed = append(confirmed, p)
		}
	}
	return confirmed, true, nil
}
