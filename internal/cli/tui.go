package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/curricula/pkg/schedule"
)

// Browser styles
var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	tabPeakStyle     = lipgloss.NewStyle().Foreground(colorYellow).Padding(0, 1)
	listSelectedRow  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen).Padding(0, 1)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PeriodBrowserModel - Interactive schedule browser
// =============================================================================

// PeriodBrowserModel is the bubbletea model for browsing a schedule one
// period at a time.
type PeriodBrowserModel struct {
	Result *schedule.Result
	Period int // selected period, zero-based
	Cursor int // selected course within the period

	courses [][]int // course IDs per period
}

// NewPeriodBrowserModel creates a browser positioned on the first period.
func NewPeriodBrowserModel(r *schedule.Result) PeriodBrowserModel {
	courses := make([][]int, r.Instance.Periods)
	for p := range courses {
		courses[p] = r.Courses(p)
	}
	return PeriodBrowserModel{Result: r, courses: courses}
}

func (m PeriodBrowserModel) Init() tea.Cmd {
	return nil
}

func (m PeriodBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h", "shift+tab":
		if m.Period > 0 {
			m.Period--
			m.Cursor = 0
		}
	case "right", "l", "tab":
		if m.Period < len(m.courses)-1 {
			m.Period++
			m.Cursor = 0
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.courses[m.Period])-1 {
			m.Cursor++
		}
	case "enter":
		// Jump to the period of the first prerequisite of the selected course.
		if id, ok := m.selected(); ok {
			if reqs := m.Result.Instance.Requires(id); len(reqs) > 0 {
				m.jumpTo(reqs[0])
			}
		}
	}
	return m, nil
}

func (m PeriodBrowserModel) selected() (int, bool) {
	ids := m.courses[m.Period]
	if m.Cursor >= len(ids) {
		return 0, false
	}
	return ids[m.Cursor], true
}

func (m *PeriodBrowserModel) jumpTo(course int) {
	p := m.Result.Period(course)
	if p < 0 {
		return
	}
	m.Period = p
	for i, id := range m.courses[p] {
		if id == course {
			m.Cursor = i
		}
	}
}

func (m PeriodBrowserModel) View() string {
	var b strings.Builder
	r := m.Result

	b.WriteString(StyleTitle.Render(r.Instance.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ period  ↑/↓ course  ⏎ go to prerequisite  q quit"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.courses))
	for p := range m.courses {
		label := fmt.Sprintf("P%d (%d)", p+1, r.PeriodLoads[p])
		switch {
		case p == m.Period:
			tabs[p] = tabActiveStyle.Render("[" + label + "]")
		case r.PeriodLoads[p] == r.PeakLoad:
			tabs[p] = tabPeakStyle.Render(label)
		default:
			tabs[p] = tabInactiveStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	ids := m.courses[m.Period]
	if len(ids) == 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  no courses in this period"))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, len(ids))
	for i, id := range ids {
		c, _ := r.Instance.Course(id)
		window := "-"
		if id-1 < len(r.Bounds) {
			bd := r.Bounds[id-1]
			window = periodLabel(bd.Lower) + "-" + periodLabel(bd.Upper)
		}
		rows[i] = []string{
			c.Label(),
			strconv.Itoa(c.Credits),
			joinIDs(r.Instance.Requires(id)),
			joinIDs(r.Instance.Dependents(id)),
			window,
		}
	}

	t := newTable("Course", "Credits", "Requires", "Unlocks", "Window").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if row == m.Cursor {
				return listSelectedRow
			}
			return styleCell
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  period %d/%d · peak load %d", m.Period+1, len(m.courses), r.PeakLoad)))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}
