package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/schedule"
	"github.com/matzehuels/curricula/pkg/store"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleHeader     = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell       = lipgloss.NewStyle().Padding(0, 1)
	styleInfeasible = styleCell.Foreground(colorRed)
	stylePeak       = styleCell.Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints instance statistics on a single line.
func printStats(inst *curriculum.Instance, cached bool) {
	parts := []string{
		fmt.Sprintf("%d courses", inst.CourseCount()),
		fmt.Sprintf("%d prerequisites", len(inst.Prerequisites)),
		fmt.Sprintf("%d periods", inst.Periods),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Println(line)
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// =============================================================================
// Tables
// =============================================================================

// Periods are zero-based internally and shown one-based.
func periodLabel(p int) string { return strconv.Itoa(p + 1) }

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// boundsTable lists the earliest and latest period of every course.
// Courses that fit no period are highlighted.
func boundsTable(inst *curriculum.Instance, bs []bounds.Bound) string {
	rows := make([][]string, len(bs))
	for i, b := range bs {
		c, _ := inst.Course(b.Course)
		slack := "-"
		if b.Feasible() {
			slack = strconv.Itoa(b.Upper - b.Lower)
		}
		rows[i] = []string{
			strconv.Itoa(b.Course),
			c.Label(),
			strconv.Itoa(c.Credits),
			joinIDs(inst.Requires(b.Course)),
			periodLabel(b.Lower),
			periodLabel(b.Upper),
			slack,
		}
	}

	return newTable("ID", "Course", "Credits", "Requires", "Earliest", "Latest", "Slack").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if row < len(bs) && !bs[row].Feasible() {
				return styleInfeasible
			}
			return styleCell
		}).
		Render()
}

// scheduleTable lists each period with its load and courses. Periods at
// the peak load are highlighted.
func scheduleTable(r *schedule.Result) string {
	inst := r.Instance
	rows := make([][]string, inst.Periods)
	for p := range inst.Periods {
		names := make([]string, 0)
		for _, id := range r.Courses(p) {
			c, _ := inst.Course(id)
			names = append(names, c.Label())
		}
		load := 0
		if p < len(r.PeriodLoads) {
			load = r.PeriodLoads[p]
		}
		rows[p] = []string{periodLabel(p), strconv.Itoa(load), strings.Join(names, ", ")}
	}

	return newTable("Period", "Credits", "Courses").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if row < len(r.PeriodLoads) && r.PeriodLoads[row] == r.PeakLoad && r.PeakLoad > 0 {
				return stylePeak
			}
			return styleCell
		}).
		Render()
}

// recordsTable lists stored schedule summaries.
func recordsTable(recs []*schedule.Record) string {
	rows := make([][]string, len(recs))
	for i, rec := range recs {
		optimal := ""
		if rec.Optimal {
			optimal = iconSuccess
		}
		rows[i] = []string{
			rec.ID,
			rec.Name,
			formatRelativeTime(rec.CreatedAt),
			strconv.Itoa(rec.PeakLoad),
			optimal,
		}
	}
	return newTable("ID", "Name", "Created", "Peak", "Optimal").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 || col == 2 {
				return styleCell.Foreground(colorGray)
			}
			return styleCell
		}).
		Render()
}

// printSchedule prints a solved schedule with its summary lines.
func printSchedule(r *schedule.Result) {
	fmt.Println(scheduleTable(r))
	printKeyValue("Peak load", strconv.Itoa(r.PeakLoad))
	switch {
	case r.Optimal:
		printKeyValue("Balance", StyleSuccess.Render("optimal"))
	case r.Balanced:
		printKeyValue("Balance", StyleWarning.Render("best found within limits"))
	}
	printKeyValue("Nodes", strconv.Itoa(r.Stats.Search.Nodes))
	if r.Stats.Rounds > 1 {
		printKeyValue("Rounds", strconv.Itoa(r.Stats.Rounds))
	}
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// describeStore names where a store keeps its records.
func describeStore(s store.Store) string {
	if fs, ok := s.(*store.FileStore); ok {
		return fs.Path()
	}
	return "database"
}
