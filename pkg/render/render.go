package render

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/load"
)

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Formats lists every supported format.
var Formats = []string{FormatDOT, FormatSVG, FormatJSON}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(Formats, f) {
			return fmt.Errorf("invalid format: %q (must be one of: %s)", f, strings.Join(Formats, ", "))
		}
	}
	return nil
}

// View is the JSON form of a rendered curriculum.
type View struct {
	Name    string       `json:"name,omitempty"`
	Periods []PeriodView `json:"periods"`
}

// PeriodView is one period of a [View].
type PeriodView struct {
	Period  int          `json:"period"`
	Load    int          `json:"load"`
	Courses []CourseView `json:"courses"`
}

// CourseView is one course of a [PeriodView]. Lower and Upper are only set
// when bounds were rendered.
type CourseView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Requires []int  `json:"requires,omitempty"`
	Lower    *int   `json:"lower,omitempty"`
	Upper    *int   `json:"upper,omitempty"`
}

// NewView groups the courses of inst into periods the same way [ToDOT] does.
func NewView(inst *curriculum.Instance, opts Options) View {
	v := View{Name: inst.Name, Periods: make([]PeriodView, inst.Periods)}
	for p := range v.Periods {
		v.Periods[p] = PeriodView{Period: p, Courses: []CourseView{}}
	}
	for i, c := range inst.Courses {
		p := min(opts.period(i), inst.Periods-1)
		cv := CourseView{ID: c.ID, Name: c.Label(), Credits: c.Credits, Requires: inst.Requires(c.ID)}
		if i < len(opts.Bounds) {
			lo, hi := opts.Bounds[i].Lower, opts.Bounds[i].Upper
			cv.Lower, cv.Upper = &lo, &hi
		}
		v.Periods[p].Courses = append(v.Periods[p].Courses, cv)
	}
	if len(opts.Assignment) == len(inst.Courses) {
		for p, l := range load.Loads(inst, opts.Assignment) {
			v.Periods[p].Load = l
		}
	} else {
		for p := range v.Periods {
			for _, c := range v.Periods[p].Courses {
				v.Periods[p].Load += c.Credits
			}
		}
	}
	return v
}

// Render produces every requested format. The returned map is keyed by
// format name.
func Render(ctx context.Context, inst *curriculum.Instance, opts Options, formats []string) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	var dot string
	for _, format := range formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = ToDOT(inst, opts)
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = RenderSVG(ctx, dot)
			}
		case FormatJSON:
			data, err = json.MarshalIndent(NewView(inst, opts), "", "  ")
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
