// Package report turns graded courses into serializable summaries.
package report

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mchmarny/gradepoint/pkg/grade"
)

const (
	extraRow     = "EXTRA"
	notAvailable = "N/A"
)

// Report summarizes a set of courses and their GPA.
type Report struct {
	Source  string    `json:"source,omitempty" yaml:"source,omitempty"`
	Courses []*Course `json:"courses" yaml:"courses"`
	GPA     *float64  `json:"gpa,omitempty" yaml:"gpa,omitempty"`
}

// Course is the display view of a graded course.
type Course struct {
	Name          string      `json:"name" yaml:"name"`
	CRN           int64       `json:"crn,omitempty" yaml:"crn,omitempty"`
	Instructor    string      `json:"instructor,omitempty" yaml:"instructor,omitempty"`
	Location      string      `json:"location,omitempty" yaml:"location,omitempty"`
	Institution   string      `json:"institution" yaml:"institution"`
	Units         int         `json:"units" yaml:"units"`
	Scale         string      `json:"scale" yaml:"scale"`
	Mode          string      `json:"mode" yaml:"mode"`
	TotalPoints   float64     `json:"total_points,omitempty" yaml:"totalPoints,omitempty"`
	Standing      string      `json:"standing" yaml:"standing"`
	PassFail      bool        `json:"pass_fail" yaml:"passFail"`
	Percent       *float64    `json:"percent,omitempty" yaml:"percent,omitempty"`
	Letter        string      `json:"letter,omitempty" yaml:"letter,omitempty"`
	Points        *float64    `json:"points,omitempty" yaml:"points,omitempty"`
	IncludedInGPA bool        `json:"included_in_gpa" yaml:"includedInGPA"`
	Extra         float64     `json:"extra,omitempty" yaml:"extra,omitempty"`
	Books         []string    `json:"books,omitempty" yaml:"books,omitempty"`
	Categories    []*Category `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Category is the display view of a grading bucket.
type Category struct {
	Name    string   `json:"name" yaml:"name"`
	Weight  string   `json:"weight" yaml:"weight"`
	Drops   string   `json:"drops" yaml:"drops"`
	Replace string   `json:"replace,omitempty" yaml:"replace,omitempty"`
	Points  string   `json:"points" yaml:"points"`
	Counted string   `json:"counted,omitempty" yaml:"counted,omitempty"`
	Percent *float64 `json:"percent,omitempty" yaml:"percent,omitempty"`
}

// New builds a report for courses. A missing GPA is not an error: the GPA
// is simply omitted when no course is eligible.
func New(source string, courses []*grade.Course) (*Report, error) {
	r := &Report{
		Source:  source,
		Courses: make([]*Course, 0, len(courses)),
	}
	for _, c := range courses {
		if c == nil {
			continue
		}
		r.Courses = append(r.Courses, NewCourse(c))
	}

	gpa, err := grade.GPA(courses)
	switch {
	case errors.Is(err, grade.ErrNoGPACourses):
	case err != nil:
		return nil, fmt.Errorf("computing GPA: %w", err)
	default:
		r.GPA = &gpa
	}
	return r, nil
}

// NewCourse builds the display view of a single course.
func NewCourse(c *grade.Course) *Course {
	d := c.Details()
	v := &Course{
		Name:          c.Name(),
		CRN:           d.CRN,
		Instructor:    d.Instructor,
		Location:      d.Location,
		Institution:   c.Institution().Name(),
		Units:         c.Units(),
		Scale:         c.Scale().Name(),
		Mode:          c.Mode().String(),
		Standing:      c.Standing().String(),
		PassFail:      c.IsPassFail(),
		Letter:        c.Letter(),
		IncludedInGPA: c.IncludedInGPA(),
		Extra:         c.Extra(),
		Books:         c.Books(),
	}
	if c.Mode() == grade.ModePoints {
		v.TotalPoints = c.TotalPoints()
	}
	if p, ok := c.Percent(); ok {
		v.Percent = &p
	}
	if p, ok := c.Points(); ok {
		v.Points = &p
	}

	for _, cat := range c.Categories() {
		v.Categories = append(v.Categories, newCategory(c, cat))
	}
	if c.Extra() != 0 {
		v.Categories = append(v.Categories, &Category{
			Name:   extraRow,
			Weight: notAvailable,
			Drops:  notAvailable,
			Points: formatFloat(c.Extra()) + "%",
		})
	}
	return v
}

func newCategory(c *grade.Course, cat *grade.Category) *Category {
	v := &Category{
		Name:   cat.Name(),
		Weight: formatFloat(cat.Weight()),
		Drops:  strconv.Itoa(cat.Drops()),
		Points: cat.Summary(),
	}
	if c.Mode() == grade.ModePoints {
		v.Weight = notAvailable
	}
	if r := cat.Replacement(); r.Count > 0 && r.From != "" {
		v.Replace = fmt.Sprintf("%d from %s", r.Count, r.From)
	}

	adj, ok := c.Adjusted(cat.Name())
	if !ok {
		return v
	}
	if ratio, ok := adj.Ratio(); ok {
		pct := ratio * 100
		v.Percent = &pct
		v.Counted = fmt.Sprintf("%g/%g", adj.Earned(), adj.Possible())
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
