package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mchmarny/gradepoint/pkg/grade"
	"github.com/mchmarny/gradepoint/pkg/report"
	"github.com/urfave/cli/v3"
)

var (
	courseFlag = &cli.StringFlag{
		Name:  "course",
		Usage: "Limit report to a single course by name (optional)",
	}

	reportCmd = &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Grade every course in the gradebook and compute the GPA",
		UsageText: `gradepoint report                                   # default gradebook
   gradepoint report -f fall.yaml -f spring.yaml        # several gradebooks
   gradepoint report --course "Neural Computation"      # single course`,
		HideHelpCommand: true,
		Action:          cmdReport,
		Flags: []cli.Flag{
			courseFlag,
		},
	}

	gpaCmd = &cli.Command{
		Name:            "gpa",
		Usage:           "Compute the GPA per gradebook and across all of them",
		HideHelpCommand: true,
		Action:          cmdGPA,
	}
)

type gpaFile struct {
	Source  string   `json:"source" yaml:"source"`
	Courses int      `json:"courses" yaml:"courses"`
	GPA     *float64 `json:"gpa,omitempty" yaml:"gpa,omitempty"`
}

type gpaResult struct {
	Files   []*gpaFile `json:"files" yaml:"files"`
	Courses int        `json:"courses" yaml:"courses"`
	GPA     *float64   `json:"gpa,omitempty" yaml:"gpa,omitempty"`
}

func cmdReport(ctx context.Context, cmd *cli.Command) error {
	books, err := loadFromCommand(ctx, cmd)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(cmd.String(courseFlag.Name))

	list := make([]*report.Report, 0, len(books))
	for _, b := range books {
		courses := b.Book.Courses
		if name != "" {
			courses = filterCourses(courses, name)
		}
		r, err := report.New(b.Path, courses)
		if err != nil {
			return fmt.Errorf("failed to create report for %s: %w", b.Path, err)
		}
		list = append(list, r)
	}

	if name != "" && !anyCourses(list) {
		return fmt.Errorf("course not found: %s", name)
	}

	if len(list) == 1 {
		return output(cmd, list[0])
	}
	return output(cmd, list)
}

func cmdGPA(ctx context.Context, cmd *cli.Command) error {
	books, err := loadFromCommand(ctx, cmd)
	if err != nil {
		return err
	}

	res := &gpaResult{Files: make([]*gpaFile, 0, len(books))}
	var all []*grade.Course
	for _, b := range books {
		v, err := gpaOf(b.Book.Courses)
		if err != nil {
			return fmt.Errorf("failed to compute GPA for %s: %w", b.Path, err)
		}
		res.Files = append(res.Files, &gpaFile{
			Source:  b.Path,
			Courses: len(b.Book.Courses),
			GPA:     v,
		})
		all = append(all, b.Book.Courses...)
	}

	res.Courses = len(all)
	if res.GPA, err = gpaOf(all); err != nil {
		return fmt.Errorf("failed to compute GPA: %w", err)
	}
	return output(cmd, res)
}

// gpaOf returns nil when no course is eligible for the GPA.
func gpaOf(courses []*grade.Course) (*float64, error) {
	v, err := grade.GPA(courses)
	if errors.Is(err, grade.ErrNoGPACourses) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func filterCourses(courses []*grade.Course, name string) []*grade.Course {
	var out []*grade.Course
	for _, c := range courses {
		if strings.EqualFold(c.Name(), name) {
			out = append(out, c)
		}
	}
	return out
}

func anyCourses(list []*report.Report) bool {
	for _, r := range list {
		if len(r.Courses) > 0 {
			return true
		}
	}
	return false
}
