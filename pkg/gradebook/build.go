package gradebook

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mchmarny/gradepoint/pkg/grade"
)

const defaultScale = "STD"

// Book holds the institutions and courses built from a gradebook.
type Book struct {
	Institutions []*grade.Institution
	Courses      []*grade.Course
}

// Build creates graded courses from a gradebook. Categories are added first,
// then scores, books, extra credit, pass/fail and finally the standing, so a
// withdrawn course still carries its recorded work.
func Build(gb *Gradebook) (*Book, error) {
	if gb == nil {
		return nil, errors.New("gradebook required")
	}

	book := &Book{}
	byName := make(map[string]*grade.Institution, len(gb.Institutions))
	for _, in := range gb.Institutions {
		inst, err := buildInstitution(in)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(inst.Name())
		if _, dup := byName[key]; dup {
			return nil, fmt.Errorf("duplicate institution: %s", inst.Name())
		}
		byName[key] = inst
		book.Institutions = append(book.Institutions, inst)
	}

	for _, c := range gb.Courses {
		if c == nil {
			continue
		}
		inst, err := pickInstitution(book.Institutions, byName, c)
		if err != nil {
			return nil, err
		}
		course, err := buildCourse(c, inst)
		if err != nil {
			return nil, err
		}
		book.Courses = append(book.Courses, course)
	}

	slog.Debug("gradebook built", "institutions", len(book.Institutions), "courses", len(book.Courses))
	return book, nil
}

func buildInstitution(in *Institution) (*grade.Institution, error) {
	if in == nil {
		return nil, errors.New("empty institution entry")
	}

	points := grade.PointScale(in.Scale)
	if len(points) == 0 {
		name := in.Points
		if name == "" {
			name = "university"
		}
		var ok bool
		if points, ok = grade.LookupPointScale(name); !ok {
			return nil, fmt.Errorf("institution %s: unknown point scale: %s", in.Name, name)
		}
	}

	inst, err := grade.NewInstitution(in.Name, points)
	if err != nil {
		return nil, fmt.Errorf("institution %q: %w", in.Name, err)
	}
	return inst, nil
}

func pickInstitution(all []*grade.Institution, byName map[string]*grade.Institution, c *Course) (*grade.Institution, error) {
	if c.Institution == "" {
		if len(all) == 1 {
			return all[0], nil
		}
		return nil, fmt.Errorf("course %s: institution required when the gradebook has %d", c.Name, len(all))
	}
	inst, ok := byName[strings.ToLower(c.Institution)]
	if !ok {
		return nil, fmt.Errorf("course %s: unknown institution: %s", c.Name, c.Institution)
	}
	return inst, nil
}

func buildScale(c *Course) (grade.Scale, error) {
	if len(c.Bands) > 0 {
		bands := make([]grade.Band, 0, len(c.Bands))
		for _, b := range c.Bands {
			bands = append(bands, grade.Band{Letter: b.Letter, Low: b.Low, High: b.High})
		}
		name := c.Scale
		if name == "" {
			name = "custom"
		}
		return grade.NewScale(name, bands...), nil
	}

	name := c.Scale
	if name == "" {
		name = defaultScale
	}
	s, ok := grade.LookupScale(name)
	if !ok {
		return grade.Scale{}, fmt.Errorf("course %s: unknown scale: %s", c.Name, name)
	}
	return s, nil
}

func buildCourse(c *Course, inst *grade.Institution) (*grade.Course, error) {
	scale, err := buildScale(c)
	if err != nil {
		return nil, err
	}
	mode, err := grade.ParseMode(c.Mode)
	if err != nil {
		return nil, fmt.Errorf("course %s: %w", c.Name, err)
	}
	standing, err := grade.ParseStanding(c.Standing)
	if err != nil {
		return nil, fmt.Errorf("course %s: %w", c.Name, err)
	}

	course, err := grade.NewCourse(c.Name, c.Units, scale, inst,
		grade.WithMode(mode),
		grade.WithTotalPoints(c.TotalPoints),
		grade.WithDetails(grade.Details{
			CRN:        c.CRN,
			Instructor: c.Instructor,
			Location:   c.Location,
		}),
	)
	if err != nil {
		return nil, err
	}

	for _, cat := range c.Categories {
		opts := []grade.CategoryOption{
			grade.WithWeight(cat.Weight),
			grade.WithDrops(cat.Drops),
		}
		if cat.Replace != nil {
			opts = append(opts, grade.WithReplacement(cat.Replace.Count, cat.Replace.From))
		}
		if err := course.AddCategory(cat.Name, opts...); err != nil {
			return nil, fmt.Errorf("course %s: adding category %q: %w", c.Name, cat.Name, err)
		}
	}

	for _, cat := range c.Categories {
		for _, s := range cat.Scores {
			if err := course.AddGrade(cat.Name, s.Earned, s.Possible); err != nil {
				return nil, fmt.Errorf("course %s: adding score %s: %w", c.Name, s, err)
			}
		}
	}

	for _, b := range c.Books {
		if err := course.AddBook(b); err != nil {
			return nil, fmt.Errorf("course %s: adding book: %w", c.Name, err)
		}
	}

	if c.Extra != 0 {
		if err := course.AddExtra(c.Extra); err != nil {
			return nil, fmt.Errorf("course %s: adding extra credit: %w", c.Name, err)
		}
	}

	if c.PassFail {
		course.SetPassFail()
	}

	switch standing {
	case grade.StandingWithdrawn:
		course.SetWithdrawn()
	case grade.StandingReplaced:
		course.SetReplaced()
	case grade.StandingIncomplete:
		course.SetIncomplete()
	}

	return course, nil
}
