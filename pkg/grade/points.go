package grade

import (
	"maps"
	"strings"
)

// PointScale maps a letter to its grade-point value per credit unit.
type PointScale map[string]float64

// Built-in grade-point scales.
var (
	UniversityPoints = PointScale{
		"A":  4.0,
		"A-": 3.7,
		"B+": 3.3,
		"B":  3.0,
		"B-": 2.7,
		"C+": 2.3,
		"C":  2.0,
		"C-": 1.7,
		"D+": 1.3,
		"D":  1.0,
		"D-": 0.7,
		"F":  0.0,
	}

	HighSchoolPoints = PointScale{
		"A": 4.0,
		"B": 3.0,
		"C": 2.0,
		"D": 1.0,
		"F": 0.0,
	}
)

// LookupPointScale returns a copy of a built-in point scale by name.
func LookupPointScale(name string) (PointScale, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "university", "uni":
		return maps.Clone(UniversityPoints), true
	case "high-school", "highschool", "hig":
		return maps.Clone(HighSchoolPoints), true
	default:
		return nil, false
	}
}

// Resolve returns the grade points earned for letter over the given units.
func (p PointScale) Resolve(letter string, units int) (float64, bool) {
	if letter == "" {
		return 0, false
	}
	v, ok := p[letter]
	if !ok {
		return 0, false
	}
	return v * float64(units), true
}

// Institution owns the grade-point scale shared by its courses.
// It is immutable once created.
type Institution struct {
	name   string
	points PointScale
}

// NewInstitution creates an institution with its own copy of the point scale.
func NewInstitution(name string, points PointScale) (*Institution, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Institution{name: name, points: maps.Clone(points)}, nil
}

func (i *Institution) Name() string {
	return i.name
}

// PointScale returns a copy of the institution grade-point scale.
func (i *Institution) PointScale() PointScale {
	return maps.Clone(i.points)
}

func (i *Institution) resolve(letter string, units int) (float64, bool) {
	if i == nil {
		return 0, false
	}
	return i.points.Resolve(letter, units)
}
