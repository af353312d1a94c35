// Package gradebook reads gradebook files and builds graded courses from them.
package gradebook

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Gradebook is the file representation of institutions and their courses.
type Gradebook struct {
	Institutions []*Institution `yaml:"institutions"`
	Courses      []*Course      `yaml:"courses"`
}

// Institution names a grade-point scale, either built-in or custom.
type Institution struct {
	Name   string             `yaml:"name"`
	Points string             `yaml:"points,omitempty"`
	Scale  map[string]float64 `yaml:"scale,omitempty"`
}

// Course describes one course, its policy and recorded scores.
type Course struct {
	Name        string      `yaml:"name"`
	CRN         int64       `yaml:"crn,omitempty"`
	Instructor  string      `yaml:"instructor,omitempty"`
	Location    string      `yaml:"location,omitempty"`
	Institution string      `yaml:"institution"`
	Units       int         `yaml:"units"`
	Scale       string      `yaml:"scale,omitempty"`
	Bands       []Band      `yaml:"bands,omitempty"`
	Mode        string      `yaml:"mode,omitempty"`
	TotalPoints float64     `yaml:"total_points,omitempty"`
	Extra       float64     `yaml:"extra,omitempty"`
	PassFail    bool        `yaml:"pass_fail,omitempty"`
	Standing    string      `yaml:"standing,omitempty"`
	Books       []string    `yaml:"books,omitempty"`
	Categories  []*Category `yaml:"categories,omitempty"`
}

// Band is a custom letter range.
type Band struct {
	Letter string `yaml:"letter"`
	Low    int    `yaml:"low"`
	High   int    `yaml:"high"`
}

// Category is a grading bucket in a course.
type Category struct {
	Name    string       `yaml:"name"`
	Weight  float64      `yaml:"weight,omitempty"`
	Drops   int          `yaml:"drops,omitempty"`
	Replace *Replacement `yaml:"replace,omitempty"`
	Scores  []Score      `yaml:"scores,omitempty"`
}

// Replacement names the category whose first score replaces the lowest ones.
type Replacement struct {
	Count int    `yaml:"count"`
	From  string `yaml:"from"`
}

// Score is an (earned, possible) pair. In files it is either a mapping with
// earned and possible keys or an "earned/possible" string.
type Score struct {
	Earned   float64 `yaml:"earned"`
	Possible float64 `yaml:"possible"`
}

// UnmarshalYAML accepts both the mapping and the "9.5/10" shorthand.
func (s *Score) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		v, err := ParseScore(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*s = v
		return nil
	}

	type plain Score
	var p plain
	if err := n.Decode(&p); err != nil {
		return fmt.Errorf("line %d: decoding score: %w", n.Line, err)
	}
	*s = Score(p)
	return nil
}

// MarshalYAML writes scores in the short "earned/possible" form.
func (s Score) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s Score) String() string {
	return strconv.FormatFloat(s.Earned, 'g', -1, 64) + "/" + strconv.FormatFloat(s.Possible, 'g', -1, 64)
}

// ParseScore parses "earned/possible".
func ParseScore(v string) (Score, error) {
	earned, possible, ok := strings.Cut(strings.TrimSpace(v), "/")
	if !ok {
		return Score{}, fmt.Errorf("invalid score %q, expected earned/possible", v)
	}
	e, err := strconv.ParseFloat(strings.TrimSpace(earned), 64)
	if err != nil {
		return Score{}, fmt.Errorf("invalid earned points in %q: %w", v, err)
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(possible), 64)
	if err != nil {
		return Score{}, fmt.Errorf("invalid possible points in %q: %w", v, err)
	}
	return Score{Earned: e, Possible: p}, nil
}

// Read loads a gradebook file.
func Read(path string) (*Gradebook, error) {
	if path == "" {
		return nil, errors.New("gradebook path required")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gradebook %s: %w", path, err)
	}

	gb, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decoding gradebook %s: %w", path, err)
	}
	return gb, nil
}

// Decode parses gradebook YAML content.
func Decode(b []byte) (*Gradebook, error) {
	var gb Gradebook
	if err := yaml.Unmarshal(b, &gb); err != nil {
		return nil, err
	}
	return &gb, nil
}

// Encode renders a gradebook as YAML.
func Encode(gb *Gradebook) ([]byte, error) {
	if gb == nil {
		return nil, errors.New("gradebook required")
	}
	b, err := yaml.Marshal(gb)
	if err != nil {
		return nil, fmt.Errorf("encoding gradebook: %w", err)
	}
	return b, nil
}
