package grade

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Score is one recorded (earned, possible) pair.
type Score struct {
	Earned   float64 `json:"earned" yaml:"earned"`
	Possible float64 `json:"possible" yaml:"possible"`
}

// Percent returns earned over possible as a fraction.
func (s Score) Percent() float64 {
	return s.Earned / s.Possible
}

func (s Score) String() string {
	return fmt.Sprintf("%g/%g", s.Earned, s.Possible)
}

// Replacement names the category whose first recorded score may replace the
// lowest scores of another category, up to Count times.
type Replacement struct {
	Count int    `json:"count" yaml:"count"`
	From  string `json:"from" yaml:"from"`
}

// Category is a named grading bucket with its policy and recorded scores.
type Category struct {
	name    string
	weight  float64
	drops   int
	replace Replacement
	scores  []Score
}

// CategoryOption configures a category when it is added to a course.
type CategoryOption func(*Category)

// WithWeight sets the fraction of the course grade the category carries.
// Point-based courses ignore it.
func WithWeight(w float64) CategoryOption {
	return func(c *Category) {
		c.weight = w
	}
}

// WithDrops sets how many of the lowest scores are dropped.
func WithDrops(n int) CategoryOption {
	return func(c *Category) {
		c.drops = max(n, 0)
	}
}

// WithReplacement lets up to n of the lowest scores be replaced by the first
// score recorded in the from category.
func WithReplacement(n int, from string) CategoryOption {
	return func(c *Category) {
		c.replace = Replacement{Count: max(n, 0), From: normalizeName(from)}
	}
}

func (c *Category) Name() string {
	return c.name
}

func (c *Category) Weight() float64 {
	return c.weight
}

func (c *Category) Drops() int {
	return c.drops
}

func (c *Category) Replacement() Replacement {
	return c.replace
}

// Scores returns a copy of the recorded scores in the order they were added.
func (c *Category) Scores() []Score {
	return slices.Clone(c.scores)
}

// Len returns the number of recorded scores.
func (c *Category) Len() int {
	return len(c.scores)
}

// Summary renders the recorded scores as "e/p, e/p".
func (c *Category) Summary() string {
	parts := make([]string, 0, len(c.scores))
	for _, s := range c.scores {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

func (c *Category) first() (Score, bool) {
	if len(c.scores) == 0 {
		return Score{}, false
	}
	return c.scores[0], true
}

// normalizeName upper-cases category names so lookups are case-insensitive.
func normalizeName(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}
