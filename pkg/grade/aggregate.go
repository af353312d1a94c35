package grade

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how category scores combine into a course percentage.
type Mode int

const (
	// ModeWeighted sums each category ratio times its weight.
	ModeWeighted Mode = iota
	// ModePoints divides all earned points by all possible points.
	ModePoints
)

const (
	// weights must sum to 1 within single precision epsilon
	weightTolerance = 1.1920929e-07
	unusedTolerance = 2.220446049250313e-16
)

func (m Mode) String() string {
	switch m {
	case ModeWeighted:
		return "weighted"
	case ModePoints:
		return "points"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "weighted" or "points". An empty string means weighted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "weighted", "weight":
		return ModeWeighted, nil
	case "points", "point":
		return ModePoints, nil
	default:
		return 0, fmt.Errorf("unknown grading mode: %q", s)
	}
}

// aggregator combines categories into a course percentage. source resolves
// replacement categories by normalized name.
type aggregator struct {
	mode   Mode
	cats   []*Category
	source func(name string) *Category
	extra  float64
}

func (a aggregator) percent() (float64, error) {
	switch a.mode {
	case ModePoints:
		return a.points()
	default:
		return a.weighted()
	}
}

func (a aggregator) adjust(c *Category) Adjusted {
	var src *Category
	if c.replace.Count > 0 && c.replace.From != "" {
		src = a.source(c.replace.From)
	}
	return Apply(c, src)
}

func (a aggregator) weighted() (float64, error) {
	if !hasGoodWeights(a.cats) {
		return 0, ErrBadWeights
	}

	var final, unused float64
	for _, c := range a.cats {
		ratio, ok := a.adjust(c).Ratio()
		if !ok {
			// empty or fully dropped categories do not count as zero
			unused += c.weight
			continue
		}
		final += c.weight * ratio
	}

	if 1-unused <= unusedTolerance {
		return 0, ErrNoGradedWork
	}
	return final*100/(1-unused) + a.extra, nil
}

func (a aggregator) points() (float64, error) {
	var earned, possible float64
	for _, c := range a.cats {
		adj := a.adjust(c)
		if adj.Empty() {
			continue
		}
		earned += adj.Earned()
		possible += adj.Possible()
	}

	if possible == 0 {
		return 0, ErrNoGradedWork
	}
	return (earned + a.extra) * 100 / possible, nil
}

func hasGoodWeights(cats []*Category) bool {
	var total float64
	for _, c := range cats {
		total += c.weight
	}
	return math.Abs(1-total) < weightTolerance
}
