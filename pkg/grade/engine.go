package grade

import "slices"

// Adjusted is the working copy of a category after drop and replacement
// rules were applied. The category itself is never modified.
type Adjusted struct {
	Scores   []Score   `json:"scores" yaml:"scores"`
	Percents []float64 `json:"percents" yaml:"percents"`
}

// Apply drops the lowest scores of c and then replaces its lowest remaining
// scores with the first score recorded in source, when that one is better.
// A nil source disables replacement.
func Apply(c *Category, source *Category) Adjusted {
	adj := Adjusted{
		Scores:   slices.Clone(c.scores),
		Percents: make([]float64, len(c.scores)),
	}
	for i, s := range adj.Scores {
		adj.Percents[i] = s.Percent()
	}

	adj.drop(c.drops)
	if source != nil {
		adj.replace(c.replace.Count, source)
	}
	return adj
}

func (a *Adjusted) drop(n int) {
	for i := 0; i < n && !a.Empty(); i++ {
		idx := a.lowest()
		a.Scores = slices.Delete(a.Scores, idx, idx+1)
		a.Percents = slices.Delete(a.Percents, idx, idx+1)
	}
}

// replace always reuses the first recorded score of the source category,
// so repeated replacements stop changing anything once the lowest remaining
// score is no longer below it.
func (a *Adjusted) replace(n int, source *Category) {
	for i := 0; i < n && !a.Empty(); i++ {
		repl, ok := source.first()
		if !ok {
			return
		}
		idx := a.lowest()
		if repl.Percent() > a.Percents[idx] {
			a.Scores[idx] = repl
			a.Percents[idx] = repl.Percent()
		}
	}
}

// lowest returns the first index holding the minimum percent.
func (a *Adjusted) lowest() int {
	idx := 0
	for i, p := range a.Percents {
		if p < a.Percents[idx] {
			idx = i
		}
	}
	return idx
}

// Empty reports whether no scores are left.
func (a Adjusted) Empty() bool {
	return len(a.Scores) == 0
}

// Earned returns the sum of earned points.
func (a Adjusted) Earned() float64 {
	var sum float64
	for _, s := range a.Scores {
		sum += s.Earned
	}
	return sum
}

// Possible returns the sum of possible points.
func (a Adjusted) Possible() float64 {
	var sum float64
	for _, s := range a.Scores {
		sum += s.Possible
	}
	return sum
}

// Ratio returns total earned over total possible, false when empty.
func (a Adjusted) Ratio() (float64, bool) {
	if a.Empty() {
		return 0, false
	}
	return a.Earned() / a.Possible(), true
}
