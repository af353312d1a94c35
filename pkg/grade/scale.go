package grade

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const maxPercent = 100

// Band is an inclusive integer percentage range mapped to a letter.
type Band struct {
	Letter string `json:"letter" yaml:"letter"`
	Low    int    `json:"low" yaml:"low"`
	High   int    `json:"high" yaml:"high"`
}

// Scale maps percentages to letters. Bands are kept ordered from the highest
// range down and the first matching band wins.
type Scale struct {
	name  string
	bands []Band
}

// Built-in letter scales.
var (
	Standard = NewScale("STD",
		Band{"A", 90, 100},
		Band{"B", 80, 89},
		Band{"C", 70, 79},
		Band{"D", 60, 69},
		Band{"F", 0, 59},
	)

	G11 = NewScale("G11",
		Band{"A", 90, 100},
		Band{"A-", 85, 89},
		Band{"B+", 80, 84},
		Band{"B", 75, 79},
		Band{"B-", 70, 74},
		Band{"C+", 67, 69},
		Band{"C", 64, 66},
		Band{"C-", 60, 63},
		Band{"D+", 57, 59},
		Band{"D", 54, 56},
		Band{"D-", 50, 53},
		Band{"F", 0, 49},
	)

	U12 = NewScale("U12",
		Band{"A", 93, 100},
		Band{"A-", 90, 92},
		Band{"B+", 87, 89},
		Band{"B", 83, 86},
		Band{"B-", 80, 82},
		Band{"C+", 77, 79},
		Band{"C", 73, 76},
		Band{"C-", 70, 72},
		Band{"D", 60, 69},
		Band{"F", 0, 59},
	)

	U11 = NewScale("U11",
		Band{"A", 93, 100},
		Band{"A-", 90, 92},
		Band{"B+", 87, 89},
		Band{"B", 83, 86},
		Band{"B-", 80, 82},
		Band{"C+", 77, 79},
		Band{"C", 73, 76},
		Band{"C-", 70, 72},
		Band{"D+", 67, 69},
		Band{"D", 63, 66},
		Band{"D-", 60, 62},
		Band{"F", 0, 59},
	)

	PassFail = NewScale("PF",
		Band{"P", 60, 100},
		Band{"NP", 0, 59},
	)

	builtinScales = []Scale{Standard, G11, U12, U11, PassFail}
)

// NewScale returns a scale with the given bands sorted from the highest range down.
func NewScale(name string, bands ...Band) Scale {
	b := slices.Clone(bands)
	slices.SortStableFunc(b, func(x, y Band) int {
		if x.High != y.High {
			return y.High - x.High
		}
		return y.Low - x.Low
	})
	return Scale{name: name, bands: b}
}

// BuiltinScales returns the built-in letter scales.
func BuiltinScales() []Scale {
	return slices.Clone(builtinScales)
}

// LookupScale returns the built-in scale with the given name (case-insensitive).
func LookupScale(name string) (Scale, bool) {
	for _, s := range builtinScales {
		if strings.EqualFold(s.name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Scale{}, false
}

func (s Scale) Name() string {
	return s.name
}

// Bands returns a copy of the scale bands, highest range first.
func (s Scale) Bands() []Band {
	return slices.Clone(s.bands)
}

// Resolve returns the letter for a percentage. Values above 100 are clamped
// to 100 and the floor of the percentage is compared against each band.
func (s Scale) Resolve(percent float64) (string, bool) {
	if percent > maxPercent {
		percent = maxPercent
	}
	p := math.Floor(percent)
	for _, b := range s.bands {
		if p >= float64(b.Low) && p <= float64(b.High) {
			return b.Letter, true
		}
	}
	return "", false
}

// Equal reports whether both scales hold the same letter bands, regardless of name.
func (s Scale) Equal(o Scale) bool {
	return slices.Equal(s.bands, o.bands)
}

// IsPassFail reports whether the scale is the pass/fail scale.
func (s Scale) IsPassFail() bool {
	return s.Equal(PassFail)
}

func (s Scale) String() string {
	var sb strings.Builder
	for i, b := range s.bands {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%-2s: [%d-%d]", b.Letter, b.Low, b.High)
	}
	return sb.String()
}
