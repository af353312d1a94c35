package grade

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Standing is a course override that short-circuits normal grading.
type Standing int

const (
	StandingNormal Standing = iota
	StandingWithdrawn
	StandingReplaced
	StandingIncomplete
)

func (s Standing) String() string {
	switch s {
	case StandingWithdrawn:
		return "withdrawn"
	case StandingReplaced:
		return "replaced"
	case StandingIncomplete:
		return "incomplete"
	default:
		return "normal"
	}
}

// Letter returns the letter forced by the standing, empty for normal.
func (s Standing) Letter() string {
	switch s {
	case StandingWithdrawn:
		return "W"
	case StandingReplaced:
		return "R"
	case StandingIncomplete:
		return "I"
	default:
		return ""
	}
}

// ParseStanding parses a standing name or its letter. Empty means normal.
func ParseStanding(s string) (Standing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return StandingNormal, nil
	case "withdrawn", "w":
		return StandingWithdrawn, nil
	case "replaced", "r":
		return StandingReplaced, nil
	case "incomplete", "i":
		return StandingIncomplete, nil
	default:
		return 0, fmt.Errorf("unknown standing: %q", s)
	}
}

// Details is passive course metadata carried for display.
type Details struct {
	CRN        int64  `json:"crn,omitempty" yaml:"crn,omitempty"`
	Instructor string `json:"instructor,omitempty" yaml:"instructor,omitempty"`
	Location   string `json:"location,omitempty" yaml:"location,omitempty"`
}

// CourseOption configures a course at creation.
type CourseOption func(*Course)

// WithMode selects weighted or point-based aggregation. Weighted is the default.
func WithMode(m Mode) CourseOption {
	return func(c *Course) {
		c.mode = m
	}
}

// WithTotalPoints records the base points of a point-based course.
func WithTotalPoints(total float64) CourseOption {
	return func(c *Course) {
		c.totalPoints = total
	}
}

// WithDetails attaches display metadata.
func WithDetails(d Details) CourseOption {
	return func(c *Course) {
		c.details = d
	}
}

// Course holds the grading state of one course.
type Course struct {
	name        string
	units       int
	scale       Scale
	institution *Institution
	mode        Mode
	totalPoints float64
	details     Details

	categories []*Category
	index      map[string]int
	extra      float64
	books      []string
	standing   Standing

	percent   float64
	graded    bool
	letter    string
	points    float64
	hasPoints bool
}

// NewCourse creates an ungraded course. The institution supplies the
// grade-point scale and is shared with other courses.
func NewCourse(name string, units int, scale Scale, inst *Institution, opts ...CourseOption) (*Course, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if units < 0 {
		return nil, fmt.Errorf("course %s: units must not be negative: %d", name, units)
	}
	if inst == nil {
		return nil, fmt.Errorf("course %s: institution is required", name)
	}

	c := &Course{
		name:        name,
		units:       units,
		scale:       scale,
		institution: inst,
		index:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AddCategory adds a category, or redefines the policy of an existing one
// while keeping its recorded scores.
func (c *Course) AddCategory(name string, opts ...CategoryOption) error {
	if c.closed() {
		return ErrCourseClosed
	}
	key := normalizeName(name)
	if key == "" {
		return ErrEmptyName
	}

	cat := &Category{name: key}
	if i, ok := c.index[key]; ok {
		cat.scores = c.categories[i].scores
		c.categories[i] = cat
	} else {
		c.index[key] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	for _, opt := range opts {
		opt(cat)
	}

	c.refresh()
	return nil
}

// AddGrade records a score in an existing category and recomputes the grade.
func (c *Course) AddGrade(category string, earned, possible float64) error {
	if c.closed() {
		return ErrCourseClosed
	}
	cat, ok := c.Category(category)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, normalizeName(category))
	}
	if !(possible > 0) {
		return fmt.Errorf("%w: %s %g/%g", ErrInvalidPossible, cat.name, earned, possible)
	}

	cat.scores = append(cat.scores, Score{Earned: earned, Possible: possible})
	c.refresh()
	return nil
}

// AddExtra adds extra credit to the course total and recomputes the grade.
// Weighted courses add it in percentage points, point courses in points.
func (c *Course) AddExtra(extra float64) error {
	if c.closed() {
		return ErrCourseClosed
	}
	c.extra += extra
	c.refresh()
	return nil
}

// AddBook appends a book to the course reading list.
func (c *Course) AddBook(title string) error {
	if c.closed() {
		return ErrCourseClosed
	}
	if strings.TrimSpace(title) == "" {
		return ErrEmptyName
	}
	c.books = append(c.books, title)
	return nil
}

// SetWithdrawn marks the course withdrawn: letter W, percent 0, no grade points.
func (c *Course) SetWithdrawn() {
	c.standing = StandingWithdrawn
	c.percent, c.graded = 0, true
	c.letter = StandingWithdrawn.Letter()
	c.updatePoints()
}

// SetReplaced marks the course replaced: letter R, no grade points.
func (c *Course) SetReplaced() {
	c.standing = StandingReplaced
	c.letter = StandingReplaced.Letter()
	c.updatePoints()
}

// SetIncomplete marks the course incomplete: letter I, no grade points.
// Unlike withdrawn or replaced, grades can still be recorded.
func (c *Course) SetIncomplete() {
	c.standing = StandingIncomplete
	c.letter = StandingIncomplete.Letter()
	c.updatePoints()
}

// SetPassFail switches the course to the pass/fail scale, which excludes it
// from the GPA.
func (c *Course) SetPassFail() {
	c.scale = PassFail
	if c.standing == StandingNormal && c.graded {
		_ = c.resolve()
		return
	}
	c.updatePoints()
}

// Recompute re-runs aggregation. ErrBadWeights and ErrNoGradedWork leave the
// prior grade untouched. ErrNoScaleMatch means the percentage was updated but
// no letter or grade points could be resolved for it.
func (c *Course) Recompute() error {
	if c.closed() {
		return ErrCourseClosed
	}
	pct, err := aggregator{
		mode:   c.mode,
		cats:   c.categories,
		source: c.lookup,
		extra:  c.extra,
	}.percent()
	if err != nil {
		return err
	}

	c.percent, c.graded = pct, true
	return c.resolve()
}

// refresh recomputes after a mutation. Skipped updates keep prior state.
func (c *Course) refresh() {
	if err := c.Recompute(); err != nil {
		slog.Debug("grade update skipped", "course", c.name, "reason", err)
	}
}

func (c *Course) resolve() error {
	if c.standing != StandingNormal {
		c.letter = c.standing.Letter()
		c.updatePoints()
		return nil
	}

	letter, ok := c.scale.Resolve(c.percent)
	c.letter = letter
	c.updatePoints()
	if !ok {
		return fmt.Errorf("%w: %.2f", ErrNoScaleMatch, c.percent)
	}
	return nil
}

func (c *Course) updatePoints() {
	if c.standing != StandingNormal {
		c.points, c.hasPoints = 0, false
		return
	}
	c.points, c.hasPoints = c.institution.resolve(c.letter, c.units)
}

func (c *Course) closed() bool {
	return c.standing == StandingWithdrawn || c.standing == StandingReplaced
}

func (c *Course) lookup(name string) *Category {
	if i, ok := c.index[name]; ok {
		return c.categories[i]
	}
	return nil
}

// Category looks up a category by name (case-insensitive). It never creates one.
func (c *Course) Category(name string) (*Category, bool) {
	cat := c.lookup(normalizeName(name))
	return cat, cat != nil
}

// Categories returns the categories in the order they were added.
func (c *Course) Categories() []*Category {
	return slices.Clone(c.categories)
}

// Adjusted returns the named category after drop and replacement rules.
func (c *Course) Adjusted(name string) (Adjusted, bool) {
	cat, ok := c.Category(name)
	if !ok {
		return Adjusted{}, false
	}
	return aggregator{source: c.lookup}.adjust(cat), true
}

func (c *Course) Name() string {
	return c.name
}

func (c *Course) Units() int {
	return c.units
}

func (c *Course) Scale() Scale {
	return c.scale
}

func (c *Course) Institution() *Institution {
	return c.institution
}

func (c *Course) Mode() Mode {
	return c.mode
}

// TotalPoints returns the base points of a point-based course.
func (c *Course) TotalPoints() float64 {
	return c.totalPoints
}

func (c *Course) Details() Details {
	return c.details
}

func (c *Course) Extra() float64 {
	return c.extra
}

func (c *Course) Books() []string {
	return slices.Clone(c.books)
}

func (c *Course) Standing() Standing {
	return c.standing
}

// Percent returns the course percentage, false while the course was never graded.
func (c *Course) Percent() (float64, bool) {
	return c.percent, c.graded
}

// Letter returns the resolved letter, empty when unresolved.
func (c *Course) Letter() string {
	return c.letter
}

// Points returns the earned grade points, false when not applicable.
func (c *Course) Points() (float64, bool) {
	return c.points, c.hasPoints
}

func (c *Course) IsWithdrawn() bool {
	return c.standing == StandingWithdrawn
}

func (c *Course) IsReplaced() bool {
	return c.standing == StandingReplaced
}

func (c *Course) IsIncomplete() bool {
	return c.standing == StandingIncomplete
}

func (c *Course) IsPassFail() bool {
	return c.scale.IsPassFail()
}

// IncludedInGPA reports whether the course counts toward a GPA.
func (c *Course) IncludedInGPA() bool {
	return c.standing == StandingNormal && c.hasPoints && !c.IsPassFail()
}
