package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstitution(t *testing.T) *Institution {
	t.Helper()
	inst, err := NewInstitution("State University", UniversityPoints)
	require.NoError(t, err)
	return inst
}

func newTestCourse(t *testing.T, opts ...CourseOption) *Course {
	t.Helper()
	c, err := NewCourse("Neural Computation", 4, Standard, testInstitution(t), opts...)
	require.NoError(t, err)
	return c
}

func TestNewCourse_Validation(t *testing.T) {
	inst := testInstitution(t)

	_, err := NewCourse("", 3, Standard, inst)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewCourse("Math", -1, Standard, inst)
	assert.Error(t, err)

	_, err = NewCourse("Math", 3, Standard, nil)
	assert.Error(t, err)
}

func TestNewCourse_Ungraded(t *testing.T) {
	c := newTestCourse(t, WithDetails(Details{CRN: 14469, Instructor: "Pehlevan"}))

	_, graded := c.Percent()
	assert.False(t, graded)
	_, hasPoints := c.Points()
	assert.False(t, hasPoints)
	assert.Empty(t, c.Letter())
	assert.Equal(t, StandingNormal, c.Standing())
	assert.Equal(t, ModeWeighted, c.Mode())
	assert.Equal(t, int64(14469), c.Details().CRN)
	assert.False(t, c.IncludedInGPA())
}

func TestCourse_CategoryLookupIsCaseInsensitive(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("Homework", WithWeight(1)))
	require.NoError(t, c.AddGrade("homework", 9, 10))

	cat, ok := c.Category("HOMEWORK")
	require.True(t, ok)
	assert.Equal(t, "HOMEWORK", cat.Name())
	assert.Equal(t, 1, cat.Len())
	assert.Equal(t, "9/10", cat.Summary())
}

func TestCourse_CategoryLookupDoesNotCreate(t *testing.T) {
	c := newTestCourse(t)
	_, ok := c.Category("missing")
	assert.False(t, ok)
	assert.Empty(t, c.Categories())
}

func TestCourse_AddCategoryRedefineKeepsScores(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))
	require.NoError(t, c.AddGrade("hw", 5, 10))
	require.NoError(t, c.AddGrade("hw", 10, 10))

	require.NoError(t, c.AddCategory("HW", WithWeight(1), WithDrops(1)))
	cat, ok := c.Category("hw")
	require.True(t, ok)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, 1, cat.Drops())
	assert.Len(t, c.Categories(), 1)

	pct, _ := c.Percent()
	assert.InDelta(t, 100.0, pct, 1e-9)
}

func TestCourse_AddCategoryEmptyName(t *testing.T) {
	c := newTestCourse(t)
	assert.ErrorIs(t, c.AddCategory("  "), ErrEmptyName)
}

func TestCourse_AddGradeErrors(t *testing.T) {
	c := newTestCourse(t)
	assert.ErrorIs(t, c.AddGrade("quiz", 1, 2), ErrUnknownCategory)

	require.NoError(t, c.AddCategory("quiz", WithWeight(1)))
	assert.ErrorIs(t, c.AddGrade("quiz", 1, 0), ErrInvalidPossible)
	assert.ErrorIs(t, c.AddGrade("quiz", 1, -5), ErrInvalidPossible)

	cat, _ := c.Category("quiz")
	assert.Equal(t, 0, cat.Len())
}

func TestCourse_Withdrawn(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))
	require.NoError(t, c.AddGrade("hw", 9, 10))

	c.SetWithdrawn()

	assert.True(t, c.IsWithdrawn())
	assert.Equal(t, "W", c.Letter())
	pct, graded := c.Percent()
	assert.True(t, graded)
	assert.Zero(t, pct)
	_, hasPoints := c.Points()
	assert.False(t, hasPoints)
	assert.False(t, c.IncludedInGPA())

	assert.ErrorIs(t, c.AddGrade("hw", 1, 10), ErrCourseClosed)
	assert.ErrorIs(t, c.AddCategory("quiz"), ErrCourseClosed)
	assert.ErrorIs(t, c.AddExtra(5), ErrCourseClosed)
	assert.ErrorIs(t, c.AddBook("Title"), ErrCourseClosed)
	assert.ErrorIs(t, c.Recompute(), ErrCourseClosed)
}

func TestCourse_Replaced(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))
	require.NoError(t, c.AddGrade("hw", 9, 10))

	c.SetReplaced()

	assert.True(t, c.IsReplaced())
	assert.Equal(t, "R", c.Letter())
	pct, graded := c.Percent()
	assert.True(t, graded)
	assert.InDelta(t, 90.0, pct, 1e-9)
	_, hasPoints := c.Points()
	assert.False(t, hasPoints)
	assert.ErrorIs(t, c.AddGrade("hw", 1, 10), ErrCourseClosed)
}

func TestCourse_IncompleteStillAcceptsGrades(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))
	require.NoError(t, c.AddGrade("hw", 9, 10))

	c.SetIncomplete()
	require.NoError(t, c.AddGrade("hw", 5, 10))

	assert.True(t, c.IsIncomplete())
	assert.Equal(t, "I", c.Letter())
	pct, _ := c.Percent()
	assert.InDelta(t, 70.0, pct, 1e-9)
	assert.False(t, c.IncludedInGPA())
	require.NoError(t, c.AddBook("Reader"))
	assert.Equal(t, []string{"Reader"}, c.Books())
}

func TestCourse_PassFail(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))
	require.NoError(t, c.AddGrade("hw", 85, 100))
	assert.Equal(t, "B", c.Letter())
	assert.True(t, c.IncludedInGPA())

	c.SetPassFail()

	assert.True(t, c.IsPassFail())
	assert.Equal(t, "P", c.Letter())
	_, hasPoints := c.Points()
	assert.False(t, hasPoints)
	assert.False(t, c.IncludedInGPA())
}

func TestCourse_NoScaleMatchIsExplicit(t *testing.T) {
	inst := testInstitution(t)
	c, err := NewCourse("Gap", 3, NewScale("gap", Band{Letter: "A", Low: 90, High: 100}), inst)
	require.NoError(t, err)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))

	require.NoError(t, c.AddGrade("hw", 95, 100))
	assert.Equal(t, "A", c.Letter())

	require.NoError(t, c.AddGrade("hw", 5, 100))
	assert.Empty(t, c.Letter())
	_, hasPoints := c.Points()
	assert.False(t, hasPoints)
	pct, graded := c.Percent()
	assert.True(t, graded)
	assert.InDelta(t, 50.0, pct, 1e-9)
	assert.ErrorIs(t, c.Recompute(), ErrNoScaleMatch)
}

func TestParseStanding(t *testing.T) {
	tests := []struct {
		in   string
		want Standing
		err  bool
	}{
		{"", StandingNormal, false},
		{"Withdrawn", StandingWithdrawn, false},
		{"r", StandingReplaced, false},
		{" incomplete ", StandingIncomplete, false},
		{"expelled", StandingNormal, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStanding(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "withdrawn", StandingWithdrawn.String())
}
