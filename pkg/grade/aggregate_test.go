package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeighted_StraightAverage(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(0.4)))
	require.NoError(t, c.AddCategory("exam", WithWeight(0.6)))
	require.NoError(t, c.AddGrade("hw", 8, 10))
	require.NoError(t, c.AddGrade("exam", 45, 50))

	pct, graded := c.Percent()
	require.True(t, graded)
	assert.InDelta(t, 86.0, pct, 1e-9)
	assert.Equal(t, "B", c.Letter())

	require.NoError(t, c.AddExtra(2))
	pct, _ = c.Percent()
	assert.InDelta(t, 88.0, pct, 1e-9)

	points, ok := c.Points()
	require.True(t, ok)
	assert.InDelta(t, 12.0, points, 1e-9)
}

func TestWeighted_UnusedWeightIsExcluded(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(0.4)))
	require.NoError(t, c.AddCategory("final", WithWeight(0.6)))
	require.NoError(t, c.AddGrade("hw", 8, 10))

	pct, graded := c.Percent()
	require.True(t, graded)
	assert.InDelta(t, 80.0, pct, 1e-9)
}

func TestWeighted_FullyDroppedCategoryIsUnused(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(0.5), WithDrops(1)))
	require.NoError(t, c.AddCategory("exam", WithWeight(0.5)))
	require.NoError(t, c.AddGrade("hw", 0, 10))
	require.NoError(t, c.AddGrade("exam", 9, 10))

	pct, _ := c.Percent()
	assert.InDelta(t, 90.0, pct, 1e-9)
}

func TestWeighted_BadWeightsKeepUngraded(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(0.4)))
	require.NoError(t, c.AddCategory("exam", WithWeight(0.5)))
	require.NoError(t, c.AddGrade("hw", 8, 10))
	require.NoError(t, c.AddGrade("exam", 9, 10))

	_, graded := c.Percent()
	assert.False(t, graded)
	assert.Empty(t, c.Letter())
	_, hasPoints := c.Points()
	assert.False(t, hasPoints)
	assert.ErrorIs(t, c.Recompute(), ErrBadWeights)
}

func TestWeighted_BadWeightsKeepPriorGrade(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))
	require.NoError(t, c.AddGrade("hw", 9, 10))

	require.NoError(t, c.AddCategory("quiz", WithWeight(0.1)))
	require.NoError(t, c.AddGrade("quiz", 0, 10))

	pct, graded := c.Percent()
	require.True(t, graded)
	assert.InDelta(t, 90.0, pct, 1e-9)
	assert.Equal(t, "A", c.Letter())
}

func TestWeighted_AllWeightUnused(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("hw", WithWeight(1)))
	assert.ErrorIs(t, c.Recompute(), ErrNoGradedWork)
	_, graded := c.Percent()
	assert.False(t, graded)
}

func TestWeighted_DropAndReplace(t *testing.T) {
	c := newTestCourse(t)
	require.NoError(t, c.AddCategory("Assignments", WithWeight(0.1), WithDrops(2)))
	require.NoError(t, c.AddCategory("Projects", WithWeight(0.2), WithReplacement(1, "Final Proj")))
	require.NoError(t, c.AddCategory("Proj Draft", WithWeight(0.25)))
	require.NoError(t, c.AddCategory("Final Proj", WithWeight(0.45)))

	for _, e := range []float64{9, 7, 9, 10, 9.5, 6, 10, 10} {
		require.NoError(t, c.AddGrade("Assignments", e, 10))
	}
	require.NoError(t, c.AddGrade("Projects", 25.5, 30))
	require.NoError(t, c.AddGrade("Projects", 28, 30))
	require.NoError(t, c.AddGrade("Projects", 23, 25))
	require.NoError(t, c.AddGrade("Projects", 12.5, 15))
	require.NoError(t, c.AddGrade("Proj Draft", 117.5, 125))
	require.NoError(t, c.AddGrade("Final Proj", 207, 225))

	pct, graded := c.Percent()
	require.True(t, graded)
	assert.InDelta(t, 92.77365591397849, pct, 1e-9)
	assert.Equal(t, "A", c.Letter())
	points, ok := c.Points()
	require.True(t, ok)
	assert.InDelta(t, 16.0, points, 1e-9)

	adj, ok := c.Adjusted("projects")
	require.True(t, ok)
	assert.Contains(t, adj.Scores, Score{Earned: 207, Possible: 225})
	assert.NotContains(t, adj.Scores, Score{Earned: 12.5, Possible: 15})

	_, ok = c.Adjusted("nope")
	assert.False(t, ok)
}

func TestPoints_TwoCategories(t *testing.T) {
	c := newTestCourse(t, WithMode(ModePoints), WithTotalPoints(20))
	require.NoError(t, c.AddCategory("a", WithWeight(0.7)))
	require.NoError(t, c.AddCategory("b"))
	require.NoError(t, c.AddGrade("a", 10, 10))
	require.NoError(t, c.AddGrade("b", 0, 10))

	pct, graded := c.Percent()
	require.True(t, graded)
	assert.InDelta(t, 50.0, pct, 1e-9)
	assert.Equal(t, "F", c.Letter())
	points, ok := c.Points()
	require.True(t, ok)
	assert.Zero(t, points)
	assert.InDelta(t, 20.0, c.TotalPoints(), 1e-9)

	require.NoError(t, c.AddExtra(5))
	pct, _ = c.Percent()
	assert.InDelta(t, 75.0, pct, 1e-9)
}

func TestPoints_NoPossibleIsNoop(t *testing.T) {
	c := newTestCourse(t, WithMode(ModePoints))
	require.NoError(t, c.AddCategory("a"))
	require.NoError(t, c.AddExtra(5))

	_, graded := c.Percent()
	assert.False(t, graded)
	assert.ErrorIs(t, c.Recompute(), ErrNoGradedWork)
}

func TestPoints_Drops(t *testing.T) {
	c := newTestCourse(t, WithMode(ModePoints))
	require.NoError(t, c.AddCategory("quiz", WithDrops(1)))
	require.NoError(t, c.AddGrade("quiz", 1, 10))
	require.NoError(t, c.AddGrade("quiz", 9, 10))
	require.NoError(t, c.AddGrade("quiz", 8, 10))

	pct, _ := c.Percent()
	assert.InDelta(t, 85.0, pct, 1e-9)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeWeighted, m)

	m, err = ParseMode("Points")
	require.NoError(t, err)
	assert.Equal(t, ModePoints, m)
	assert.Equal(t, "points", m.String())

	_, err = ParseMode("curve")
	assert.Error(t, err)
}
