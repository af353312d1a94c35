package report

import (
	"testing"

	"github.com/mchmarny/gradepoint/pkg/grade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCourse(t *testing.T, opts ...grade.CourseOption) *grade.Course {
	t.Helper()
	inst, err := grade.NewInstitution("State", grade.UniversityPoints)
	require.NoError(t, err)
	c, err := grade.NewCourse("Algorithms", 3, grade.Standard, inst, opts...)
	require.NoError(t, err)
	return c
}

func TestNewCourse_Weighted(t *testing.T) {
	c := testCourse(t, grade.WithDetails(grade.Details{CRN: 7, Instructor: "Knuth"}))
	require.NoError(t, c.AddCategory("hw", grade.WithWeight(0.5), grade.WithDrops(1)))
	require.NoError(t, c.AddCategory("exam", grade.WithWeight(0.5), grade.WithReplacement(1, "hw")))
	require.NoError(t, c.AddGrade("hw", 5, 10))
	require.NoError(t, c.AddGrade("hw", 9, 10))
	require.NoError(t, c.AddGrade("exam", 80, 100))
	require.NoError(t, c.AddExtra(1.5))

	v := NewCourse(c)
	assert.Equal(t, "Algorithms", v.Name)
	assert.Equal(t, int64(7), v.CRN)
	assert.Equal(t, "State", v.Institution)
	assert.Equal(t, "STD", v.Scale)
	assert.Equal(t, "weighted", v.Mode)
	assert.Equal(t, "normal", v.Standing)
	require.NotNil(t, v.Percent)
	assert.InDelta(t, 86.5, *v.Percent, 1e-9)
	assert.Equal(t, "B", v.Letter)
	require.NotNil(t, v.Points)
	assert.InDelta(t, 9.0, *v.Points, 1e-9)
	assert.True(t, v.IncludedInGPA)

	require.Len(t, v.Categories, 3)
	hw := v.Categories[0]
	assert.Equal(t, "HW", hw.Name)
	assert.Equal(t, "0.5", hw.Weight)
	assert.Equal(t, "1", hw.Drops)
	assert.Equal(t, "5/10, 9/10", hw.Points)
	assert.Equal(t, "9/10", hw.Counted)
	require.NotNil(t, hw.Percent)
	assert.InDelta(t, 90.0, *hw.Percent, 1e-9)

	exam := v.Categories[1]
	assert.Equal(t, "1 from HW", exam.Replace)

	extra := v.Categories[2]
	assert.Equal(t, "EXTRA", extra.Name)
	assert.Equal(t, "N/A", extra.Weight)
	assert.Equal(t, "N/A", extra.Drops)
	assert.Equal(t, "1.5%", extra.Points)
}

func TestNewCourse_Ungraded(t *testing.T) {
	c := testCourse(t, grade.WithMode(grade.ModePoints), grade.WithTotalPoints(500))
	require.NoError(t, c.AddCategory("labs"))

	v := NewCourse(c)
	assert.Nil(t, v.Percent)
	assert.Nil(t, v.Points)
	assert.Empty(t, v.Letter)
	assert.Equal(t, "points", v.Mode)
	assert.InDelta(t, 500.0, v.TotalPoints, 1e-9)
	require.Len(t, v.Categories, 1)
	assert.Equal(t, "N/A", v.Categories[0].Weight)
	assert.Nil(t, v.Categories[0].Percent)
}

func TestNew(t *testing.T) {
	graded := testCourse(t)
	require.NoError(t, graded.AddCategory("all", grade.WithWeight(1)))
	require.NoError(t, graded.AddGrade("all", 95, 100))

	withdrawn := testCourse(t)
	withdrawn.SetWithdrawn()

	r, err := New("book.yaml", []*grade.Course{graded, withdrawn, nil})
	require.NoError(t, err)
	assert.Equal(t, "book.yaml", r.Source)
	require.Len(t, r.Courses, 2)
	assert.Equal(t, "withdrawn", r.Courses[1].Standing)
	assert.Nil(t, r.Courses[1].Points)
	require.NotNil(t, r.GPA)
	assert.InDelta(t, 4.0, *r.GPA, 1e-9)
}

func TestNew_NoGPA(t *testing.T) {
	r, err := New("", []*grade.Course{testCourse(t)})
	require.NoError(t, err)
	assert.Nil(t, r.GPA)
	assert.Len(t, r.Courses, 1)
}
