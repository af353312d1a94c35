package grade

// GPA returns total grade points over total units of the courses included
// in a GPA. Withdrawn, replaced, incomplete, pass/fail and ungraded courses
// are skipped.
func GPA(courses []*Course) (float64, error) {
	var points float64
	var units int
	for _, c := range courses {
		if c == nil || !c.IncludedInGPA() {
			continue
		}
		points += c.points
		units += c.units
	}
	if units == 0 {
		return 0, ErrNoGPACourses
	}
	return points / float64(units), nil
}
