// Package grade implements the course grade engine: letter scales,
// institution grade-point scales, per-category drop and replacement rules,
// weighted and point-based aggregation, course standing overrides and GPA.
//
// A [Course] is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access to it.
package grade
