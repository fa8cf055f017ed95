package model

import "gpa-tracker/internal/gradescale"

// Course is a single graded course as entered by the user.
// Courses have no ID; their position in the store is their identity.
type Course struct {
	Name    string           `json:"name"`    // Trimmed, non-empty
	Credits float64          `json:"credits"` // Positive; fractional credits allowed
	Grade   gradescale.Grade `json:"grade"`   // Encoded as the grade token, e.g. "3.7"
}

// QualityPoints is credits weighted by the grade-point value.
func (c Course) QualityPoints() float64 {
	return c.Credits * c.Grade.Points()
}
