package gpa

import (
	"math"
	"strconv"
	"strings"

	"gpa-tracker/internal/gradescale"
	"gpa-tracker/internal/model"
)

// Validation messages, shown to the user as-is.
const (
	MsgNameRequired   = "Course name is required"
	MsgCreditsInvalid = "Credits must be a positive number"
	MsgGradeInvalid   = "Invalid grade selected"
	MsgCreditsTooHigh = "Credits must be at most 1000"
)

// MaxCredits caps a single course's credit count.
const MaxCredits = 1000

// Result holds the aggregate statistics for a set of courses.
// GPA and TotalPoints are rounded to two decimals.
type Result struct {
	GPA          float64 `json:"gpa"`
	TotalCredits float64 `json:"totalCredits"`
	TotalPoints  float64 `json:"totalPoints"`
	CourseCount  int     `json:"courseCount"`
}

// Calculate computes the credit-weighted GPA of courses.
// An empty slice yields a zero Result.
func Calculate(courses []model.Course) Result {
	if len(courses) == 0 {
		return Result{}
	}

	var credits, points float64
	for _, c := range courses {
		credits += c.Credits
		points += c.QualityPoints()
	}

	var gpa float64
	if credits != 0 {
		gpa = points / credits
	}
	if math.IsInf(credits, 0) || math.IsInf(points, 0) {
		gpa = scaledMean(courses)
	}
	return Result{
		GPA:          Round2(gpa),
		TotalCredits: credits,
		TotalPoints:  Round2(points),
		CourseCount:  len(courses),
	}
}

// scaledMean is the weighted mean with every credit count divided by the
// largest one, so the sums stay finite for any finite credits.
func scaledMean(courses []model.Course) float64 {
	var largest float64
	for _, c := range courses {
		largest = max(largest, c.Credits)
	}
	if largest == 0 {
		return 0
	}
	var weights, weighted float64
	for _, c := range courses {
		w := c.Credits / largest
		weights += w
		weighted += w * c.Grade.Points()
	}
	if weights == 0 {
		return 0
	}
	return weighted / weights
}

// Round2 rounds x to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Validate checks raw course input. Every failing check contributes a
// message; an empty result means the input is valid.
func Validate(name string, credits float64, grade string) []string {
	var problems []string
	if strings.TrimSpace(name) == "" {
		problems = append(problems, MsgNameRequired)
	}
	switch {
	case math.IsNaN(credits) || math.IsInf(credits, 0) || credits <= 0:
		problems = append(problems, MsgCreditsInvalid)
	case credits > MaxCredits:
		problems = append(problems, MsgCreditsTooHigh)
	}
	if !gradescale.IsToken(grade) {
		problems = append(problems, MsgGradeInvalid)
	}
	return problems
}

// ValidateCourse applies the same checks to an already-built Course.
func ValidateCourse(c model.Course) []string {
	return Validate(c.Name, c.Credits, c.Grade.Token())
}

// ParseCredits reads a credit count typed by the user.
// Text that is not a number becomes NaN so Validate rejects it.
func ParseCredits(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// NewCourse validates input and builds a Course from it. On failure the
// error is a *ValidationError carrying every message.
func NewCourse(name string, credits float64, grade string) (model.Course, error) {
	if problems := Validate(name, credits, grade); len(problems) > 0 {
		return model.Course{}, &ValidationError{Messages: problems}
	}
	g, err := gradescale.Parse(grade)
	if err != nil {
		// Unreachable once Validate passes.
		return model.Course{}, err
	}
	return model.Course{
		Name:    strings.TrimSpace(name),
		Credits: credits,
		Grade:   g,
	}, nil
}
