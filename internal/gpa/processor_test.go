package gpa

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	"gpa-tracker/internal/gradescale"
	"gpa-tracker/internal/model"
)

func course(name string, credits float64, g gradescale.Grade) model.Course {
	return model.Course{Name: name, Credits: credits, Grade: g}
}

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil)
	if got != (Result{}) {
		t.Errorf("Calculate(nil) = %+v, want zero Result", got)
	}
	if got := Calculate([]model.Course{}); got != (Result{}) {
		t.Errorf("Calculate([]) = %+v, want zero Result", got)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name    string
		courses []model.Course
		want    Result
	}{
		{
			name:    "two equal-weight courses",
			courses: []model.Course{course("CS101", 3, gradescale.A), course("MA101", 3, gradescale.B)},
			want:    Result{GPA: 3.5, TotalCredits: 6, TotalPoints: 21, CourseCount: 2},
		},
		{
			name:    "single failing course",
			courses: []model.Course{course("PE100", 1, gradescale.F)},
			want:    Result{GPA: 0, TotalCredits: 1, TotalPoints: 0, CourseCount: 1},
		},
		{
			name: "fractional credits are rounded only in gpa and points",
			courses: []model.Course{
				course("LAB1", 1.5, gradescale.AMinus),
				course("HIST", 3, gradescale.CPlus),
				course("ART", 2, gradescale.BPlus),
			},
			// points = 5.55 + 6.9 + 6.6 = 19.05; gpa = 19.05 / 6.5 = 2.9307...
			want: Result{GPA: 2.93, TotalCredits: 6.5, TotalPoints: 19.05, CourseCount: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(tt.courses); got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateZeroCreditsGuard(t *testing.T) {
	got := Calculate([]model.Course{course("AUDIT", 0, gradescale.A)})
	if got.GPA != 0 || math.IsNaN(got.GPA) {
		t.Errorf("GPA = %v, want 0", got.GPA)
	}
	if got.CourseCount != 1 {
		t.Errorf("CourseCount = %d, want 1", got.CourseCount)
	}
}

func TestCalculateHugeCreditsStayInRange(t *testing.T) {
	tests := []struct {
		name    string
		courses []model.Course
		want    float64
	}{
		{"one course", []model.Course{course("Huge", 1e308, gradescale.A)}, 4},
		{"two courses", []model.Course{course("X", 1e308, gradescale.A), course("Y", 1e308, gradescale.A)}, 4},
		{"mixed grades", []model.Course{course("X", 1e308, gradescale.A), course("Y", 1e308, gradescale.F)}, 2},
		{"small course vanishes", []model.Course{course("X", 1e308, gradescale.B), course("Y", 3, gradescale.F)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.courses).GPA
			if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 || got > 4 {
				t.Fatalf("GPA = %v, want a value in [0, 4]", got)
			}
			if got != tt.want {
				t.Errorf("GPA = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateOrderIndependent(t *testing.T) {
	courses := []model.Course{
		course("A", 4, gradescale.A),
		course("B", 3, gradescale.CMinus),
		course("C", 0.5, gradescale.BMinus),
		course("D", 2, gradescale.D),
	}
	want := Calculate(courses)

	reversed := slices.Clone(courses)
	slices.Reverse(reversed)
	if got := Calculate(reversed); got != want {
		t.Errorf("reversed Calculate() = %+v, want %+v", got, want)
	}

	rotated := append(slices.Clone(courses[2:]), courses[:2]...)
	if got := Calculate(rotated); got != want {
		t.Errorf("rotated Calculate() = %+v, want %+v", got, want)
	}
}

func TestRound2(t *testing.T) {
	tests := map[float64]float64{
		3.506:  3.51,
		2.934:  2.93,
		3.5049: 3.5,
		2.0:    2,
		0.125:  0.13,
	}
	for in, want := range tests {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cname   string
		credits float64
		grade   string
		want    []string
	}{
		{"valid", "CS101", 3, "4.0", nil},
		{"fractional credits", "Lab", 0.5, "0.0", nil},
		{"empty name", "", 3, "4.0", []string{MsgNameRequired}},
		{"whitespace name", "   \t", 3, "4.0", []string{MsgNameRequired}},
		{"negative credits", "CS101", -1, "4.0", []string{MsgCreditsInvalid}},
		{"zero credits", "CS101", 0, "4.0", []string{MsgCreditsInvalid}},
		{"NaN credits", "CS101", math.NaN(), "4.0", []string{MsgCreditsInvalid}},
		{"infinite credits", "CS101", math.Inf(1), "4.0", []string{MsgCreditsInvalid}},
		{"largest allowed credits", "Thesis", MaxCredits, "4.0", nil},
		{"credits above cap", "CS101", 1000.5, "4.0", []string{MsgCreditsTooHigh}},
		{"huge credits", "CS101", 1e308, "4.0", []string{MsgCreditsTooHigh}},
		{"unknown grade", "CS101", 3, "9.9", []string{MsgGradeInvalid}},
		{"letter grade", "CS101", 3, "A", []string{MsgGradeInvalid}},
		{"all three", "", -1, "9.9", []string{MsgNameRequired, MsgCreditsInvalid, MsgGradeInvalid}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.cname, tt.credits, tt.grade)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate(%q, %v, %q) = %q, want %q", tt.cname, tt.credits, tt.grade, got, tt.want)
			}
		})
	}
}

func TestParseCredits(t *testing.T) {
	if got := ParseCredits(" 3.5 "); got != 3.5 {
		t.Errorf("ParseCredits(3.5) = %v", got)
	}
	if got := ParseCredits("three"); !math.IsNaN(got) {
		t.Errorf("ParseCredits(three) = %v, want NaN", got)
	}
	if got := ParseCredits(""); !math.IsNaN(got) {
		t.Errorf("ParseCredits(\"\") = %v, want NaN", got)
	}
}

func TestNewCourse(t *testing.T) {
	c, err := NewCourse("  Linear Algebra ", 4, "3.3")
	if err != nil {
		t.Fatalf("NewCourse() failed: %v", err)
	}
	want := model.Course{Name: "Linear Algebra", Credits: 4, Grade: gradescale.BPlus}
	if c != want {
		t.Errorf("NewCourse() = %+v, want %+v", c, want)
	}

	_, err = NewCourse("", 0, "B")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("NewCourse() error = %v, want *ValidationError", err)
	}
	if len(verr.Messages) != 3 {
		t.Errorf("ValidationError has %d messages, want 3: %v", len(verr.Messages), verr.Messages)
	}
	if !strings.Contains(verr.Error(), MsgCreditsInvalid) {
		t.Errorf("Error() = %q, missing credits message", verr.Error())
	}
}

func TestValidateCourse(t *testing.T) {
	if got := ValidateCourse(course("OK", 3, gradescale.C)); len(got) != 0 {
		t.Errorf("ValidateCourse(valid) = %v", got)
	}
	got := ValidateCourse(model.Course{Name: "Bad", Credits: 3})
	if !reflect.DeepEqual(got, []string{MsgGradeInvalid}) {
		t.Errorf("ValidateCourse(zero grade) = %v", got)
	}
}
