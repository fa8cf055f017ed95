package tracker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gpa-tracker/internal/coursestore"
	"gpa-tracker/internal/gpa"
)

// CourseView is a course as shown to the user, with its derived values.
type CourseView struct {
	Index         int     `json:"index"`
	Name          string  `json:"name"`
	Credits       float64 `json:"credits"`
	Grade         string  `json:"grade"`
	Label         string  `json:"label"`
	Points        float64 `json:"points"`
	QualityPoints float64 `json:"qualityPoints"`
}

// Summary is the full state a presentation layer renders.
type Summary struct {
	ProfileID string       `json:"profileId"`
	Courses   []CourseView `json:"courses"`
	Result    gpa.Result   `json:"result"`
}

// Tracker runs user actions against the course store: validate, mutate,
// persist, then recompute. Confirmation of destructive actions is left
// to the caller.
type Tracker struct {
	store  *coursestore.Store
	logger *slog.Logger
}

// New creates a Tracker over store.
func New(store *coursestore.Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Tracker{store: store, logger: logger}
}

// AddCourse validates raw input and stores the course. Validation problems
// come back as a *gpa.ValidationError listing every message; the store is
// untouched in that case.
func (t *Tracker) AddCourse(name, creditsText, gradeToken string) (Summary, error) {
	credits := gpa.ParseCredits(creditsText)
	course, err := gpa.NewCourse(name, credits, gradeToken)
	if err != nil {
		var verr *gpa.ValidationError
		if errors.As(err, &verr) {
			t.logger.Debug("Rejected course input", "name", name, "credits", creditsText, "grade", gradeToken, "problems", verr.Messages)
		}
		return t.Summary(), err
	}

	if err := t.store.Add(course); err != nil {
		t.logger.Error("Error adding course", "name", course.Name, "error", err)
		return t.Summary(), fmt.Errorf("adding course %q failed: %w", course.Name, err)
	}
	return t.Summary(), nil
}

// RemoveCourse deletes the course at index.
func (t *Tracker) RemoveCourse(index int) (Summary, error) {
	if err := t.store.RemoveAt(index); err != nil {
		t.logger.Warn("Error removing course", "index", index, "error", err)
		return t.Summary(), fmt.Errorf("removing course %d failed: %w", index, err)
	}
	return t.Summary(), nil
}

// ClearCourses deletes every course.
func (t *Tracker) ClearCourses() (Summary, error) {
	if err := t.store.Clear(); err != nil {
		t.logger.Error("Error clearing courses", "error", err)
		return t.Summary(), fmt.Errorf("clearing courses failed: %w", err)
	}
	return t.Summary(), nil
}

// Summary recomputes the current view from the store.
func (t *Tracker) Summary() Summary {
	courses := t.store.All()
	views := make([]CourseView, 0, len(courses))
	for i, c := range courses {
		views = append(views, CourseView{
			Index:         i,
			Name:          c.Name,
			Credits:       c.Credits,
			Grade:         c.Grade.Token(),
			Label:         c.Grade.Label(),
			Points:        c.Grade.Points(),
			QualityPoints: gpa.Round2(c.QualityPoints()),
		})
	}
	return Summary{
		ProfileID: t.store.ProfileID(),
		Courses:   views,
		Result:    gpa.Calculate(courses),
	}
}
