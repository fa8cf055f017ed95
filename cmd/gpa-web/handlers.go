package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"gpa-tracker/internal/coursestore"
	"gpa-tracker/internal/export"
	"gpa-tracker/internal/gpa"
	"gpa-tracker/internal/gradescale"
	"gpa-tracker/internal/tracker"

	"github.com/go-chi/chi/v5"
	"github.com/justinas/nosurf"
)

// courseForm echoes the submitted add-course fields back into the form.
type courseForm struct {
	Name    string
	Credits string
	Grade   string
}

// gradeOption is one entry of the grade select control.
type gradeOption struct {
	Token  string  `json:"token"`
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

func gradeOptions() []gradeOption {
	grades := gradescale.All()
	options := make([]gradeOption, 0, len(grades))
	for _, g := range grades {
		options = append(options, gradeOption{Token: g.Token(), Label: g.Label(), Points: g.Points()})
	}
	return options
}

// newTemplateData creates the map passed to the dashboard template.
func (app *application) newTemplateData(r *http.Request, summary tracker.Summary) map[string]any {
	return map[string]any{
		"CSRFToken": nosurf.Token(r),
		"Summary":   summary,
		"Grades":    gradeOptions(),
		"Form":      courseForm{},
		"Flash":     r.URL.Query().Get("msg"),
		"Error":     r.URL.Query().Get("error"),
	}
}

func (app *application) render(w http.ResponseWriter, status int, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := app.engine.Render(w, "dashboard.html", data); err != nil {
		app.logger.Error("Error executing dashboard template", "error", err)
	}
}

func redirectWith(w http.ResponseWriter, r *http.Request, param, message string) {
	http.Redirect(w, r, "/?"+param+"="+url.QueryEscape(message), http.StatusSeeOther)
}

// dashboardHandler serves the course list, totals and add form.
func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	summary := app.tracker.Summary()
	app.mu.Unlock()

	app.render(w, http.StatusOK, app.newTemplateData(r, summary))
}

// addCourseHandler handles the add-course form. Validation problems
// re-render the form with every message and the submitted values.
func (app *application) addCourseHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.logger.Error("Error parsing add course form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := courseForm{
		Name:    r.PostForm.Get("name"),
		Credits: r.PostForm.Get("credits"),
		Grade:   r.PostForm.Get("grade"),
	}

	app.mu.Lock()
	summary, err := app.tracker.AddCourse(form.Name, form.Credits, form.Grade)
	app.mu.Unlock()

	if err != nil {
		data := app.newTemplateData(r, summary)
		data["Form"] = form
		var verr *gpa.ValidationError
		if errors.As(err, &verr) {
			data["FormErrors"] = verr.Messages
			app.render(w, http.StatusUnprocessableEntity, data)
			return
		}
		app.logger.Error("Error adding course", "error", err)
		data["Error"] = "The course could not be saved. Please try again."
		app.render(w, http.StatusInternalServerError, data)
		return
	}

	added := summary.Courses[len(summary.Courses)-1]
	redirectWith(w, r, "msg", "Added "+added.Name+".")
}

// deleteCourseHandler removes the course at the {index} URL parameter.
func (app *application) deleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Bad Request - invalid course index", http.StatusBadRequest)
		return
	}

	app.mu.Lock()
	_, err = app.tracker.RemoveCourse(index)
	app.mu.Unlock()

	if err != nil {
		if errors.Is(err, coursestore.ErrIndexOutOfRange) {
			app.logger.Warn("Delete requested for missing course", "index", index)
			http.Error(w, "Course not found", http.StatusNotFound)
			return
		}
		app.logger.Error("Error removing course", "index", index, "error", err)
		redirectWith(w, r, "error", "The course could not be removed. Please try again.")
		return
	}
	redirectWith(w, r, "msg", "Course removed.")
}

// clearCoursesHandler removes every course, but only with confirm=yes.
func (app *application) clearCoursesHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.logger.Error("Error parsing clear form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("confirm") != "yes" {
		redirectWith(w, r, "error", "Tick the confirmation box to clear all courses.")
		return
	}

	app.mu.Lock()
	_, err := app.tracker.ClearCourses()
	app.mu.Unlock()

	if err != nil {
		app.logger.Error("Error clearing courses", "error", err)
		redirectWith(w, r, "error", "Courses could not be cleared. Please try again.")
		return
	}
	redirectWith(w, r, "msg", "All courses cleared.")
}

// apiSummaryHandler returns the courses and totals as JSON.
func (app *application) apiSummaryHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	summary := app.tracker.Summary()
	app.mu.Unlock()

	app.writeJSON(w, http.StatusOK, summary)
}

// apiGradesHandler returns the grade scale as JSON.
func (app *application) apiGradesHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, gradeOptions())
}

// exportHandler sends the courses and totals as an Excel download.
func (app *application) exportHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	summary := app.tracker.Summary()
	app.mu.Unlock()

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, summary); err != nil {
		app.logger.Error("Error exporting courses", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="courses.xlsx"`)
	buf.WriteTo(w)
}

func (app *application) csrfFailureHandler(w http.ResponseWriter, r *http.Request) {
	app.logger.Warn("CSRF check failed", "path", r.URL.Path, "reason", nosurf.Reason(r))
	http.Error(w, "Bad Request - invalid CSRF token", http.StatusBadRequest)
}

// writeJSON encodes v in full before any header is written.
func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		app.logger.Error("Error encoding JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
