package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/nosurf"
)

// routes returns the full handler: router plus CSRF protection.
func (app *application) routes() http.Handler {
	csrf := nosurf.New(app.router())
	csrf.SetBaseCookie(http.Cookie{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	csrf.SetFailureHandler(http.HandlerFunc(app.csrfFailureHandler))
	return csrf
}

// router sets up the chi routes without CSRF checks.
func (app *application) router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", app.dashboardHandler)

	r.Post("/courses", app.addCourseHandler)
	r.Post("/courses/clear", app.clearCoursesHandler)
	r.Post("/courses/{index}/delete", app.deleteCourseHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", app.apiSummaryHandler)
		r.Get("/grades", app.apiGradesHandler)
	})

	r.Get("/export.xlsx", app.exportHandler)

	return r
}
