package templating

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"gpa-tracker/internal/tracker"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages rendered inside layout.html. Each defines a "content" block.
var pages = []string{
	"dashboard.html",
}

var funcs = template.FuncMap{
	// fixed2 renders a GPA or point total, always with two decimals.
	"fixed2": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	// credits renders credits without trailing zeros: 3, 1.5.
	"credits": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"year":    func() int { return time.Now().Year() },
}

// Engine handles template parsing and execution.
type Engine struct {
	pages  map[string]*template.Template
	report *template.Template
}

// ReportData is passed to the standalone report template.
type ReportData struct {
	Summary     tracker.Summary
	GeneratedAt time.Time
}

// NewEngine parses the embedded page and report templates.
func NewEngine() (*Engine, error) {
	cache := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		ts, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %s: %w", page, err)
		}
		cache[page] = ts
	}

	report, err := template.New("report.html").Funcs(funcs).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing report template: %w", err)
	}
	return &Engine{pages: cache, report: report}, nil
}

// Render executes layout.html with the named page's content block.
// Output is buffered so a failed execution writes nothing to w.
func (e *Engine) Render(w io.Writer, page string, data any) error {
	ts, ok := e.pages[page]
	if !ok {
		return fmt.Errorf("template %s not found", page)
	}
	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderReport produces a self-contained HTML transcript of summary.
func (e *Engine) RenderReport(summary tracker.Summary, generatedAt time.Time) (string, error) {
	var buf bytes.Buffer
	err := e.report.ExecuteTemplate(&buf, "report.html", ReportData{Summary: summary, GeneratedAt: generatedAt})
	if err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}
