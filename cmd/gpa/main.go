package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"gpa-tracker/internal/config"
	"gpa-tracker/internal/coursestore"
	"gpa-tracker/internal/export"
	"gpa-tracker/internal/gpa"
	"gpa-tracker/internal/gradescale"
	"gpa-tracker/internal/templating"
	"gpa-tracker/internal/tracker"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// cli carries what every command handler needs.
type cli struct {
	tracker *tracker.Tracker
	logger  *slog.Logger
	in      *bufio.Reader
	out     io.Writer
}

// run executes one command and returns the process exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) < 1 {
		printUsage(stdout)
		return 2
	}

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "Path to a config file (default: ./gpa.yaml if present)")

	var (
		addName    *string
		addCredits *string
		addGrade   *string
		removeIdx  *int
		clearYes   *bool
		reportOut  *string
		reportOpen *bool
		exportOut  *string
	)
	switch cmd {
	case "list", "summary", "grades":
	case "add":
		addName = fs.String("name", "", "Course name (required)")
		addCredits = fs.String("credits", "", "Credit count, fractions allowed (required)")
		addGrade = fs.String("grade", "", "Grade token, e.g. 3.7 (see 'grades')")
	case "remove":
		removeIdx = fs.Int("index", -1, "Index of the course to remove, as shown by 'list' (required)")
	case "clear":
		clearYes = fs.Bool("yes", false, "Skip the confirmation prompt")
	case "report":
		reportOut = fs.String("out", "", "Write the report here instead of a temp file")
		reportOpen = fs.Bool("open", false, "Open the report in the default browser")
	case "export":
		exportOut = fs.String("out", "", "Path of the .xlsx file to write (required)")
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n", cmd)
		printUsage(stdout)
		return 2
	}
	if err := fs.Parse(rest); err != nil {
		return 2
	}

	if cmd == "grades" {
		handleGrades(stdout)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stdout, "Error loading config: %v\n", err)
		return 1
	}
	logger := cfg.NewLogger()

	backend, err := cfg.OpenBackend()
	if err != nil {
		fmt.Fprintf(stdout, "Error initializing storage: %v\n", err)
		return 1
	}
	defer backend.Close()

	store, err := coursestore.Open(backend, logger, coursestore.WithKey(cfg.StorageKey))
	if err != nil {
		fmt.Fprintf(stdout, "Error loading courses: %v\n", err)
		return 1
	}

	c := &cli{
		tracker: tracker.New(store, logger),
		logger:  logger,
		in:      bufio.NewReader(stdin),
		out:     stdout,
	}

	switch cmd {
	case "list":
		return c.handleList()
	case "summary":
		return c.handleSummary()
	case "add":
		return c.handleAdd(*addName, *addCredits, *addGrade)
	case "remove":
		if *removeIdx < 0 {
			fmt.Fprintln(stdout, "Error: -index flag is required for remove command")
			fs.Usage()
			return 2
		}
		return c.handleRemove(*removeIdx)
	case "clear":
		return c.handleClear(*clearYes)
	case "report":
		return c.handleReport(*reportOut, *reportOpen)
	case "export":
		if *exportOut == "" {
			fmt.Fprintln(stdout, "Error: -out flag is required for export command")
			fs.Usage()
			return 2
		}
		return c.handleExport(*exportOut)
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "\nUsage: gpa <command> [options]")
	fmt.Fprintln(w, "Available commands:")
	fmt.Fprintln(w, "  list          List courses with their index")
	fmt.Fprintln(w, "  add -name <name> -credits <n> -grade <token>")
	fmt.Fprintln(w, "                Add a course")
	fmt.Fprintln(w, "  remove -index <n>")
	fmt.Fprintln(w, "                Remove the course at index n")
	fmt.Fprintln(w, "  clear [-yes]  Remove every course (asks for confirmation)")
	fmt.Fprintln(w, "  summary       Show GPA, credits and points")
	fmt.Fprintln(w, "  grades        Show the grade scale")
	fmt.Fprintln(w, "  report [-out <file>] [-open]")
	fmt.Fprintln(w, "                Write an HTML report")
	fmt.Fprintln(w, "  export -out <file.xlsx>")
	fmt.Fprintln(w, "                Write the courses and totals to an Excel workbook")
	fmt.Fprintln(w, "All commands except grades accept -config <file>.")
}

func (c *cli) handleList() int {
	summary := c.tracker.Summary()
	if len(summary.Courses) == 0 {
		fmt.Fprintln(c.out, "No courses found.")
	} else {
		fmt.Fprintln(c.out, "Courses:")
		for _, v := range summary.Courses {
			fmt.Fprintf(c.out, "  [%d] %s  %s credits  %s (%s)\n",
				v.Index, v.Name, formatCredits(v.Credits), v.Label, v.Grade)
		}
	}
	printResult(c.out, summary.Result)
	return 0
}

func (c *cli) handleSummary() int {
	printResult(c.out, c.tracker.Summary().Result)
	return 0
}

func handleGrades(w io.Writer) {
	fmt.Fprintln(w, "Grade scale (token  label):")
	for _, g := range gradescale.All() {
		fmt.Fprintf(w, "  %s  %s\n", g.Token(), g.Label())
	}
}

func (c *cli) handleAdd(name, credits, grade string) int {
	summary, err := c.tracker.AddCourse(name, credits, grade)
	if err != nil {
		var verr *gpa.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(c.out, "Course not added:")
			for _, msg := range verr.Messages {
				fmt.Fprintf(c.out, "  - %s\n", msg)
			}
			return 1
		}
		fmt.Fprintf(c.out, "Error adding course: %v\n", err)
		return 1
	}
	added := summary.Courses[len(summary.Courses)-1]
	fmt.Fprintf(c.out, "Added [%d] %s (%s credits, %s).\n", added.Index, added.Name, formatCredits(added.Credits), added.Label)
	printResult(c.out, summary.Result)
	return 0
}

func (c *cli) handleRemove(index int) int {
	before := c.tracker.Summary()
	summary, err := c.tracker.RemoveCourse(index)
	if err != nil {
		if errors.Is(err, coursestore.ErrIndexOutOfRange) {
			fmt.Fprintf(c.out, "Error: no course at index %d (%d courses stored).\n", index, len(before.Courses))
			return 1
		}
		fmt.Fprintf(c.out, "Error removing course: %v\n", err)
		return 1
	}
	fmt.Fprintf(c.out, "Removed [%d] %s.\n", index, before.Courses[index].Name)
	printResult(c.out, summary.Result)
	return 0
}

func (c *cli) handleClear(skipConfirm bool) int {
	count := len(c.tracker.Summary().Courses)
	if count == 0 {
		fmt.Fprintln(c.out, "No courses found. Nothing to clear.")
		return 0
	}
	if !skipConfirm {
		fmt.Fprintf(c.out, "WARNING: You are about to permanently remove %d course(s).\n", count)
		if !c.askForConfirmation("Are you sure you want to proceed?") {
			fmt.Fprintln(c.out, "Operation cancelled.")
			return 0
		}
	}
	if _, err := c.tracker.ClearCourses(); err != nil {
		fmt.Fprintf(c.out, "Error clearing courses: %v\n", err)
		return 1
	}
	fmt.Fprintf(c.out, "Removed %d course(s).\n", count)
	return 0
}

func (c *cli) handleReport(outPath string, open bool) int {
	engine, err := templating.NewEngine()
	if err != nil {
		fmt.Fprintf(c.out, "Error loading templates: %v\n", err)
		return 1
	}
	html, err := engine.RenderReport(c.tracker.Summary(), time.Now())
	if err != nil {
		fmt.Fprintf(c.out, "Error generating report: %v\n", err)
		return 1
	}

	var f *os.File
	if outPath == "" {
		f, err = os.CreateTemp("", "gpa-report-*.html")
	} else {
		f, err = os.Create(outPath)
	}
	if err != nil {
		fmt.Fprintf(c.out, "Error creating report file: %v\n", err)
		return 1
	}
	if _, err := f.WriteString(html); err != nil {
		f.Close()
		fmt.Fprintf(c.out, "Error writing report file: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(c.out, "Error writing report file: %v\n", err)
		return 1
	}
	fmt.Fprintf(c.out, "Report saved to: %s\n", f.Name())

	if open {
		if err := openBrowser(f.Name()); err != nil {
			c.logger.Warn("Failed to open report in browser", "error", err)
			fmt.Fprintln(c.out, "Please open the file manually in your browser.")
		}
	}
	return 0
}

func (c *cli) handleExport(outPath string) int {
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(c.out, "Error creating export file: %v\n", err)
		return 1
	}
	if err := export.WriteXLSX(f, c.tracker.Summary()); err != nil {
		f.Close()
		fmt.Fprintf(c.out, "Error exporting courses: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(c.out, "Error writing export file: %v\n", err)
		return 1
	}
	fmt.Fprintf(c.out, "Exported to: %s\n", outPath)
	return 0
}

// askForConfirmation reads y/n answers until it gets one. EOF counts as no.
func (c *cli) askForConfirmation(prompt string) bool {
	for {
		fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
		response, err := c.in.ReadString('\n')
		if err != nil && response == "" {
			return false
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response == "y" || response == "yes" {
			return true
		} else if response == "n" || response == "no" || response == "" {
			return false
		}
		if err != nil {
			return false
		}
	}
}

// openBrowser tries to open the given URL/file path in the default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // "linux", "freebsd", "openbsd", "netbsd"
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

func printResult(w io.Writer, r gpa.Result) {
	fmt.Fprintf(w, "GPA: %.2f  Credits: %s  Points: %.2f  Courses: %d\n",
		r.GPA, formatCredits(r.TotalCredits), r.TotalPoints, r.CourseCount)
}

func formatCredits(v float64) string {
	return fmt.Sprintf("%g", v)
}
