// Package export writes the course list as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"gpa-tracker/internal/tracker"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the courses.
const SheetName = "Courses"

var headers = []string{"#", "Course", "Credits", "Grade", "Label", "Grade Points", "Quality Points"}

// WriteXLSX writes one row per course followed by a blank row and the
// totals. Indexes match the ones shown by list and the web dashboard.
func WriteXLSX(w io.Writer, summary tracker.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("writing header %s: %w", cell, err)
		}
	}

	row := 2
	for _, c := range summary.Courses {
		values := []any{c.Index, c.Name, c.Credits, c.Grade, c.Label, c.Points, c.QualityPoints}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("writing course row %d: %w", row, err)
		}
		row++
	}

	row++
	totals := [][]any{
		{"GPA", summary.Result.GPA},
		{"Total Credits", summary.Result.TotalCredits},
		{"Total Points", summary.Result.TotalPoints},
		{"Courses", summary.Result.CourseCount},
	}
	for _, t := range totals {
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &t); err != nil {
			return fmt.Errorf("writing totals row %d: %w", row, err)
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
