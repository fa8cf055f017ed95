package export

import (
	"bytes"
	"testing"

	"gpa-tracker/internal/gpa"
	"gpa-tracker/internal/tracker"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	summary := tracker.Summary{
		Courses: []tracker.CourseView{
			{Index: 0, Name: "CS101", Credits: 3, Grade: "4.0", Label: "A", Points: 4, QualityPoints: 12},
			{Index: 1, Name: "Lab", Credits: 1.5, Grade: "3.3", Label: "B+", Points: 3.3, QualityPoints: 4.95},
		},
		Result: gpa.Result{GPA: 3.77, TotalCredits: 4.5, TotalPoints: 16.95, CourseCount: 2},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, summary); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "#"},
		{"B1", "Course"},
		{"G1", "Quality Points"},
		{"B2", "CS101"},
		{"C2", "3"},
		{"E2", "A"},
		{"B3", "Lab"},
		{"C3", "1.5"},
		{"D3", "3.3"},
		{"A5", "GPA"},
		{"B5", "3.77"},
		{"A8", "Courses"},
		{"B8", "2"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(SheetName, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("cell %s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, tracker.Summary{}); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue(SheetName, "A3")
	if got != "GPA" {
		t.Errorf("totals should follow the header directly, A3 = %q", got)
	}
}
