package coursestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gpa-tracker/internal/gpa"
	"gpa-tracker/internal/model"
)

// CurrentVersion is the layout written by this package. Version 0 is the
// unversioned legacy layout: a bare JSON array of courses.
const CurrentVersion = 1

// document is the persisted form of the whole store.
type document struct {
	Version   int            `json:"version"`
	ProfileID string         `json:"profileId"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Courses   []model.Course `json:"courses"`
}

// legacyCourse is one element of a version 0 blob. Credits were stored
// as whatever the input field produced, so both strings and numbers occur.
type legacyCourse struct {
	Name    string        `json:"name"`
	Credits legacyCredits `json:"credits"`
	Grade   string        `json:"grade"`
}

type legacyCredits float64

func (c *legacyCredits) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("credits %q is not a number", s)
		}
		*c = legacyCredits(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = legacyCredits(v)
	return nil
}

// decode parses a stored blob of any known version. Blobs holding
// courses that would fail validation are rejected as corrupt.
func decode(data []byte) (document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return document{}, fmt.Errorf("empty blob")
	}
	if trimmed[0] == '[' {
		return decodeLegacy(trimmed)
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if doc.Version < 1 || doc.Version > CurrentVersion {
		return document{}, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	for i, c := range doc.Courses {
		if problems := gpa.ValidateCourse(c); len(problems) > 0 {
			return document{}, fmt.Errorf("course %d: %s", i, strings.Join(problems, "; "))
		}
	}
	return doc, nil
}

func decodeLegacy(data []byte) (document, error) {
	var legacy []legacyCourse
	if err := json.Unmarshal(data, &legacy); err != nil {
		return document{}, fmt.Errorf("unmarshal legacy courses: %w", err)
	}

	doc := document{Version: 0, Courses: make([]model.Course, 0, len(legacy))}
	for i, lc := range legacy {
		c, err := gpa.NewCourse(lc.Name, float64(lc.Credits), lc.Grade)
		if err != nil {
			return document{}, fmt.Errorf("legacy course %d: %w", i, err)
		}
		doc.Courses = append(doc.Courses, c)
	}
	return doc, nil
}

func encode(doc document) ([]byte, error) {
	if doc.Courses == nil {
		doc.Courses = []model.Course{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
