package gradescale

import (
	"errors"
	"fmt"
)

// ErrUnknownGrade is returned when a grade token is not part of the fixed scale.
var ErrUnknownGrade = errors.New("unknown grade")

// UnknownLabel is shown for tokens that are not on the scale.
const UnknownLabel = "Unknown"

// Grade is one step of the fixed grade scale. The zero value is not a valid grade.
type Grade uint8

const (
	invalid Grade = iota
	A
	AMinus
	BPlus
	B
	BMinus
	CPlus
	C
	CMinus
	DPlus
	D
	F
)

type entry struct {
	token  string
	points float64
	label  string
}

// Indexed by Grade, highest first.
var scale = [...]entry{
	invalid: {},
	A:       {"4.0", 4.0, "A"},
	AMinus:  {"3.7", 3.7, "A-"},
	BPlus:   {"3.3", 3.3, "B+"},
	B:       {"3.0", 3.0, "B"},
	BMinus:  {"2.7", 2.7, "B-"},
	CPlus:   {"2.3", 2.3, "C+"},
	C:       {"2.0", 2.0, "C"},
	CMinus:  {"1.7", 1.7, "C-"},
	DPlus:   {"1.3", 1.3, "D+"},
	D:       {"1.0", 1.0, "D"},
	F:       {"0.0", 0.0, "F"},
}

var byToken = func() map[string]Grade {
	m := make(map[string]Grade, len(scale)-1)
	for g := A; g <= F; g++ {
		m[scale[g].token] = g
	}
	return m
}()

// Parse maps a grade token such as "3.7" to its Grade.
// Only the exact tokens of the scale are accepted.
func Parse(token string) (Grade, error) {
	g, ok := byToken[token]
	if !ok {
		return invalid, fmt.Errorf("%w: %q", ErrUnknownGrade, token)
	}
	return g, nil
}

// GradePointOf returns the grade-point value of a token.
func GradePointOf(token string) (float64, error) {
	g, err := Parse(token)
	if err != nil {
		return 0, err
	}
	return g.Points(), nil
}

// LabelOf returns the display label of a token, or UnknownLabel.
// Unlike GradePointOf it never fails.
func LabelOf(token string) string {
	g, ok := byToken[token]
	if !ok {
		return UnknownLabel
	}
	return g.Label()
}

// IsToken reports whether token is on the scale.
func IsToken(token string) bool {
	_, ok := byToken[token]
	return ok
}

// All returns every grade, highest first.
func All() []Grade {
	grades := make([]Grade, 0, len(scale)-1)
	for g := A; g <= F; g++ {
		grades = append(grades, g)
	}
	return grades
}

// Tokens returns every grade token, highest first.
func Tokens() []string {
	tokens := make([]string, 0, len(scale)-1)
	for g := A; g <= F; g++ {
		tokens = append(tokens, scale[g].token)
	}
	return tokens
}

// Valid reports whether g is one of the scale's grades.
func (g Grade) Valid() bool {
	return g >= A && g <= F
}

// Token returns the grade token, or "" for an invalid grade.
func (g Grade) Token() string {
	if !g.Valid() {
		return ""
	}
	return scale[g].token
}

// Points returns the grade-point value. Invalid grades are worth 0.
func (g Grade) Points() float64 {
	if !g.Valid() {
		return 0
	}
	return scale[g].points
}

// Label returns the letter label, e.g. "B+".
func (g Grade) Label() string {
	if !g.Valid() {
		return UnknownLabel
	}
	return scale[g].label
}

func (g Grade) String() string {
	if !g.Valid() {
		return UnknownLabel
	}
	return scale[g].label + " (" + scale[g].token + ")"
}

// MarshalText encodes the grade as its token.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: grade %d", ErrUnknownGrade, uint8(g))
	}
	return []byte(scale[g].token), nil
}

// UnmarshalText decodes a grade token.
func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
