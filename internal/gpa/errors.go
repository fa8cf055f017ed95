package gpa

import "strings"

// ValidationError reports user input that cannot become a Course.
// Nothing is mutated when it is returned.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid course: " + strings.Join(e.Messages, "; ")
}
