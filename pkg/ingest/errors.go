package ingest

import (
	"fmt"
	"strings"
)

// SizeExceededError is returned when a file is larger than the configured limit.
type SizeExceededError struct {
	LimitMB int64
}

func (e SizeExceededError) Error() string {
	return fmt.Sprintf("file exceeds the %d MB size limit", e.LimitMB)
}

// TypeNotAllowedError is returned when a file's extension is missing or not in
// the allow-list.
type TypeNotAllowedError struct {
	Allowed []string
}

func (e TypeNotAllowedError) Error() string {
	return "file type not allowed, expected one of: " + strings.Join(e.Allowed, ", ")
}

// MultiplicityError is returned when the resolved file count violates the
// multiplicity rule.
type MultiplicityError struct {
	Count int
}

func (e MultiplicityError) Error() string {
	return fmt.Sprintf("expected exactly one file, got %d", e.Count)
}
