package service

import (
	"errors"
	"fmt"
)

var (
	ErrNoDepartments     = errors.New("no departments available")
	ErrInvalidStatus     = errors.New("invalid issue status")
	ErrInvalidAttendance = errors.New("invalid attendance coordinates")
)

// InvalidIssueDataError reports which intake field failed validation.
type InvalidIssueDataError struct {
	Field  string
	Reason string
}

func (e *InvalidIssueDataError) Error() string {
	return fmt.Sprintf("invalid issue data: %s %s", e.Field, e.Reason)
}
