package service

import "strings"

const (
	StatusReported   = "REPORTED"
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
)

// ParseStatus validates a caller-supplied status value. Any of the four
// canonical statuses may be set directly regardless of the current one;
// transition order is deliberately not enforced (see DESIGN.md).
func ParseStatus(value string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	switch v {
	case StatusReported, StatusAssigned, StatusInProgress, StatusResolved:
		return v, nil
	}
	return "", ErrInvalidStatus
}

// statusPriority orders issues for field staff: active work first,
// resolved work at the bottom.
func statusPriority(status string) int {
	switch status {
	case StatusAssigned:
		return 1
	case StatusInProgress:
		return 2
	case StatusReported:
		return 3
	case StatusResolved:
		return 4
	default:
		return 3
	}
}

// StaffStatusLabel maps a stored status to the staff-facing vocabulary.
// Unknown or missing statuses read as still awaiting validation.
func StaffStatusLabel(status string) string {
	switch status {
	case StatusAssigned:
		return "assigned"
	case StatusInProgress:
		return "in-progress"
	case StatusResolved:
		return "completed"
	default:
		return "validation"
	}
}
