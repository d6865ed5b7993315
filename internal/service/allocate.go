package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/urbanfix/backend/internal/models"
)

const maxDescriptionLen = 500

// AllocationInput is the issue intake data the allocator decides on. The
// caller has already fetched departments and rules; allocation itself does
// no I/O.
type AllocationInput struct {
	Description          string
	IssueType            string
	ExplicitDepartmentID *int64
	Latitude             float64
	Longitude            float64
}

// AllocateDepartment assigns a department to a new issue. Policy order,
// first success wins: an explicit department id is used verbatim, then
// keyword classification of the issue text, then the nearest department to
// the issue coordinates. Intake validation failures abort before any
// allocation attempt.
func AllocateDepartment(in AllocationInput, departments []models.Department, rules []models.DepartmentRule) (models.AllocationResult, error) {
	if err := validateIntake(in); err != nil {
		return models.AllocationResult{}, err
	}

	if in.ExplicitDepartmentID != nil {
		// The caller validated the id exists; use it as-is.
		return models.AllocationResult{
			DepartmentID: *in.ExplicitDepartmentID,
			Strategy:     models.StrategyExplicit,
		}, nil
	}

	if name, ok := ClassifyDepartment(in.Description, in.IssueType, rules); ok {
		if dept, found := ResolveDepartmentByName(name, departments); found {
			return models.AllocationResult{
				DepartmentID: dept.ID,
				Strategy:     models.StrategyKeywords,
			}, nil
		}
	}

	dept, distKm, err := NearestDepartment(in.Latitude, in.Longitude, departments)
	if err != nil {
		return models.AllocationResult{}, err
	}
	nearest := dept
	return models.AllocationResult{
		DepartmentID:     dept.ID,
		Strategy:         models.StrategyNearest,
		NearestCandidate: &nearest,
		DistanceKm:       &distKm,
	}, nil
}

func validateIntake(in AllocationInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return &InvalidIssueDataError{Field: "description", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return &InvalidIssueDataError{Field: "description", Reason: "must be at most 500 characters"}
	}
	if !isFinite(in.Latitude) {
		return &InvalidIssueDataError{Field: "latitude", Reason: "must be a finite number"}
	}
	if !isFinite(in.Longitude) {
		return &InvalidIssueDataError{Field: "longitude", Reason: "must be a finite number"}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
