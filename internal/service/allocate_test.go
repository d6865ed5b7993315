package service

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/urbanfix/backend/internal/models"
)

var testDepartments = []models.Department{
	{ID: 1, Name: "PWD", Latitude: 28.61, Longitude: 77.20},
	{ID: 2, Name: "Sanitation", Latitude: 28.65, Longitude: 77.23},
	{ID: 3, Name: "Water Supply", Latitude: 28.55, Longitude: 77.10},
}

func TestAllocateExplicitShortCircuits(t *testing.T) {
	explicit := int64(7)
	result, err := AllocateDepartment(AllocationInput{
		Description:          "There is a pothole on the main road",
		ExplicitDepartmentID: &explicit,
		Latitude:             28.61,
		Longitude:            77.20,
	}, testDepartments, DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != models.StrategyExplicit || result.DepartmentID != 7 {
		t.Fatalf("expected explicit allocation to 7, got %+v", result)
	}
	if result.NearestCandidate != nil || result.DistanceKm != nil {
		t.Fatalf("explicit allocation must not compute distances, got %+v", result)
	}
}

func TestAllocateByKeywords(t *testing.T) {
	result, err := AllocateDepartment(AllocationInput{
		Description: "There is a pothole on the main road",
		Latitude:    28.7,
		Longitude:   77.3,
	}, testDepartments, DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != models.StrategyKeywords || result.DepartmentID != 1 {
		t.Fatalf("expected keyword allocation to PWD (1), got %+v", result)
	}
}

func TestAllocateFallsBackToNearest(t *testing.T) {
	result, err := AllocateDepartment(AllocationInput{
		Description: "something unusual happened here",
		Latitude:    28.60,
		Longitude:   77.19,
	}, testDepartments, DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != models.StrategyNearest || result.DepartmentID != 1 {
		t.Fatalf("expected nearest allocation to 1, got %+v", result)
	}
	if result.NearestCandidate == nil || result.NearestCandidate.ID != 1 {
		t.Fatalf("expected nearest candidate populated, got %+v", result.NearestCandidate)
	}
	if result.DistanceKm == nil || *result.DistanceKm < 0 {
		t.Fatalf("expected distance populated, got %v", result.DistanceKm)
	}
}

func TestAllocateUnresolvableKeywordNameFallsBack(t *testing.T) {
	rules := []models.DepartmentRule{
		{Department: "Horticulture", Keywords: []string{"fallen tree"}},
	}
	result, err := AllocateDepartment(AllocationInput{
		Description: "a fallen tree is blocking the lane",
		Latitude:    28.60,
		Longitude:   77.19,
	}, testDepartments, rules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != models.StrategyNearest {
		t.Fatalf("expected nearest fallback when name resolves to no record, got %+v", result)
	}
}

func TestAllocateValidation(t *testing.T) {
	cases := []struct {
		name  string
		in    AllocationInput
		field string
	}{
		{"empty description", AllocationInput{Description: "   ", Latitude: 1, Longitude: 1}, "description"},
		{"long description", AllocationInput{Description: strings.Repeat("a", 501), Latitude: 1, Longitude: 1}, "description"},
		{"nan latitude", AllocationInput{Description: "pothole", Latitude: math.NaN(), Longitude: 1}, "latitude"},
		{"inf longitude", AllocationInput{Description: "pothole", Latitude: 1, Longitude: math.Inf(-1)}, "longitude"},
	}
	for _, tc := range cases {
		_, err := AllocateDepartment(tc.in, testDepartments, DefaultRules())
		var invalid *InvalidIssueDataError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidIssueDataError, got %v", tc.name, err)
		}
		if invalid.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, invalid.Field)
		}
	}
}

func TestAllocateDescriptionLimitCountsRunes(t *testing.T) {
	// 300 characters but 900 bytes; the limit is characters.
	result, err := AllocateDepartment(AllocationInput{
		Description: strings.Repeat("क", 300),
		Latitude:    28.60,
		Longitude:   77.19,
	}, testDepartments, DefaultRules())
	if err != nil {
		t.Fatalf("expected 300-rune description to pass validation, got %v", err)
	}
	if result.Strategy != models.StrategyNearest {
		t.Fatalf("expected nearest fallback, got %+v", result)
	}

	_, err = AllocateDepartment(AllocationInput{
		Description: strings.Repeat("क", 501),
		Latitude:    28.60,
		Longitude:   77.19,
	}, testDepartments, DefaultRules())
	var invalid *InvalidIssueDataError
	if !errors.As(err, &invalid) || invalid.Field != "description" {
		t.Fatalf("expected description error for 501 runes, got %v", err)
	}
}

func TestAllocateNoDepartments(t *testing.T) {
	_, err := AllocateDepartment(AllocationInput{
		Description: "something unusual happened here",
		Latitude:    1,
		Longitude:   1,
	}, nil, DefaultRules())
	if !errors.Is(err, ErrNoDepartments) {
		t.Fatalf("expected ErrNoDepartments, got %v", err)
	}
}
