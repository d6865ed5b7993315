package models

import "time"

const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	DepartmentID *int64    `json:"department_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Department struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Issue struct {
	ID           string    `json:"id"`
	CitizenID    int64     `json:"citizen_id"`
	DepartmentID *int64    `json:"department_id"`
	IssueType    *string   `json:"issue_type,omitempty"`
	Description  string    `json:"description"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Address      *string   `json:"address,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// DepartmentRule pairs a department name with the keywords that route
// free-text issue descriptions to it. Rules are immutable after load.
type DepartmentRule struct {
	Department string   `json:"department"`
	Keywords   []string `json:"keywords"`
}

type AllocationStrategy string

const (
	StrategyExplicit AllocationStrategy = "EXPLICIT"
	StrategyKeywords AllocationStrategy = "KEYWORDS"
	StrategyNearest  AllocationStrategy = "NEAREST"
)

// AllocationResult records which department an issue was routed to and how
// the decision was reached. NearestCandidate and DistanceKm are populated
// only for the NEAREST strategy.
type AllocationResult struct {
	DepartmentID     int64              `json:"department_id"`
	Strategy         AllocationStrategy `json:"strategy"`
	NearestCandidate *Department        `json:"nearest_candidate,omitempty"`
	DistanceKm       *float64           `json:"distance_km,omitempty"`
}

// AttendanceRecord is an append-only log entry of a staff member checking
// in at an issue site.
type AttendanceRecord struct {
	ID             int64     `json:"id"`
	IssueID        string    `json:"issue_id"`
	StaffID        int64     `json:"staff_id"`
	StaffLatitude  float64   `json:"staff_latitude"`
	StaffLongitude float64   `json:"staff_longitude"`
	DistanceMeters float64   `json:"distance_meters"`
	CreatedAt      time.Time `json:"created_at"`
}
