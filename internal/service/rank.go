package service

import (
	"sort"

	"github.com/urbanfix/backend/internal/models"
)

// StaffTask is the staff-facing view of an issue produced by RankTasks.
// DistanceKm is present only when the staff member's live coordinates were
// supplied; it is display information and never affects ordering.
type StaffTask struct {
	Issue       models.Issue `json:"issue"`
	StatusLabel string       `json:"status_label"`
	DistanceKm  *float64     `json:"distance_km,omitempty"`
}

// RankTasks orders a department's issues for a staff member: ascending by
// status priority, newest first within the same priority.
func RankTasks(issues []models.Issue, staffLat, staffLon *float64) []StaffTask {
	tasks := make([]StaffTask, 0, len(issues))
	for _, issue := range issues {
		task := StaffTask{
			Issue:       issue,
			StatusLabel: StaffStatusLabel(issue.Status),
		}
		if staffLat != nil && staffLon != nil {
			d := HaversineKm(*staffLat, *staffLon, issue.Latitude, issue.Longitude)
			task.DistanceKm = &d
		}
		tasks = append(tasks, task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		pi := statusPriority(tasks[i].Issue.Status)
		pj := statusPriority(tasks[j].Issue.Status)
		if pi != pj {
			return pi < pj
		}
		return tasks[i].Issue.CreatedAt.After(tasks[j].Issue.CreatedAt)
	})
	return tasks
}
