package domain

import (
	"errors"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusOnHold    ProjectStatus = "On Hold"
)

// ErrProjectCompleted is returned by transitions applied to a project that is already completed.
var ErrProjectCompleted = errors.New("project is already completed")

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

// Project is a unit of work tracked for its owner.
type Project struct {
	ID             string
	Title          string
	Description    string
	Category       string
	Status         ProjectStatus
	OwnerID        string
	CreatedAt      time.Time
	CompletionDate *time.Time
}

// Complete moves the project to Completed and stamps the completion date.
func (p *Project) Complete(at time.Time) error {
	if p.Status == ProjectStatusCompleted {
		return ErrProjectCompleted
	}
	p.Status = ProjectStatusCompleted
	p.CompletionDate = &at
	return nil
}

// ProjectStats summarizes an owner's projects for dashboards.
type ProjectStats struct {
	Total      int
	Year       int
	ByStatus   map[ProjectStatus]int
	ByCategory map[string]int
	// Monthly holds per-status counts for projects created in Year, index 0 is January.
	Monthly [12]map[ProjectStatus]int
}
