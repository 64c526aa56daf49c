package repository

import (
	"context"
	"errors"

	"project-tracker/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)

// MutateFunc changes a project in place. Returning an error aborts the write.
type MutateFunc func(p *domain.Project) error

// ProjectRepository exposes owner-scoped persistence for projects.
// Every lookup by id also matches the owner, so foreign projects behave as missing.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Get(ctx context.Context, ownerID, id string) (*domain.Project, error)
	// ListByOwner returns the owner's projects, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	// Mutate loads, changes and stores a single project inside one transaction.
	Mutate(ctx context.Context, ownerID, id string, fn MutateFunc) (*domain.Project, error)
	// Delete removes the project and returns the row as it was.
	Delete(ctx context.Context, ownerID, id string) (*domain.Project, error)
}
