package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"project-tracker/internal/domain"
	"project-tracker/internal/repository"
)

// CreateProjectInput holds the client supplied fields of a new project.
// An empty Status means Active.
type CreateProjectInput struct {
	Title       string
	Description string
	Category    string
	Status      domain.ProjectStatus
}

// UpdateProjectInput is a partial edit; nil fields are left unchanged.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Category    *string
	Status      *domain.ProjectStatus
}

// ProjectService coordinates owner-scoped project operations.
type ProjectService interface {
	Create(ctx context.Context, ownerID string, in CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]domain.Project, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Project, error)
	Update(ctx context.Context, ownerID, id string, in UpdateProjectInput) (*domain.Project, error)
	Complete(ctx context.Context, ownerID, id string) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, id string) (*domain.Project, error)
	Stats(ctx context.Context, ownerID string, year int) (*domain.ProjectStats, error)
}

type projectService struct {
	projects repository.ProjectRepository
	now      func() time.Time
}

type ProjectOption func(*projectService)

// WithProjectClock replaces the clock used for creation and completion times.
func WithProjectClock(now func() time.Time) ProjectOption {
	return func(s *projectService) {
		s.now = now
	}
}

func NewProjectService(projects repository.ProjectRepository, opts ...ProjectOption) ProjectService {
	s := &projectService{
		projects: projects,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *projectService) Create(ctx context.Context, ownerID string, in CreateProjectInput) (*domain.Project, error) {
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if title == "" || description == "" || category == "" {
		return nil, fmt.Errorf("%w: title, description, and category are required", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = domain.ProjectStatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	now := s.now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    category,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   now,
	}
	if status == domain.ProjectStatusCompleted {
		project.CompletionDate = &now
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

func (s *projectService) Get(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	project, err := s.projects.Get(ctx, ownerID, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, ownerID, id string, in UpdateProjectInput) (*domain.Project, error) {
	var changes []func(p *domain.Project)

	if in.Title != nil {
		v := strings.TrimSpace(*in.Title)
		if v == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		changes = append(changes, func(p *domain.Project) { p.Title = v })
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		if v == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
		}
		changes = append(changes, func(p *domain.Project) { p.Description = v })
	}
	if in.Category != nil {
		v := strings.TrimSpace(*in.Category)
		if v == "" {
			return nil, fmt.Errorf("%w: category cannot be empty", ErrValidation)
		}
		changes = append(changes, func(p *domain.Project) { p.Category = v })
	}
	if in.Status != nil {
		v := *in.Status
		switch v {
		case domain.ProjectStatusActive, domain.ProjectStatusOnHold:
		case domain.ProjectStatusCompleted:
			return nil, fmt.Errorf("%w: use the complete operation to finish a project", ErrValidation)
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, v)
		}
		changes = append(changes, func(p *domain.Project) { p.Status = v })
	}

	project, err := s.projects.Mutate(ctx, ownerID, id, func(p *domain.Project) error {
		if p.Status == domain.ProjectStatusCompleted {
			return ErrAlreadyCompleted
		}
		for _, change := range changes {
			change(p)
		}
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return project, nil
}

func (s *projectService) Complete(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	project, err := s.projects.Mutate(ctx, ownerID, id, func(p *domain.Project) error {
		if err := p.Complete(s.now().UTC()); err != nil {
			if errors.Is(err, domain.ErrProjectCompleted) {
				return ErrAlreadyCompleted
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	project, err := s.projects.Delete(ctx, ownerID, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return project, nil
}

func (s *projectService) Stats(ctx context.Context, ownerID string, year int) (*domain.ProjectStats, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}
	if year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrValidation, year)
	}

	projects, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &domain.ProjectStats{
		Total:      len(projects),
		Year:       year,
		ByStatus:   map[domain.ProjectStatus]int{},
		ByCategory: map[string]int{},
	}
	for i := range stats.Monthly {
		stats.Monthly[i] = map[domain.ProjectStatus]int{}
	}

	for _, p := range projects {
		stats.ByStatus[p.Status]++
		stats.ByCategory[p.Category]++
		created := p.CreatedAt.UTC()
		if created.Year() == year {
			stats.Monthly[created.Month()-1][p.Status]++
		}
	}
	return stats, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}
