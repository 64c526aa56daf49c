package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-tracker/internal/domain"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

func newTestProjectService() (ProjectService, *memProjectRepo, *stepClock) {
	repo := &memProjectRepo{}
	clock := &stepClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
	return NewProjectService(repo, WithProjectClock(clock.Now)), repo, clock
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.ProjectStatus) *domain.ProjectStatus { return &s }

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProjectService()

	t.Run("defaults to active and uses the caller as owner", func(t *testing.T) {
		p, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: "P1", Description: "D", Category: "C"})
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusActive, p.Status)
		assert.Equal(t, "owner-1", p.OwnerID)
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Nil(t, p.CompletionDate)
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, in := range []CreateProjectInput{
			{Description: "D", Category: "C"},
			{Title: "T", Category: "C"},
			{Title: "T", Description: "D"},
			{Title: "  ", Description: "D", Category: "C"},
		} {
			_, err := svc.Create(ctx, "owner-1", in)
			assert.ErrorIs(t, err, ErrValidation)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: "T", Description: "D", Category: "C", Status: "In Progress"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("created completed carries a completion date", func(t *testing.T) {
		p, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: "T", Description: "D", Category: "C", Status: domain.ProjectStatusCompleted})
		require.NoError(t, err)
		require.NotNil(t, p.CompletionDate)
		assert.True(t, p.CompletionDate.Equal(p.CreatedAt))
	})

	t.Run("on hold is accepted", func(t *testing.T) {
		p, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: "T", Description: "D", Category: "C", Status: domain.ProjectStatusOnHold})
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusOnHold, p.Status)
	})
}

func TestListProjectsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProjectService()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: title, Description: "D", Category: "C"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "owner-2", CreateProjectInput{Title: "other", Description: "D", Category: "C"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}
	assert.Equal(t, "third", list[0].Title)
}

func TestCompleteProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProjectService()

	p, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: "P1", Description: "D", Category: "C"})
	require.NoError(t, err)

	done, err := svc.Complete(ctx, "owner-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusCompleted, done.Status)
	require.NotNil(t, done.CompletionDate)
	firstDate := *done.CompletionDate

	_, err = svc.Complete(ctx, "owner-1", p.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	stored, err := svc.Get(ctx, "owner-1", p.ID)
	require.NoError(t, err)
	assert.True(t, stored.CompletionDate.Equal(firstDate))

	_, err = svc.Complete(ctx, "owner-1", "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Complete(ctx, "owner-2", p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProjectService()

	p, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: "P1", Description: "D", Category: "C"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "owner-1", p.ID, UpdateProjectInput{
		Title:  strPtr("renamed"),
		Status: statusPtr(domain.ProjectStatusOnHold),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "D", updated.Description)
	assert.Equal(t, domain.ProjectStatusOnHold, updated.Status)

	_, err = svc.Update(ctx, "owner-1", p.ID, UpdateProjectInput{Status: statusPtr(domain.ProjectStatusCompleted)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, "owner-1", p.ID, UpdateProjectInput{Category: strPtr("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, "owner-2", p.ID, UpdateProjectInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Complete(ctx, "owner-1", p.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, "owner-1", p.ID, UpdateProjectInput{Status: statusPtr(domain.ProjectStatusActive)})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProjectService()

	p, err := svc.Create(ctx, "owner-1", CreateProjectInput{Title: "P1", Description: "D", Category: "C"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "owner-2", p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	deleted, err := svc.Delete(ctx, "owner-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)

	_, err = svc.Delete(ctx, "owner-1", p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectStats(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestProjectService()

	repo.projects = []domain.Project{
		{ID: "1", OwnerID: "o", Category: "web", Status: domain.ProjectStatusActive, CreatedAt: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "2", OwnerID: "o", Category: "web", Status: domain.ProjectStatusCompleted, CreatedAt: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "3", OwnerID: "o", Category: "ops", Status: domain.ProjectStatusOnHold, CreatedAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "4", OwnerID: "o", Category: "ops", Status: domain.ProjectStatusActive, CreatedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "5", OwnerID: "x", Category: "ops", Status: domain.ProjectStatusActive, CreatedAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
	}

	stats, err := svc.Stats(ctx, "o", 2025)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, 2, stats.ByStatus[domain.ProjectStatusActive])
	assert.Equal(t, 1, stats.ByStatus[domain.ProjectStatusCompleted])
	assert.Equal(t, 2, stats.ByCategory["web"])
	assert.Equal(t, 2, stats.ByCategory["ops"])
	assert.Equal(t, 1, stats.Monthly[0][domain.ProjectStatusActive])
	assert.Equal(t, 1, stats.Monthly[0][domain.ProjectStatusCompleted])
	assert.Equal(t, 1, stats.Monthly[6][domain.ProjectStatusOnHold])
	assert.Equal(t, 0, stats.Monthly[6][domain.ProjectStatusActive])

	defaulted, err := svc.Stats(ctx, "o", 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, defaulted.Year)

	_, err = svc.Stats(ctx, "o", 12)
	assert.ErrorIs(t, err, ErrValidation)
}
