package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/repository"
)

const projectColumns = `id, owner_id, title, description, category, status, created_at, completion_date`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO projects (id, owner_id, title, description, category, status, created_at, completion_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.OwnerID,
		project.Title,
		project.Description,
		project.Category,
		string(project.Status),
		project.CreatedAt.UTC(),
		nullTime(project.CompletionDate),
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Get(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+projectColumns+`
FROM projects
WHERE id=? AND owner_id=?`,
		id,
		ownerID,
	)
	return scanProject(row)
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+projectColumns+`
FROM projects
WHERE owner_id=?
ORDER BY seq DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) Mutate(ctx context.Context, ownerID, id string, fn repository.MutateFunc) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	project, err := scanProject(tx.QueryRowContext(ctx, `
SELECT `+projectColumns+`
FROM projects
WHERE id=? AND owner_id=?`,
		id,
		ownerID,
	))
	if err != nil {
		return nil, err
	}

	if err := fn(project); err != nil {
		return nil, err
	}

	// id, owner and creation time are never rewritten
	if _, err := tx.ExecContext(ctx, `
UPDATE projects
SET title=?, description=?, category=?, status=?, completion_date=?
WHERE id=? AND owner_id=?`,
		project.Title,
		project.Description,
		project.Category,
		string(project.Status),
		nullTime(project.CompletionDate),
		id,
		ownerID,
	); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit project update: %w", err)
	}
	return project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	project, err := scanProject(tx.QueryRowContext(ctx, `
SELECT `+projectColumns+`
FROM projects
WHERE id=? AND owner_id=?`,
		id,
		ownerID,
	))
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id=? AND owner_id=?`, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("project delete rows affected: %w", err)
	}
	if aff == 0 {
		return nil, repository.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit project delete: %w", err)
	}
	return project, nil
}

func scanProject(scanner interface {
	Scan(dest ...any) error
}) (*domain.Project, error) {
	var (
		project        domain.Project
		status         string
		createdAt      time.Time
		completionDate sql.NullTime
	)

	if err := scanner.Scan(
		&project.ID,
		&project.OwnerID,
		&project.Title,
		&project.Description,
		&project.Category,
		&status,
		&createdAt,
		&completionDate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}

	project.Status = domain.ProjectStatus(status)
	project.CreatedAt = createdAt.UTC()
	if completionDate.Valid {
		t := completionDate.Time.UTC()
		project.CompletionDate = &t
	}

	return &project, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
