package storage

import (
	"context"
	"time"

	"project-tracker/internal/domain"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Archive keeps snapshots of deleted projects in object storage, one
// object per project under the owner's prefix.
type Archive interface {
	ArchiveProject(ctx context.Context, project domain.Project) (string, error)
	ListArchived(ctx context.Context, ownerID string) ([]ObjectInfo, error)
	PurgeArchived(ctx context.Context, ownerID string) error
}
