package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"project-tracker/internal/domain"
)

// S3Archive stores project snapshots in Amazon S3 (or compatible APIs).
type S3Archive struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
	now       func() time.Time
}

func NewS3Archive(client *s3.Client, bucket, keyPrefix string) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	return &S3Archive{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		now:       time.Now,
	}, nil
}

type projectSnapshot struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"ownerId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	ArchivedAt     time.Time  `json:"archivedAt"`
}

func (s *S3Archive) ownerPrefix(ownerID string) string {
	return path.Join(s.keyPrefix, ownerID) + "/"
}

// Key returns the object key used for a project snapshot.
func (s *S3Archive) Key(ownerID, projectID string) string {
	return s.ownerPrefix(ownerID) + projectID + ".json"
}

func (s *S3Archive) ArchiveProject(ctx context.Context, project domain.Project) (string, error) {
	if project.OwnerID == "" || project.ID == "" {
		return "", fmt.Errorf("project id and owner are required")
	}

	body, err := json.Marshal(projectSnapshot{
		ID:             project.ID,
		OwnerID:        project.OwnerID,
		Title:          project.Title,
		Description:    project.Description,
		Category:       project.Category,
		Status:         string(project.Status),
		CreatedAt:      project.CreatedAt,
		CompletionDate: project.CompletionDate,
		ArchivedAt:     s.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := s.Key(project.OwnerID, project.ID)
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func (s *S3Archive) ListArchived(ctx context.Context, ownerID string) ([]ObjectInfo, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required")
	}

	objects := []ObjectInfo{}
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.ownerPrefix(ownerID)),
	}

	for {
		output, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range output.Contents {
			objects = append(objects, ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: obj.LastModified,
			})
		}

		if !aws.ToBool(output.IsTruncated) || output.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}

	return objects, nil
}

func (s *S3Archive) PurgeArchived(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner is required")
	}

	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.ownerPrefix(ownerID)),
	}

	for {
		output, err := s.client.ListObjectsV2(ctx, listInput)
		if err != nil {
			return fmt.Errorf("list objects for delete: %w", err)
		}

		if len(output.Contents) > 0 {
			identifiers := make([]types.ObjectIdentifier, 0, len(output.Contents))
			for _, obj := range output.Contents {
				identifiers = append(identifiers, types.ObjectIdentifier{Key: obj.Key})
			}
			_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(s.bucket),
				Delete: &types.Delete{
					Objects: identifiers,
					Quiet:   aws.Bool(true),
				},
			})
			if err != nil {
				return fmt.Errorf("delete objects: %w", err)
			}
		}

		if !aws.ToBool(output.IsTruncated) || output.NextContinuationToken == nil {
			break
		}
		listInput.ContinuationToken = output.NextContinuationToken
	}

	return nil
}

var _ Archive = (*S3Archive)(nil)
