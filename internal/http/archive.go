package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/storage"
)

type ArchivedObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func (h *Handler) listArchive(c *gin.Context) {
	if h.archive == nil {
		abortJSON(c, http.StatusServiceUnavailable, codeArchiveDisabled, "project archive not configured")
		return
	}

	objects, err := h.archive.ListArchived(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.respondError(c, err, "Failed to list archived projects")
		return
	}

	resp := make([]ArchivedObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) purgeArchive(c *gin.Context) {
	if h.archive == nil {
		abortJSON(c, http.StatusServiceUnavailable, codeArchiveDisabled, "project archive not configured")
		return
	}

	if err := h.archive.PurgeArchived(c.Request.Context(), userIDFrom(c)); err != nil {
		h.respondError(c, err, "Failed to purge archived projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Archive purged"})
}

func objectToResponse(obj storage.ObjectInfo) ArchivedObjectResponse {
	resp := ArchivedObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
