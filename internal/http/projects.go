package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/domain"
	"project-tracker/internal/service"
)

// createProjectRequest has no owner field; the owner is always the caller.
type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

type updateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

type ProjectResponse struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Category       string               `json:"category"`
	Status         domain.ProjectStatus `json:"status"`
	OwnerID        string               `json:"ownerId"`
	CreatedAt      string               `json:"createdAt"`
	CompletionDate *string              `json:"completionDate,omitempty"`
}

type MonthlyStatsResponse struct {
	Month  int            `json:"month"`
	Counts map[string]int `json:"counts"`
}

type StatsResponse struct {
	Total      int                    `json:"total"`
	Year       int                    `json:"year"`
	ByStatus   map[string]int         `json:"byStatus"`
	ByCategory map[string]int         `json:"byCategory"`
	Monthly    []MonthlyStatsResponse `json:"monthly"`
}

var allStatuses = []domain.ProjectStatus{
	domain.ProjectStatusActive,
	domain.ProjectStatusCompleted,
	domain.ProjectStatusOnHold,
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	ownerID := userIDFrom(c)
	project, err := h.projects.Create(c.Request.Context(), ownerID, service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      domain.ProjectStatus(req.Status),
	})
	if err != nil {
		h.respondError(c, err, "Failed to add project")
		return
	}

	h.notifyChanged(c, ownerID)
	c.JSON(http.StatusCreated, gin.H{"message": "Project added", "project": projectToResponse(*project)})
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.respondError(c, err, "Failed to fetch projects")
		return
	}

	resp := make([]ProjectResponse, len(projects))
	for i := range projects {
		resp[i] = projectToResponse(projects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), userIDFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) updateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	in := service.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		in.Status = &status
	}

	ownerID := userIDFrom(c)
	project, err := h.projects.Update(c.Request.Context(), ownerID, c.Param("id"), in)
	if err != nil {
		h.respondError(c, err, "Failed to update project")
		return
	}

	h.notifyChanged(c, ownerID)
	c.JSON(http.StatusOK, gin.H{"message": "Project updated", "project": projectToResponse(*project)})
}

func (h *Handler) completeProject(c *gin.Context) {
	ownerID := userIDFrom(c)
	project, err := h.projects.Complete(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to update project status")
		return
	}

	h.notifyChanged(c, ownerID)
	c.JSON(http.StatusOK, gin.H{"message": "Project marked as completed", "project": projectToResponse(*project)})
}

func (h *Handler) deleteProject(c *gin.Context) {
	ownerID := userIDFrom(c)
	project, err := h.projects.Delete(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to delete project")
		return
	}

	h.notifyChanged(c, ownerID)

	var warnings []string
	if h.archive != nil {
		archiveCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		if _, err := h.archive.ArchiveProject(archiveCtx, *project); err != nil {
			h.logger.WithError(err).WithField("project", project.ID).Warn("archive deleted project")
			warnings = append(warnings, fmt.Sprintf("archive project: %v", err))
		}
	}

	resp := gin.H{"message": "Project deleted"}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) projectStats(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			abortJSON(c, http.StatusBadRequest, codeValidation, "invalid year")
			return
		}
		year = v
	}

	stats, err := h.projects.Stats(c.Request.Context(), userIDFrom(c), year)
	if err != nil {
		h.respondError(c, err, "Failed to compute project stats")
		return
	}
	c.JSON(http.StatusOK, statsToResponse(*stats))
}

func projectToResponse(project domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Category:    project.Category,
		Status:      project.Status,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
	}
	if project.CompletionDate != nil {
		v := project.CompletionDate.Format(time.RFC3339)
		resp.CompletionDate = &v
	}
	return resp
}

func statsToResponse(stats domain.ProjectStats) StatsResponse {
	resp := StatsResponse{
		Total:      stats.Total,
		Year:       stats.Year,
		ByStatus:   make(map[string]int, len(allStatuses)),
		ByCategory: make(map[string]int, len(stats.ByCategory)),
		Monthly:    make([]MonthlyStatsResponse, len(stats.Monthly)),
	}
	for _, s := range allStatuses {
		resp.ByStatus[string(s)] = stats.ByStatus[s]
	}
	for category, n := range stats.ByCategory {
		resp.ByCategory[category] = n
	}
	for i, counts := range stats.Monthly {
		month := MonthlyStatsResponse{Month: i + 1, Counts: make(map[string]int, len(allStatuses))}
		for _, s := range allStatuses {
			month.Counts[string(s)] = counts[s]
		}
		resp.Monthly[i] = month
	}
	return resp
}
