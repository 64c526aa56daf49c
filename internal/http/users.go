package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/domain"
	"project-tracker/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body", "code": codeValidation})
		return
	}

	_, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		e := classifyError(err, "Registration failed")
		if errors.Is(err, service.ErrMissingFields) {
			e.message = "All fields are required"
		}
		if e.status >= http.StatusInternalServerError {
			h.logger.WithError(err).Error("registration failed")
		}
		c.JSON(e.status, gin.H{"success": false, "message": e.message, "code": e.code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User registered successfully!"})
}

func (h *Handler) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		abortJSON(c, http.StatusBadRequest, codeValidation, "Email and password are required")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err, "Server error during login")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.respondError(c, err, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
