package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const ctxUserID = "userID"

// authMiddleware requires "Authorization: Bearer <token>" and stores the
// verified user id in the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			h.authFailed(c, codeNoToken, "Access denied, no token provided")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			h.authFailed(c, codeMalformedToken, "Access denied, malformed token")
			return
		}

		userID, err := h.tokens.Verify(parts[1])
		if err != nil {
			h.logger.WithError(err).Debug("token rejected")
			h.authFailed(c, codeInvalidToken, "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func (h *Handler) authFailed(c *gin.Context, code, message string) {
	if h.metrics != nil {
		h.metrics.AuthFailed(code)
	}
	abortJSON(c, http.StatusUnauthorized, code, message)
}

// promoteQueryToken lets EventSource clients, which cannot set headers,
// pass the token as ?access_token=.
func promoteQueryToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if tok := c.Query("access_token"); tok != "" {
				c.Request.Header.Set("Authorization", "Bearer "+tok)
			}
		}
		c.Next()
	}
}

func userIDFrom(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// observe logs every request and feeds the request metrics.
func (h *Handler) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		route := c.FullPath()
		if h.metrics != nil {
			h.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)
		}

		entry := h.logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": elapsed.String(),
			"client":  c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
