package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"project-tracker/internal/metrics"
	"project-tracker/internal/notify"
	"project-tracker/internal/service"
	"project-tracker/internal/storage"
)

// TokenService issues session tokens at signin and verifies them on protected routes.
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// ChangeStream hands out listeners for the SSE endpoint.
type ChangeStream interface {
	Subscribe(scope string) *notify.Subscription
}

// Config carries the handler's collaborators. Archive, Stream, Metrics and
// MetricsHandler are optional.
type Config struct {
	Users          service.UserService
	Projects       service.ProjectService
	Tokens         TokenService
	Notifier       notify.Notifier
	Stream         ChangeStream
	Archive        storage.Archive
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	Logger         logrus.FieldLogger
	Heartbeat      time.Duration
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	projects       service.ProjectService
	tokens         TokenService
	notifier       notify.Notifier
	stream         ChangeStream
	archive        storage.Archive
	metrics        *metrics.Metrics
	metricsHandler http.Handler
	logger         logrus.FieldLogger
	heartbeat      time.Duration
}

func NewHandler(cfg Config) *Handler {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = 30 * time.Second
	}
	return &Handler{
		users:          cfg.Users,
		projects:       cfg.Projects,
		tokens:         cfg.Tokens,
		notifier:       cfg.Notifier,
		stream:         cfg.Stream,
		archive:        cfg.Archive,
		metrics:        cfg.Metrics,
		metricsHandler: cfg.MetricsHandler,
		logger:         cfg.Logger,
		heartbeat:      cfg.Heartbeat,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.observe())

	if h.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(h.metricsHandler))
	}

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/signin", h.signin)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.GET("/events", promoteQueryToken(), h.authMiddleware(), h.streamEvents)
	}

	protected := api.Group("", h.authMiddleware())
	{
		protected.GET("/me", h.me)

		protected.POST("/projects", h.createProject)
		protected.GET("/projects", h.listProjects)
		protected.GET("/projects/stats", h.projectStats)
		protected.GET("/projects/:id", h.getProject)
		protected.PUT("/projects/:id", h.updateProject)
		protected.PUT("/projects/:id/complete", h.completeProject)
		protected.DELETE("/projects/:id", h.deleteProject)

		protected.GET("/archive", h.listArchive)
		protected.DELETE("/archive", h.purgeArchive)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// notifyChanged fires after a successful mutation. The request context may
// be cancelled as soon as the response is written, so it is detached.
func (h *Handler) notifyChanged(c *gin.Context, ownerID string) {
	h.notifier.NotifyChanged(context.WithoutCancel(c.Request.Context()), ownerID)
}
