package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// streamEvents serves the caller's change notifications as Server-Sent
// Events until the client goes away.
func (h *Handler) streamEvents(c *gin.Context) {
	if h.stream == nil {
		abortJSON(c, http.StatusServiceUnavailable, codeStreamDisabled, "event stream not configured")
		return
	}

	userID := userIDFrom(c)
	sub := h.stream.Subscribe(userID)
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering
	c.Status(http.StatusOK)

	c.SSEvent("connected", gin.H{"status": "connected", "at": time.Now().UTC().Format(time.RFC3339)})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			c.SSEvent(ev.Type, ev)
			c.Writer.Flush()

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			c.Writer.Flush()

		case <-c.Request.Context().Done():
			return
		}
	}
}
