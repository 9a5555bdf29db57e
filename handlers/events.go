package handlers

import (
	"io"
	"net/http"
	"time"

	"seatwise/services/notifier"
	"seatwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventsHandler bridges the change notifier to connected clients over
// server-sent events. Clients treat every event as a cue to re-fetch the
// provider's unit statuses.
type EventsHandler struct {
	Notifier notifier.ChangeNotifier
	Logger   *zap.Logger
}

// NewEventsHandler constructs an EventsHandler.
func NewEventsHandler(n notifier.ChangeNotifier, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{Notifier: n, Logger: logger}
}

// StreamEvents handles GET /api/events/:providerID.
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	providerID := c.Param("providerID")

	events, cancel, err := h.Notifier.Subscribe(c.Request.Context(), providerID)
	if err != nil {
		h.Logger.Error("failed to open event subscription",
			zap.String("providerId", providerID), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "event stream unavailable", "please retry")
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
