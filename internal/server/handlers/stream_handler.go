package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
)

// StreamHandler exposes the live collection snapshots as server-sent events.
// Every change-stream notification becomes one `snapshot` event carrying the
// full re-fetched collection; clients replace, never patch.
type StreamHandler struct {
	store  *mongodb.Repository
	logger *zap.Logger
}

// NewStreamHandler builds a stream handler instance.
func NewStreamHandler(store *mongodb.Repository, logger *zap.Logger) *StreamHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamHandler{store: store, logger: logger}
}

// Cattle streams herd snapshots.
func (h *StreamHandler) Cattle(c *gin.Context) {
	streamSnapshots(c, h.logger, h.store.WatchCattle)
}

// Milk streams production snapshots.
func (h *StreamHandler) Milk(c *gin.Context) {
	streamSnapshots(c, h.logger, h.store.WatchMilk)
}

// Weight streams weigh-in snapshots.
func (h *StreamHandler) Weight(c *gin.Context) {
	streamSnapshots(c, h.logger, h.store.WatchWeights)
}

// Medical streams observation snapshots.
func (h *StreamHandler) Medical(c *gin.Context) {
	streamSnapshots(c, h.logger, h.store.WatchObservations)
}

// streamSnapshots forwards watch channel snapshots as SSE until the client
// disconnects; cancellation propagates through the request context and closes
// the underlying change stream.
func streamSnapshots[T any](c *gin.Context, logger *zap.Logger, watch func(context.Context) (<-chan []T, error)) {
	ctx := c.Request.Context()

	snapshots, err := watch(ctx)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
