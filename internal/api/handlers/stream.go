package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Playwithbroken/stock-analysis-tool/internal/discovery"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

const (
	moversPushInterval = 30 * time.Second
	streamWriteWait    = 10 * time.Second
)

// StreamHandler pushes mover updates to websocket clients. Updates come
// from the cached movers scan, so many clients share one scan window.
type StreamHandler struct {
	discovery *discovery.Service
	upgrader  websocket.Upgrader
	logger    *logger.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(svc *discovery.Service, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		discovery: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// MoversUpdate is one websocket frame
type MoversUpdate struct {
	Gainers   []discovery.Mover `json:"gainers"`
	Losers    []discovery.Mover `json:"losers"`
	Timestamp time.Time         `json:"timestamp"`
}

// Movers streams gainer/loser updates until the client disconnects
// GET /api/stream/movers
func (h *StreamHandler) Movers(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()

	// Drain client frames so close messages are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(moversPushInterval)
	defer ticker.Stop()

	for {
		update := MoversUpdate{
			Gainers:   h.discovery.MarketMovers(ctx, "gainers"),
			Losers:    h.discovery.MarketMovers(ctx, "losers"),
			Timestamp: time.Now(),
		}

		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(update); err != nil {
			h.logger.WithError(err).Debug("Websocket client disconnected")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
