package ws

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/secretChao/ws-chatroom/internal/config"
	"github.com/secretChao/ws-chatroom/internal/metrics"
	"github.com/secretChao/ws-chatroom/internal/relay"
)

// Locals keys the handshake pre-check leaves for the upgraded handler.
const (
	LocalPeerKey = "peer_key"
	LocalPath    = "request_path"
)

// Handler runs the per-connection read loop and feeds lifecycle events
// to the controller. Events for one session are delivered strictly in
// order from this single goroutine; the terminal close or error event
// fires exactly once.
type Handler struct {
	ctrl *relay.Controller
	cfg  *config.Config
	log  *zap.SugaredLogger
}

func NewHandler(ctrl *relay.Controller, cfg *config.Config, log *zap.SugaredLogger) *Handler {
	return &Handler{ctrl: ctrl, cfg: cfg, log: log}
}

// Serve returns the callback the fiber websocket middleware drives for
// each upgraded connection.
func (h *Handler) Serve() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		peer, _ := conn.Locals(LocalPeerKey).(string)
		path, _ := conn.Locals(LocalPath).(string)

		s := newSession(conn, peer, path, h.cfg.WriteDeadline)
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		done := make(chan struct{})
		defer close(done)
		go h.keepalive(s, done)

		conn.SetReadLimit(h.cfg.WS.MaxMessageSizeBytes)
		_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
		})

		h.ctrl.OnOpen(s)

		limiter := rate.NewLimiter(rate.Limit(h.cfg.WS.MessageRatePerSec), h.cfg.WS.MessageBurst)
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
					websocket.CloseNoStatusReceived) {
					h.ctrl.OnError(s, err)
				} else {
					s.markClosed()
					h.ctrl.OnClose(s)
				}
				return
			}
			if mt != websocket.TextMessage {
				continue
			}
			if !limiter.Allow() {
				h.log.Warnw("message rate limit exceeded", "session", s.ID(), "addr", peer)
				continue
			}
			_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
			h.ctrl.OnMessage(s, string(data))
		}
	}
}

func (h *Handler) keepalive(s *session, done <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if !s.IsOpen() {
				return
			}
			if err := s.ping(); err != nil {
				return
			}
		}
	}
}
