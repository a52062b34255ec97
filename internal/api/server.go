package api

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/secretChao/ws-chatroom/internal/identity"
	"github.com/secretChao/ws-chatroom/internal/rooms"
	"github.com/secretChao/ws-chatroom/internal/ws"
)

// NewServer wires the fiber app: health and metrics routes plus the
// room connect endpoints with their handshake pre-check.
func NewServer(catalog *rooms.Catalog, identities *identity.Store, h *ws.Handler, log *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Handshake pre-check: the room must be cataloged and the peer must
	// identify itself via the name query parameter, or the connection is
	// never admitted and no state is created.
	app.Get("/"+rooms.ConnectPrefix+"/:room", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		room := c.Params("room")
		if !catalog.Contains(room) {
			log.Warnw("handshake rejected: unknown room", "room", room, "addr", c.IP())
			return fiber.ErrNotFound
		}
		name := c.Query("name")
		if name == "" {
			log.Warnw("handshake rejected: missing name", "room", room, "addr", c.IP())
			return fiber.ErrBadRequest
		}
		peer := c.IP()
		identities.Set(peer, name)
		c.Locals(ws.LocalPeerKey, peer)
		c.Locals(ws.LocalPath, c.Path())
		log.Infow("handshake accepted", "room", room, "addr", peer, "name", name)
		return c.Next()
	})
	app.Get("/"+rooms.ConnectPrefix+"/:room", websocket.New(h.Serve()))

	return app
}
