package router

import (
	"context"

	"devconnect_backend/internal/realtime/app"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register the websocket entry point and the presence
// read endpoint. The JWT middleware runs during the upgrade handshake.
func RegisterRoutes(r *fiber.App, gateway *app.Gateway, presence *app.PresenceHandler) {
	r.Get("/ws", middlewares.JWTMiddleware(), websocket.New(func(c *websocket.Conn) {
		gateway.HandleConnection(context.Background(), c)
	}))

	r.Get("/presence/:id", middlewares.JWTMiddleware(), presence.Get)
}
