package router

import (
	"devconnect_backend/internal/notification/app"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register notification routes
func RegisterRoutes(r *fiber.App, handler *app.NotificationHandler) {
	notifications := r.Group("/notifications", middlewares.JWTMiddleware())
	notifications.Get("/", handler.List)
	notifications.Get("/unread_count", handler.CountUnread)
	notifications.Post("/read_all", handler.MarkAllAsRead)
	notifications.Post("/:id/read", handler.MarkAsRead)
}
