package router

import (
	"devconnect_backend/internal/chat/app"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register chat routes
func RegisterRoutes(r *fiber.App, handler *app.ChatHandler) {
	chats := r.Group("/chats", middlewares.JWTMiddleware())
	chats.Post("/direct", handler.CreateDirectChat)
	chats.Post("/group", handler.CreateGroupChat)
	chats.Get("/", handler.ListChats)
	chats.Get("/unread", handler.UnreadCounts)
	chats.Get("/:id/messages", handler.ChatHistory)
	chats.Post("/:id/messages", handler.SendMessage)

	r.Post("/messages/:id/read", middlewares.JWTMiddleware(), handler.MarkMessageRead)
}
