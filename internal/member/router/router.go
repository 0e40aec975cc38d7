package router

import (
	"devconnect_backend/internal/member/app"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register member routes, auth endpoints are public
func RegisterRoutes(r *fiber.App, handler *app.MemberHandler) {
	r.Post("/auth/register", handler.Register)
	r.Post("/auth/login", handler.Login)
	r.Get("/members/me", middlewares.JWTMiddleware(), handler.Profile)
}
