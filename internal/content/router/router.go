package router

import (
	"devconnect_backend/internal/content/app"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register content routes
func RegisterRoutes(r *fiber.App, handler *app.ContentHandler) {
	posts := r.Group("/posts", middlewares.JWTMiddleware())
	posts.Post("/", handler.CreatePost)
	posts.Get("/search", handler.SearchPosts)
	posts.Get("/", handler.ListPosts)
	posts.Get("/:id", handler.GetPost)
	posts.Put("/:id", handler.UpdatePost)
	posts.Delete("/:id", handler.DeletePost)
	posts.Post("/:id/like", handler.LikePost)
	posts.Delete("/:id/like", handler.UnlikePost)
	posts.Post("/:id/bookmark", handler.BookmarkPost)
	posts.Delete("/:id/bookmark", handler.UnbookmarkPost)
	posts.Post("/:id/comments", handler.AddComment)
	posts.Get("/:id/comments", handler.ListComments)

	issues := r.Group("/issues", middlewares.JWTMiddleware())
	issues.Post("/", handler.CreateIssue)
	issues.Get("/", handler.ListIssues)
	issues.Get("/:id", handler.GetIssue)
	issues.Post("/:id/assign", handler.AssignIssue)
	issues.Post("/:id/close", handler.CloseIssue)
}
