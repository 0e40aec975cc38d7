package app

import (
	"strconv"

	"devconnect_backend/internal/content/domain"
	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler definition content REST handler
type ContentHandler struct {
	UseCase *ContentUseCase
}

type postReq struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type commentReq struct {
	Content string `json:"content"`
}

type issueReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  string `json:"assignee_id"`
}

type assignReq struct {
	AssigneeID string `json:"assignee_id"`
}

func memberID(c *fiber.Ctx) string {
	id, _ := c.Locals(middlewares.TokenMemberID).(string)
	return id
}

func queryInt(c *fiber.Ctx, name string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

// CreatePost POST /posts
func (h *ContentHandler) CreatePost(c *fiber.Ctx) error {
	var req postReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	post, err := h.UseCase.CreatePost(c.Context(), memberID(c), req.Title, req.Content, req.Tags)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost GET /posts/:id
func (h *ContentHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.UseCase.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(post)
}

// ListPosts GET /posts?author=&tag=&page=&limit=
func (h *ContentHandler) ListPosts(c *fiber.Ctx) error {
	query := domain.PostQuery{
		AuthorID: c.Query("author"),
		Tag:      c.Query("tag"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}

	page, err := h.UseCase.ListPosts(c.Context(), query)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(page)
}

// SearchPosts GET /posts/search?q=
func (h *ContentHandler) SearchPosts(c *fiber.Ctx) error {
	page, err := h.UseCase.SearchPosts(c.Context(), c.Query("q"), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(page)
}

// UpdatePost PUT /posts/:id
func (h *ContentHandler) UpdatePost(c *fiber.Ctx) error {
	var req postReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := h.UseCase.UpdatePost(c.Context(), c.Params("id"), memberID(c), req.Title, req.Content, req.Tags); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeletePost DELETE /posts/:id
func (h *ContentHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.UseCase.DeletePost(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// LikePost POST /posts/:id/like
func (h *ContentHandler) LikePost(c *fiber.Ctx) error {
	if err := h.UseCase.LikePost(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// UnlikePost DELETE /posts/:id/like
func (h *ContentHandler) UnlikePost(c *fiber.Ctx) error {
	if err := h.UseCase.UnlikePost(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// BookmarkPost POST /posts/:id/bookmark
func (h *ContentHandler) BookmarkPost(c *fiber.Ctx) error {
	if err := h.UseCase.BookmarkPost(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// UnbookmarkPost DELETE /posts/:id/bookmark
func (h *ContentHandler) UnbookmarkPost(c *fiber.Ctx) error {
	if err := h.UseCase.UnbookmarkPost(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// AddComment POST /posts/:id/comments
func (h *ContentHandler) AddComment(c *fiber.Ctx) error {
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	comment, err := h.UseCase.AddComment(c.Context(), c.Params("id"), memberID(c), req.Content)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments GET /posts/:id/comments
func (h *ContentHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.UseCase.ListComments(c.Context(), c.Params("id"), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// CreateIssue POST /issues
func (h *ContentHandler) CreateIssue(c *fiber.Ctx) error {
	var req issueReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	issue, err := h.UseCase.CreateIssue(c.Context(), memberID(c), req.Title, req.Description, req.AssigneeID)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(issue)
}

// GetIssue GET /issues/:id
func (h *ContentHandler) GetIssue(c *fiber.Ctx) error {
	issue, err := h.UseCase.GetIssue(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(issue)
}

// ListIssues GET /issues?status=open
func (h *ContentHandler) ListIssues(c *fiber.Ctx) error {
	issues, err := h.UseCase.ListIssues(c.Context(), domain.IssueStatus(c.Query("status")), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"issues": issues})
}

// AssignIssue POST /issues/:id/assign
func (h *ContentHandler) AssignIssue(c *fiber.Ctx) error {
	var req assignReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := h.UseCase.AssignIssue(c.Context(), c.Params("id"), memberID(c), req.AssigneeID); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// CloseIssue POST /issues/:id/close
func (h *ContentHandler) CloseIssue(c *fiber.Ctx) error {
	if err := h.UseCase.CloseIssue(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}
