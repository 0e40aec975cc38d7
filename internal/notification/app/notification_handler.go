package app

import (
	"strconv"

	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler definition notification REST handler
type NotificationHandler struct {
	UseCase *NotificationUseCase
}

func memberID(c *fiber.Ctx) string {
	id, _ := c.Locals(middlewares.TokenMemberID).(string)
	return id
}

// List GET /notifications?unread=true&page=1&limit=20
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") == "true"
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	notifications, err := h.UseCase.List(c.Context(), memberID(c), unreadOnly, page, limit)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// CountUnread GET /notifications/unread_count
func (h *NotificationHandler) CountUnread(c *fiber.Ctx) error {
	count, err := h.UseCase.CountUnread(c.Context(), memberID(c))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkAsRead POST /notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	if err := h.UseCase.MarkAsRead(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllAsRead POST /notifications/read_all
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.UseCase.MarkAllAsRead(c.Context(), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}
