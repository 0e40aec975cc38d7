package app

import (
	"strconv"

	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler definition chat REST handler
type ChatHandler struct {
	UseCase *ChatUseCase
}

type createDirectChatReq struct {
	UserID string `json:"user_id"`
}

type createGroupChatReq struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

type sendMessageReq struct {
	Content string `json:"content"`
}

func memberID(c *fiber.Ctx) string {
	id, _ := c.Locals(middlewares.TokenMemberID).(string)
	return id
}

// CreateDirectChat POST /chats/direct
func (h *ChatHandler) CreateDirectChat(c *fiber.Ctx) error {
	var req createDirectChatReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	chat, err := h.UseCase.GetOrCreateDirectChat(c.Context(), memberID(c), req.UserID)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(chat)
}

// CreateGroupChat POST /chats/group
func (h *ChatHandler) CreateGroupChat(c *fiber.Ctx) error {
	var req createGroupChatReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	chat, err := h.UseCase.CreateGroupChat(c.Context(), req.Name, memberID(c), req.Participants)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(chat)
}

// ListChats GET /chats
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	chats, err := h.UseCase.ListChats(c.Context(), memberID(c))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"chats": chats})
}

// ChatHistory GET /chats/:id/messages?before=<ts>&limit=<n>
func (h *ChatHandler) ChatHistory(c *fiber.Ctx) error {
	before, _ := strconv.ParseInt(c.Query("before"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	messages, err := h.UseCase.ChatHistory(c.Context(), c.Params("id"), memberID(c), before, limit)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendMessage POST /chats/:id/messages
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	msg, err := h.UseCase.SendMessage(c.Context(), c.Params("id"), memberID(c), req.Content)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkMessageRead POST /messages/:id/read
func (h *ChatHandler) MarkMessageRead(c *fiber.Ctx) error {
	if err := h.UseCase.MarkMessageRead(c.Context(), c.Params("id"), memberID(c)); err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// UnreadCounts GET /chats/unread
func (h *ChatHandler) UnreadCounts(c *fiber.Ctx) error {
	counts, err := h.UseCase.UnreadCounts(c.Context(), memberID(c))
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"unread": counts})
}
