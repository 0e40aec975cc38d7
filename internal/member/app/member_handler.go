package app

import (
	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler definition member REST handler
type MemberHandler struct {
	UseCase *MemberUseCase
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Register POST /auth/register
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	member, err := h.UseCase.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// Login POST /auth/login
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	jwt, err := h.UseCase.Login(c.Context(), req.Identifier, req.Password)
	if err != nil {
		if errprocess.KindOf(err) == errprocess.KindAuthorization {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"token": jwt})
}

// Profile GET /members/me
func (h *MemberHandler) Profile(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	member, err := h.UseCase.Profile(c.Context(), memberID)
	if err != nil {
		return c.Status(errprocess.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(member)
}
