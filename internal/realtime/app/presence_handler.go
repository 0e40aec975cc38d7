package app

import (
	"github.com/gofiber/fiber/v2"
)

// PresenceHandler REST read surface for presence
type PresenceHandler struct {
	Tracker *PresenceTracker
}

// Get GET /presence/:id. An absent record reads as offline; a store
// failure reads as unknown, which is not the same thing.
func (h *PresenceHandler) Get(c *fiber.Ctx) error {
	rec := h.Tracker.GetPresence(c.Context(), c.Params("id"))
	if rec == nil {
		return c.JSON(fiber.Map{"user_id": c.Params("id"), "status": "unknown"})
	}
	return c.JSON(rec)
}
