package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/application/usecase"
)

// NotificationHandler maneja el centro de notificaciones.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List GET /api/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// MarkRead POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación leída"})
}

// MarkAllRead POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificaciones leídas"})
}
