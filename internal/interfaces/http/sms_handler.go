package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/application/ports"
)

// SMSHandler releva mensajes de texto hacia el proveedor.
type SMSHandler struct {
	gw ports.SMSGateway
}

// NewSMSHandler construye el handler.
func NewSMSHandler(gw ports.SMSGateway) *SMSHandler {
	return &SMSHandler{gw: gw}
}

// Send POST /api/notify-sms
func (h *SMSHandler) Send(c *fiber.Ctx) error {
	var in dto.SMSRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.To == "" || in.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to y message son requeridos"})
	}
	sid, err := h.gw.Send(c.UserContext(), in.To, in.Message)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SMS_ERROR", Message: err.Error()})
	}
	return c.JSON(dto.SMSResponse{Success: true, SID: sid})
}
