package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/application/parcels"
)

// ParcelHandler maneja las peticiones HTTP de paquetes.
type ParcelHandler struct {
	uc *parcels.UseCase
}

// NewParcelHandler construye el handler.
func NewParcelHandler(uc *parcels.UseCase) *ParcelHandler {
	return &ParcelHandler{uc: uc}
}

// Create POST /api/parcels
func (h *ParcelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateParcelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// List GET /api/parcels?search=
func (h *ParcelHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetActor(c), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/parcels/:id
func (h *ParcelHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// UpdateStatus PATCH /api/parcels/:id/status
func (h *ParcelHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.UpdateStatus(c.UserContext(), GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// SuggestPrice POST /api/parcels/suggest-price
func (h *ParcelHandler) SuggestPrice(c *fiber.Ctx) error {
	var in dto.SuggestPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.SuggestPrice(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Track GET /api/track/:code (público, sin autenticación)
func (h *ParcelHandler) Track(c *fiber.Ctx) error {
	view, err := h.uc.Track(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}
