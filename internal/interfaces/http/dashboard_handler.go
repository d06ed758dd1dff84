package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sm-global/express-api/internal/application/analytics"
)

// DashboardHandler sirve los agregados del panel y el reporte por IA.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats GET /api/dashboard
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Revenue GET /api/dashboard/revenue
func (h *DashboardHandler) Revenue(c *fiber.Ctx) error {
	total, err := h.uc.Revenue(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"revenue": total, "currency": "FCFA"})
}

// Report GET /api/dashboard/report
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	report, err := h.uc.Report(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
