package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/application/parcels"
	"github.com/sm-global/express-api/internal/application/sync"
	"github.com/sm-global/express-api/internal/application/usecase"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/internal/domain/visibility"
)

// SyncHandler sirve el snapshot de datos y controla la sincronización.
type SyncHandler struct {
	users      repository.UserStore
	customerUC *usecase.CustomerUseCase
	parcelUC   *parcels.UseCase
	notifUC    *usecase.NotificationUseCase
	runner     *sync.Runner
	rec        *sync.Reconciler
}

// NewSyncHandler construye el handler.
func NewSyncHandler(
	users repository.UserStore,
	customerUC *usecase.CustomerUseCase,
	parcelUC *parcels.UseCase,
	notifUC *usecase.NotificationUseCase,
	runner *sync.Runner,
	rec *sync.Reconciler,
) *SyncHandler {
	return &SyncHandler{
		users:      users,
		customerUC: customerUC,
		parcelUC:   parcelUC,
		notifUC:    notifUC,
		runner:     runner,
		rec:        rec,
	}
}

// Data GET /api/data: snapshot completo visible para el actor.
// A diferencia del listado de usuarios, aquí un OPERATOR recibe la colección
// vacía en lugar de una denegación: el snapshot siempre responde.
func (h *SyncHandler) Data(c *fiber.Ctx) error {
	ctx := c.UserContext()
	actor := GetActor(c)

	allUsers, err := h.users.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	customers, err := h.customerUC.List(ctx, "")
	if err != nil {
		return respondError(c, err)
	}
	parcelList, err := h.parcelUC.List(ctx, actor, "")
	if err != nil {
		return respondError(c, err)
	}
	notifs, err := h.notifUC.List(ctx, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.DataResponse{
		Users:         dto.ToUserResponses(visibility.FilterUsers(actor.Role, actor.Branch, allUsers)),
		Customers:     customers,
		Parcels:       parcelList,
		Notifications: notifs,
	})
}

// Trigger POST /api/sync: adelanta el siguiente ciclo de push.
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	h.runner.Trigger()
	return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{Message: "sincronización solicitada"})
}

// Status GET /api/sync/status: resultado del último ciclo.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.rec.LastResult())
}
