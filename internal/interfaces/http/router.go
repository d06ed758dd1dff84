package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sm-global/express-api/internal/application/analytics"
	"github.com/sm-global/express-api/internal/application/auth"
	"github.com/sm-global/express-api/internal/application/parcels"
	"github.com/sm-global/express-api/internal/application/ports"
	"github.com/sm-global/express-api/internal/application/sync"
	"github.com/sm-global/express-api/internal/application/usecase"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ParcelUC    *parcels.UseCase
	CustomerUC  *usecase.CustomerUseCase
	UserUC      *usecase.UserUseCase
	NotifUC     *usecase.NotificationUseCase
	DashboardUC *analytics.DashboardUseCase
	UserStore   repository.UserStore
	SMSGateway  ports.SMSGateway
	SyncRunner  *sync.Runner
	Reconciler  *sync.Reconciler
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Público
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	parcelHandler := NewParcelHandler(deps.ParcelUC)
	api.Get("/track/:code", parcelHandler.Track)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	syncHandler := NewSyncHandler(deps.UserStore, deps.CustomerUC, deps.ParcelUC, deps.NotifUC, deps.SyncRunner, deps.Reconciler)
	protected.Get("/data", syncHandler.Data)
	protected.Post("/sync", syncHandler.Trigger)
	protected.Get("/sync/status", syncHandler.Status)

	// Paquetes: registro solo para administradores; estados para cualquier rol.
	parcelsGroup := protected.Group("/parcels")
	parcelsGroup.Get("/", parcelHandler.List)
	parcelsGroup.Post("/", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), parcelHandler.Create)
	parcelsGroup.Post("/suggest-price", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), parcelHandler.SuggestPrice)
	parcelsGroup.Get("/:id", parcelHandler.GetByID)
	parcelsGroup.Patch("/:id/status", parcelHandler.UpdateStatus)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), customerHandler.Create)
	customers.Put("/:id", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), customerHandler.Delete)

	// Usuarios
	users := protected.Group("/users", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)

	// Notificaciones
	notifs := protected.Group("/notifications")
	notifHandler := NewNotificationHandler(deps.NotifUC)
	notifs.Get("/", notifHandler.List)
	notifs.Post("/read-all", notifHandler.MarkAllRead)
	notifs.Post("/:id/read", notifHandler.MarkRead)

	// Panel
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Stats)
	dashboard.Get("/revenue", dashboardHandler.Revenue)
	dashboard.Get("/report", dashboardHandler.Report)

	// Relé de SMS
	smsHandler := NewSMSHandler(deps.SMSGateway)
	protected.Post("/notify-sms", smsHandler.Send)
}
