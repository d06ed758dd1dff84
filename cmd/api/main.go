package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sm-global/express-api/internal/application/analytics"
	"github.com/sm-global/express-api/internal/application/auth"
	"github.com/sm-global/express-api/internal/application/parcels"
	appsync "github.com/sm-global/express-api/internal/application/sync"
	"github.com/sm-global/express-api/internal/application/usecase"
	infraai "github.com/sm-global/express-api/internal/infrastructure/ai"
	"github.com/sm-global/express-api/internal/infrastructure/localcache"
	"github.com/sm-global/express-api/internal/infrastructure/postgres"
	infrasms "github.com/sm-global/express-api/internal/infrastructure/sms"
	httpRouter "github.com/sm-global/express-api/internal/interfaces/http"
	"github.com/sm-global/express-api/pkg/config"
	"github.com/sm-global/express-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache := localcache.New(cfg.Redis.Addr)
	defer cache.Close()

	// El Record Store es opcional: si PostgreSQL no responde la aplicación
	// arranca en modo solo caché y el reconciliador reintenta en cada ciclo.
	var record appsync.RecordStore
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Warn().Err(err).Msg("record store inaccesible, arrancando en modo solo caché")
	} else {
		defer pool.Close()
		if err := postgres.InitSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("inicializar esquema del record store")
		}
		record = postgres.NewRecordStore(pool)
	}

	rec := appsync.NewReconciler(cache.Users, cache.Customers, cache.Parcels, record, log)
	if err := rec.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap del caché local")
	}

	runner := appsync.NewRunner(rec, time.Duration(cfg.Sync.IntervalSeconds)*time.Second)
	runner.Start(ctx)

	notifUC := usecase.NewNotificationUseCase(cache.Notifications)
	customerUC := usecase.NewCustomerUseCase(cache.Customers, notifUC, log, runner.Trigger)
	userUC := usecase.NewUserUseCase(cache.Users, runner.Trigger)

	smsGateway := infrasms.NewTwilioGateway(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	if !smsGateway.Configured() {
		log.Warn().Msg("credenciales Twilio ausentes, los SMS fallarán")
	}
	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)

	parcelUC := parcels.NewUseCase(cache.Parcels, cache.Customers, notifUC, smsGateway, geminiSvc, log, runner.Trigger)
	dashboardUC := analytics.NewDashboardUseCase(cache.Parcels, cache.Customers, geminiSvc)
	authUC := auth.NewUseCase(cache.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SM Global Express API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ParcelUC:    parcelUC,
		CustomerUC:  customerUC,
		UserUC:      userUC,
		NotifUC:     notifUC,
		DashboardUC: dashboardUC,
		UserStore:   cache.Users,
		SMSGateway:  smsGateway,
		SyncRunner:  runner,
		Reconciler:  rec,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Último push antes de apagar, para no perder mutaciones recientes.
	pushCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := rec.Push(pushCtx); err != nil {
		log.Warn().Err(err).Msg("push final fallido")
	}
	cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
