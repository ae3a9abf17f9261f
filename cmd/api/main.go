package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	zoneRepo := postgres.NewZoneRepository(pool)
	rackRepo := postgres.NewRackRepository(pool)
	shelfRepo := postgres.NewShelfRepository(pool)
	placementRepo := postgres.NewPlacementRepository(pool)
	upcRepo := postgres.NewUPCRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	logRepo := postgres.NewLogRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	propagator := postgres.NewPropagator(pool, log.Zerolog())
	defer propagator.Close()

	warehouseUC := usecase.NewWarehouseUseCase(txRunner, warehouseRepo)
	zoneUC := hierarchy.NewZoneUseCase(txRunner, zoneRepo, rackRepo)
	rackUC := hierarchy.NewRackUseCase(txRunner, rackRepo, shelfRepo)
	shelfUC := hierarchy.NewShelfUseCase(txRunner, shelfRepo, propagator)
	moveShelfUC := hierarchy.NewMoveShelfUseCase(txRunner, propagator)
	moveRackUC := hierarchy.NewMoveRackUseCase(txRunner, propagator)
	putAwayUC := stock.NewPutAwayUseCase(txRunner)
	stockQueryUC := usecase.NewStockQueryUseCase(placementRepo, upcRepo, movementRepo)
	logUC := usecase.NewLogUseCase(logRepo)
	resolver := auth.NewResolver(memberRepo, auth.Config{
		SuperAdminID:  cfg.Auth.SuperAdminID,
		SharedStoreID: cfg.Auth.SharedStoreID,
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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: warehouseUC,
		ZoneUC:      zoneUC,
		RackUC:      rackUC,
		ShelfUC:     shelfUC,
		MoveShelfUC: moveShelfUC,
		MoveRackUC:  moveRackUC,
		PutAwayUC:   putAwayUC,
		StockQuery:  stockQueryUC,
		LogUC:       logUC,
		Resolver:    resolver,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
