package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/elhornero/panaderia-api/internal/application/auth"
	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/application/usecase"
	"github.com/elhornero/panaderia-api/internal/infrastructure/cache"
	"github.com/elhornero/panaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/elhornero/panaderia-api/internal/interfaces/http"
	"github.com/elhornero/panaderia-api/pkg/config"
	"github.com/elhornero/panaderia-api/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	stockCacheImpl, err := cache.New(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	var writeCache inventory.StockCache
	var readCache usecase.StockLevelCache
	if stockCacheImpl != nil {
		defer stockCacheImpl.Close()
		writeCache = stockCacheImpl
		readCache = stockCacheImpl
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de existencias activo")
	}

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de inventario: toda mutación de stock pasa por aquí.
	receivePurchaseUC := inventory.NewReceivePurchaseUseCase(txRunner, writeCache)
	payOrderUC := inventory.NewPayOrderUseCase(txRunner, writeCache)
	productionEngineUC := inventory.NewProductionUseCase(txRunner, writeCache)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, writeCache, itemRepo, warehouseRepo)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	recipeUC := usecase.NewRecipeUseCase(recipeRepo, itemRepo)
	stockQueriesUC := usecase.NewStockQueryUseCase(stockRepo, movementRepo, itemRepo, readCache)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, itemRepo, warehouseRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, itemRepo, stockRepo)
	productionUC := usecase.NewProductionUseCase(productionRepo, recipeRepo, stockRepo)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:  warehouseUC,
		ItemUC:       itemUC,
		RecipeUC:     recipeUC,
		StockQueries: stockQueriesUC,
		PurchaseUC:   purchaseUC,
		OrderUC:      orderUC,
		ProductionUC: productionUC,

		ReceivePurchase: receivePurchaseUC,
		PayOrder:        payOrderUC,
		Production:      productionEngineUC,
		AdjustStock:     adjustStockUC,

		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
