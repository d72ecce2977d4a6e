package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/frescosur/mayorista-api/internal/application/auth"
	"github.com/frescosur/mayorista-api/internal/application/merma"
	"github.com/frescosur/mayorista-api/internal/application/orders"
	"github.com/frescosur/mayorista-api/internal/application/reporting"
	appstock "github.com/frescosur/mayorista-api/internal/application/stock"
	"github.com/frescosur/mayorista-api/internal/application/usecase"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	infracache "github.com/frescosur/mayorista-api/internal/infrastructure/cache"
	"github.com/frescosur/mayorista-api/internal/infrastructure/jobs"
	"github.com/frescosur/mayorista-api/internal/infrastructure/postgres"
	httpRouter "github.com/frescosur/mayorista-api/internal/interfaces/http"
	"github.com/frescosur/mayorista-api/pkg/config"
	"github.com/frescosur/mayorista-api/pkg/logger"
	"github.com/frescosur/mayorista-api/pkg/ttlcache"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	mermaRepo := postgres.NewMermaRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	receivableRepo := postgres.NewReceivableRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de lectura para el catálogo. El motor de stock no pasa por aquí:
	// sus lecturas van con lock de fila dentro de la transacción.
	cacheTTL := time.Duration(cfg.Jobs.CacheTTLSeconds) * time.Second
	cachedProductRepo := infracache.NewCachedProductRepository(
		productRepo,
		ttlcache.New[*entity.Product](cacheTTL, cfg.Jobs.CacheMaxEntries),
		ttlcache.New[string](cacheTTL, cfg.Jobs.CacheMaxEntries),
	)

	engine := appstock.NewEngine(txRunner)
	productUC := usecase.NewProductUseCase(cachedProductRepo)
	mermaUC := merma.NewUseCase(txRunner, engine, mermaRepo)
	orderUC := orders.NewUseCase(txRunner, engine, orderRepo, proveedorRepo, clienteRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	receivableUC := usecase.NewReceivableUseCase(txRunner, receivableRepo)
	dashboardUC := reporting.NewDashboardUseCase(productRepo, movementRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Jobs de fondo: alertas de stock bajo y conciliación del libro.
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		if err := scheduler.Register(jobs.NewLowStockJob(dashboardUC, cfg.Jobs.LowStockSchedule, log)); err != nil {
			log.Fatal().Err(err).Msg("registrar job de stock bajo")
		}
		if err := scheduler.Register(jobs.NewReconcileJob(dashboardUC, cfg.Jobs.ReconcileSchedule, log)); err != nil {
			log.Fatal().Err(err).Msg("registrar job de conciliación")
		}
		scheduler.Start()
	}

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
		AuthUC:       authUC,
		ProductUC:    productUC,
		Engine:       engine,
		MermaUC:      mermaUC,
		OrderUC:      orderUC,
		ProveedorUC:  proveedorUC,
		ClienteUC:    clienteUC,
		ReceivableUC: receivableUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
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
	if scheduler != nil {
		scheduler.Stop()
	}

	log.Info().Msg("aplicación detenida")
}
