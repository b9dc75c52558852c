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

	"github.com/jhoicas/ucoffee-api/internal/application/auth"
	"github.com/jhoicas/ucoffee-api/internal/application/ports"
	"github.com/jhoicas/ucoffee-api/internal/application/usecase"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
	"github.com/jhoicas/ucoffee-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/ucoffee-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ucoffee-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ucoffee-api/internal/interfaces/http"
	"github.com/jhoicas/ucoffee-api/pkg/config"
	"github.com/jhoicas/ucoffee-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("admin_enforced", cfg.Auth.AdminEnforced).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis opcional: caché de catálogo + denylist de tokens. Sin Redis, denylist en memoria.
	var productRepo repository.ProductRepository = postgres.NewProductRepository(pool)
	var denylist ports.TokenDenylist = cache.NewMemoryTokenDenylist()
	if cfg.Redis.Enabled() {
		rdb, err := cache.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		productRepo = cache.NewProductCache(productRepo, rdb, cfg.Redis.ProductTTL, log.Zerolog())
		denylist = cache.NewRedisTokenDenylist(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis habilitado")
	}

	authUC := auth.NewAuthUseCase(userRepo, txRunner, denylist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Zerolog())
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	receiptGenerator := infrapdf.NewReceiptGenerator(cfg.App.Name, "UAH")
	orderUC := usecase.NewOrderUseCase(orderRepo, receiptGenerator, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))
	app.Use(recover.New())
	app.Use(httpRouter.CORS(cfg.HTTP.CORSOrigins))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "uCoffee API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		ProductUC:     productUC,
		OrderUC:       orderUC,
		JWTSecret:     cfg.JWT.Secret,
		AdminEnforced: cfg.Auth.AdminEnforced,
		Revocation:    authUC,
		ServiceName:   cfg.App.Name,
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
