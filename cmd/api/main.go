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

	"github.com/jhoicas/Catalogo-api/internal/application/auth"
	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/application/roles"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/application/visibility"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/cache"
	infrafeed "github.com/jhoicas/Catalogo-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/Catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	metaRepo := postgres.NewMetaRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Caché de rangos de precio. Si Redis no está disponible, el motor de
	// precios recalcula en cada lectura.
	var rangeCache pricing.RangeCache
	if priceCache, err := cache.New(ctx, cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("redis no disponible, rangos de precio sin caché")
	} else {
		rangeCache = priceCache
	}

	rolesSvc := roles.NewService(cfg.Catalog.Roles, userRepo)
	visEngine := visibility.NewEngine(metaRepo, categoryRepo, productRepo)
	priceEngine := pricing.NewEngine(metaRepo, variantRepo, rangeCache)
	interceptor := catalog.NewInterceptor(visEngine)

	productUC := usecase.NewProductUseCase(productRepo, variantRepo, metaRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, metaRepo)
	roleSettingsUC := usecase.NewRoleSettingsUseCase(metaRepo, variantRepo, rolesSvc, priceEngine)

	browseUC := catalog.NewBrowseUseCase(productRepo, categoryRepo, variantRepo, visEngine, priceEngine, interceptor)
	feedBuilder := infrafeed.NewXMLFeedBuilder(cfg.Catalog.FeedBaseURL, cfg.Catalog.Currency)
	pdfGenerator := infrapdf.NewMarotoPriceListGenerator()
	exportUC := catalog.NewExportUseCase(productRepo, priceEngine, interceptor, feedBuilder, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "Catálogo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		CategoryUC:     categoryUC,
		RoleSettingsUC: roleSettingsUC,
		BrowseUC:       browseUC,
		ExportUC:       exportUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
		ManagerRoles:   cfg.Catalog.ManagerRoles,
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
