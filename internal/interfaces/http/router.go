package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/auth"
	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	RoleSettingsUC *usecase.RoleSettingsUseCase
	BrowseUC       *catalog.BrowseUseCase
	ExportUC       *catalog.ExportUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	ManagerRoles   []string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público): el token es opcional, sin él el visitante es guest.
	// VisitorContext inyecta rol y capacidades en el contexto de la petición.
	catalogGroup := api.Group("/catalog",
		OptionalAuthMiddleware(deps.JWTSecret),
		VisitorContext(deps.ManagerRoles, false),
	)
	catalogHandler := NewCatalogHandler(deps.BrowseUC, deps.ExportUC)
	catalogGroup.Get("/products", catalogHandler.ListProducts)
	catalogGroup.Get("/products/:slug", catalogHandler.GetProduct)
	catalogGroup.Get("/categories", catalogHandler.ListCategories)
	catalogGroup.Get("/categories/:slug", catalogHandler.GetCategory)
	catalogGroup.Get("/feed.xml", catalogHandler.Feed)

	// Administración (protegido, requiere capacidad de gestión)
	admin := api.Group("/admin",
		AuthMiddleware(deps.JWTSecret),
		RequireManage(deps.ManagerRoles),
		VisitorContext(deps.ManagerRoles, true),
	)

	products := admin.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.RoleSettingsUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/variants", productHandler.AddVariant)
	products.Get("/:id/variants", productHandler.ListVariants)
	products.Get("/:id/role-pricing", productHandler.GetRolePricing)
	products.Put("/:id/hidden-roles", productHandler.SaveHiddenRoles)
	products.Put("/:id/role-prices", productHandler.SaveRolePrices)
	admin.Put("/variants/:id/role-prices", productHandler.SaveVariantRolePrices)

	categories := admin.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.RoleSettingsUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Put("/:id/hidden-roles", categoryHandler.SaveHiddenRoles)

	admin.Get("/price-list/:role", catalogHandler.PriceList)
}
