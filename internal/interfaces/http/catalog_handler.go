package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// CatalogHandler superficies públicas del catálogo: listados, búsqueda,
// acceso directo a producto y archivo de categoría, y feed XML. Todas pasan
// por los filtros de visibilidad del rol del visitante.
type CatalogHandler struct {
	browse *catalog.BrowseUseCase
	export *catalog.ExportUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(browse *catalog.BrowseUseCase, export *catalog.ExportUseCase) *CatalogHandler {
	return &CatalogHandler{browse: browse, export: export}
}

// ListProducts godoc
// @Summary      Listar/buscar productos del catálogo
// @Tags         catalog
// @Produce      json
// @Param        q            query  string  false  "Búsqueda por palabra clave"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        exclude      query  string  false  "IDs a excluir (CSV), se fusionan con los ocultos"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CatalogListResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	in := dto.CatalogListRequest{
		Search:     c.Query("q"),
		CategoryID: c.Query("category_id"),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}
	if raw := c.Query("exclude"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				in.ExcludeIDs = append(in.ExcludeIDs, id)
			}
		}
	}
	out, err := h.browse.ListProducts(c.UserContext(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías visibles
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.browse.ListCategories(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Página de producto (acceso directo)
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Slug del producto"
// @Success      200  {object}  dto.CatalogProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.browse.GetProductBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrHiddenForRole) {
			return notFoundBlocked(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Archivo de categoría (acceso directo)
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Slug de la categoría"
// @Success      200  {object}  dto.CatalogCategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories/{slug} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.browse.GetCategoryBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrHiddenForRole) {
			return notFoundBlocked(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// Feed godoc
// @Summary      Feed XML de productos visibles
// @Tags         catalog
// @Produce      xml
// @Success      200  {string}  string
// @Router       /api/catalog/feed.xml [get]
func (h *CatalogHandler) Feed(c *fiber.Ctx) error {
	out, err := h.export.Feed(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(out)
}

// PriceList godoc
// @Summary      Lista de precios por rol (PDF)
// @Tags         role-pricing
// @Security     Bearer
// @Produce      application/pdf
// @Param        role  path  string  true  "Rol"
// @Success      200  {string}  string
// @Router       /api/admin/price-list/{role} [get]
func (h *CatalogHandler) PriceList(c *fiber.Ctx) error {
	out, err := h.export.PriceList(c.UserContext(), c.Params("role"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lista-precios.pdf"`)
	return c.Send(out)
}

// notFoundBlocked respuesta 404 para acceso bloqueado por rol: misma forma
// que un no-encontrado real (no revela existencia), con supresión de caché.
func notFoundBlocked(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
}
