package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/application/roles"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/application/visibility"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Catalogo-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "catalogo-api-test"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria compartido por los fakes (metadatos + entidades)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   []*entity.Product
	categories []*entity.Category
	variants   []*entity.Variant
	hidden     map[string][]entity.Role
	prices     map[string]decimal.Decimal
}

func newMemStore() *memStore {
	return &memStore{
		hidden: map[string][]entity.Role{},
		prices: map[string]decimal.Decimal{},
	}
}

func (s *memStore) hideFor(kind entity.EntityKind, id string, roles ...entity.Role) {
	s.hidden[string(kind)+":"+id] = roles
}

func (s *memStore) setPrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind, price string) {
	s.prices[string(kind)+":"+id+":"+role+":"+string(pk)] = decimal.RequireFromString(price)
}

// memMeta implementa repository.MetaRepository sobre el almacén.
type memMeta struct{ s *memStore }

func (m memMeta) GetHiddenRoles(kind entity.EntityKind, id string) ([]entity.Role, error) {
	return m.s.hidden[string(kind)+":"+id], nil
}

func (m memMeta) SetHiddenRoles(kind entity.EntityKind, id string, roles []entity.Role) error {
	m.s.hidden[string(kind)+":"+id] = roles
	return nil
}

func (m memMeta) GetRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) (decimal.Decimal, bool, error) {
	p, ok := m.s.prices[string(kind)+":"+id+":"+role+":"+string(pk)]
	return p, ok, nil
}

func (m memMeta) SetRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind, price decimal.Decimal) error {
	m.s.prices[string(kind)+":"+id+":"+role+":"+string(pk)] = price
	return nil
}

func (m memMeta) DeleteRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) error {
	delete(m.s.prices, string(kind)+":"+id+":"+role+":"+string(pk))
	return nil
}

func (m memMeta) HiddenCategoryIDs(role entity.Role) ([]string, error) {
	var ids []string
	for _, c := range m.s.categories {
		if entity.RolesContain(m.s.hidden["category:"+c.ID], role) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (m memMeta) HiddenProductIDs(role entity.Role) ([]string, error) {
	var ids []string
	for _, p := range m.s.products {
		if entity.RolesContain(m.s.hidden["product:"+p.ID], role) {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// memProducts implementa repository.ProductRepository sobre el almacén.
type memProducts struct{ s *memStore }

func (r memProducts) Create(p *entity.Product) error {
	r.s.products = append(r.s.products, p)
	return nil
}

func (r memProducts) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r memProducts) GetBySlug(slug string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r memProducts) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r memProducts) Update(*entity.Product) error { return nil }

func (r memProducts) List(f repository.ProductFilter) ([]*entity.Product, error) {
	excluded := map[string]struct{}{}
	for _, id := range f.ExcludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*entity.Product
	for _, p := range r.s.products {
		if _, ok := excluded[p.ID]; ok {
			continue
		}
		if f.CategoryID != "" && !containsStr(p.CategoryIDs, f.CategoryID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r memProducts) ListIDsByCategories(categoryIDs []string) ([]string, error) {
	var ids []string
	for _, p := range r.s.products {
		for _, catID := range categoryIDs {
			if containsStr(p.CategoryIDs, catID) && !containsStr(ids, p.ID) {
				ids = append(ids, p.ID)
			}
		}
	}
	return ids, nil
}

func (r memProducts) SetCategories(string, []string) error { return nil }
func (r memProducts) Delete(string) error                  { return nil }

// memCategories implementa repository.CategoryRepository sobre el almacén.
type memCategories struct{ s *memStore }

func (r memCategories) Create(c *entity.Category) error {
	r.s.categories = append(r.s.categories, c)
	return nil
}

func (r memCategories) GetByID(id string) (*entity.Category, error) {
	for _, c := range r.s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r memCategories) GetBySlug(slug string) (*entity.Category, error) {
	for _, c := range r.s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r memCategories) Update(*entity.Category) error { return nil }

func (r memCategories) List(int, int) ([]*entity.Category, error) {
	return r.s.categories, nil
}

func (r memCategories) ListIDsWithHiddenRole(role entity.Role) ([]string, error) {
	return memMeta{r.s}.HiddenCategoryIDs(role)
}

func (r memCategories) Delete(string) error { return nil }

// memVariants implementa repository.VariantRepository sobre el almacén.
type memVariants struct{ s *memStore }

func (r memVariants) Create(v *entity.Variant) error {
	r.s.variants = append(r.s.variants, v)
	return nil
}

func (r memVariants) GetByID(id string) (*entity.Variant, error) {
	for _, v := range r.s.variants {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (r memVariants) ListByProduct(productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r memVariants) Update(*entity.Variant) error { return nil }
func (r memVariants) Delete(string) error          { return nil }

func containsStr(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test: rutas públicas de catálogo con el escenario mayorista
// ──────────────────────────────────────────────────────────────────────────────

// buildCatalogApp monta el escenario de referencia:
//   - c1 "general" visible para todos
//   - c2 "linea-privada" oculta para wholesale y admin
//   - p1 "gorra" (100, wholesale regular=80) en c1
//   - p2 "edicion-limitada" oculta directamente para wholesale y admin, en c1
//   - p3 "exclusivo" miembro de c2 (oculto por herencia)
func buildCatalogApp(t *testing.T) *fiber.App {
	t.Helper()
	s := newMemStore()
	s.categories = []*entity.Category{
		{ID: "c1", Name: "General", Slug: "general", Status: "active"},
		{ID: "c2", Name: "Línea privada", Slug: "linea-privada", Status: "active"},
	}
	s.products = []*entity.Product{
		{ID: "p1", SKU: "GOR-1", Name: "Gorra", Slug: "gorra", Type: entity.ProductTypeSimple,
			Price: decimal.RequireFromString("100"), Status: "active", CategoryIDs: []string{"c1"}},
		{ID: "p2", SKU: "EDL-1", Name: "Edición limitada", Slug: "edicion-limitada", Type: entity.ProductTypeSimple,
			Price: decimal.RequireFromString("200"), Status: "active", CategoryIDs: []string{"c1"}},
		{ID: "p3", SKU: "EXC-1", Name: "Exclusivo", Slug: "exclusivo", Type: entity.ProductTypeSimple,
			Price: decimal.RequireFromString("300"), Status: "active", CategoryIDs: []string{"c2"}},
	}
	s.hideFor(entity.KindProduct, "p2", "wholesale", "admin")
	s.hideFor(entity.KindCategory, "c2", "wholesale", "admin")
	s.setPrice(entity.KindProduct, "p1", "wholesale", entity.PriceRegular, "80")

	meta := memMeta{s}
	products := memProducts{s}
	categories := memCategories{s}
	variants := memVariants{s}

	visEngine := visibility.NewEngine(meta, categories, products)
	priceEngine := pricing.NewEngine(meta, variants, nil)
	interceptor := catalog.NewInterceptor(visEngine)
	browseUC := catalog.NewBrowseUseCase(products, categories, variants, visEngine, priceEngine, interceptor)
	exportUC := catalog.NewExportUseCase(products, priceEngine, interceptor, nil, nil)

	rolesSvc := roles.NewService([]entity.Role{"customer", "wholesale", "vip"}, nil)
	settingsUC := usecase.NewRoleSettingsUseCase(meta, variants, rolesSvc, priceEngine)
	productUC := usecase.NewProductUseCase(products, variants, meta)
	categoryUC := usecase.NewCategoryUseCase(categories, meta)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      productUC,
		CategoryUC:     categoryUC,
		RoleSettingsUC: settingsUC,
		BrowseUC:       browseUC,
		ExportUC:       exportUC,
		AuthUC:         nil, // las rutas de auth no se ejercitan aquí
		JWTSecret:      testJWTSecret,
		ManagerRoles:   []string{"admin"},
	})
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "00000000-0000-0000-0000-000000000001", role, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeList(t *testing.T, resp *http.Response) dto.CatalogListResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.CatalogListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func listedSlugs(list dto.CatalogListResponse) []string {
	slugs := make([]string, 0, len(list.Items))
	for _, it := range list.Items {
		slugs = append(slugs, it.Slug)
	}
	return slugs
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_GuestVeTodoAlPrecioEstandar(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/products", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	assert.ElementsMatch(t, []string{"gorra", "edicion-limitada", "exclusivo"}, listedSlugs(list))
	for _, it := range list.Items {
		if it.Slug == "gorra" {
			assert.True(t, decimal.RequireFromString("100").Equal(it.Price),
				"guest no recibe el precio mayorista")
		}
	}
}

func TestCatalogo_WholesaleNoVeOcultosYRecibeSuPrecio(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/products", tokenFor(t, "wholesale"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	assert.ElementsMatch(t, []string{"gorra"}, listedSlugs(list),
		"ni el oculto directo ni el miembro de categoría oculta deben listarse")
	require.Len(t, list.Items, 1)
	assert.True(t, decimal.RequireFromString("80").Equal(list.Items[0].Price))
}

func TestCatalogo_ExclusionesPropiasSeConservan(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/products?exclude=p1", tokenFor(t, "wholesale"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	assert.Empty(t, list.Items, "la exclusión propia se fusiona con los ocultos, no se pierde")
}

func TestCatalogo_WholesaleNoVeCategoriaOculta(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/categories", tokenFor(t, "wholesale"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var out dto.CategoryListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "general", out.Items[0].Slug)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo de acceso directo y su asimetría
// ──────────────────────────────────────────────────────────────────────────────

func TestAccesoDirecto_ProductoOculto404ConSupresionDeCache(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/products/edicion-limitada", tokenFor(t, "wholesale"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store",
		"la respuesta de bloqueo no debe cachearse")
}

func TestAccesoDirecto_GestorHaceBypassDelProductoOculto(t *testing.T) {
	app := buildCatalogApp(t)

	// p2 está oculto también para admin, pero admin tiene capacidad de gestión.
	resp := get(t, app, "/api/catalog/products/edicion-limitada", tokenFor(t, "admin"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un gestor ve la página del producto oculto")
}

func TestAccesoDirecto_CategoriaOcultaBloqueaInclusoAlGestor(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/categories/linea-privada", tokenFor(t, "admin"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"el bloqueo de categoría no admite bypass de gestión")
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}

func TestAccesoDirecto_InexistenteEs404Normal(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/products/no-existe", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"oculto e inexistente deben ser indistinguibles para el visitante")
}

func TestAccesoDirecto_CategoriaVisibleExcluyeProductosOcultos(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/categories/general", tokenFor(t, "wholesale"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var out dto.CatalogCategoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	slugs := make([]string, 0, len(out.Products))
	for _, p := range out.Products {
		slugs = append(slugs, p.Slug)
	}
	assert.ElementsMatch(t, []string{"gorra"}, slugs,
		"el archivo de una categoría visible sigue excluyendo los productos ocultos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Token inválido degrada a guest en el camino público
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_TokenInvalidoDegradaAGuest(t *testing.T) {
	app := buildCatalogApp(t)

	resp := get(t, app, "/api/catalog/products", "Bearer token.invalido.aqui")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	assert.Len(t, list.Items, 3, "sin rol resoluble el visitante navega como guest")
}
