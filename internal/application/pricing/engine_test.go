package pricing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePriceMeta struct {
	prices map[string]decimal.Decimal // clave: kind|id|rol|clase
}

func newFakePriceMeta() *fakePriceMeta {
	return &fakePriceMeta{prices: map[string]decimal.Decimal{}}
}

func priceKey(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) string {
	return string(kind) + "|" + id + "|" + role + "|" + string(pk)
}

func (m *fakePriceMeta) GetHiddenRoles(entity.EntityKind, string) ([]entity.Role, error) {
	return nil, nil
}

func (m *fakePriceMeta) SetHiddenRoles(entity.EntityKind, string, []entity.Role) error { return nil }

func (m *fakePriceMeta) GetRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) (decimal.Decimal, bool, error) {
	p, ok := m.prices[priceKey(kind, id, role, pk)]
	return p, ok, nil
}

func (m *fakePriceMeta) SetRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind, price decimal.Decimal) error {
	m.prices[priceKey(kind, id, role, pk)] = price
	return nil
}

func (m *fakePriceMeta) DeleteRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) error {
	delete(m.prices, priceKey(kind, id, role, pk))
	return nil
}

func (m *fakePriceMeta) HiddenCategoryIDs(entity.Role) ([]string, error) { return nil, nil }

func (m *fakePriceMeta) HiddenProductIDs(entity.Role) ([]string, error) { return nil, nil }

type fakeVariants struct {
	variants []*entity.Variant
}

func (v *fakeVariants) Create(*entity.Variant) error { return nil }

func (v *fakeVariants) GetByID(id string) (*entity.Variant, error) {
	for _, va := range v.variants {
		if va.ID == id {
			return va, nil
		}
	}
	return nil, nil
}

func (v *fakeVariants) ListByProduct(productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	for _, va := range v.variants {
		if va.ProductID == productID {
			out = append(out, va)
		}
	}
	return out, nil
}

func (v *fakeVariants) Update(*entity.Variant) error { return nil }

func (v *fakeVariants) Delete(string) error { return nil }

// fakeRangeCache caché en memoria con clave (producto, rol), como la real.
type fakeRangeCache struct {
	ranges map[string]entity.PriceRange
	hits   int
}

func newFakeRangeCache() *fakeRangeCache {
	return &fakeRangeCache{ranges: map[string]entity.PriceRange{}}
}

func rangeKey(productID string, role entity.Role) string { return productID + ":" + role }

func (c *fakeRangeCache) GetRange(_ context.Context, productID string, role entity.Role) (*entity.PriceRange, bool, error) {
	if r, ok := c.ranges[rangeKey(productID, role)]; ok {
		c.hits++
		return &r, true, nil
	}
	return nil, false, nil
}

func (c *fakeRangeCache) SetRange(_ context.Context, productID string, role entity.Role, r entity.PriceRange) error {
	c.ranges[rangeKey(productID, role)] = r
	return nil
}

func (c *fakeRangeCache) DeleteRanges(_ context.Context, productID string, roles []entity.Role) error {
	for _, role := range roles {
		delete(c.ranges, rangeKey(productID, role))
	}
	return nil
}

func publicCtx(role entity.Role) context.Context {
	return reqctx.WithRequest(context.Background(), reqctx.Request{Role: role})
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Precedencia del precio mostrado: sale → regular → estándar
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterPrice_PrecedenciaSaleRegularEstandar(t *testing.T) {
	meta := newFakePriceMeta()
	eng := pricing.NewEngine(meta, &fakeVariants{}, nil)
	ctx := publicCtx("wholesale")
	standard := dec("100")

	// Solo estándar.
	price, err := eng.FilterPrice(ctx, standard, entity.KindProduct, "p1", "wholesale")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(price), "sin overrides debe regir el estándar")

	// regular=80: gana sobre el estándar.
	require.NoError(t, meta.SetRolePrice(entity.KindProduct, "p1", "wholesale", entity.PriceRegular, dec("80")))
	price, err = eng.FilterPrice(ctx, standard, entity.KindProduct, "p1", "wholesale")
	require.NoError(t, err)
	assert.True(t, dec("80").Equal(price))

	// sale=70: gana sobre regular.
	require.NoError(t, meta.SetRolePrice(entity.KindProduct, "p1", "wholesale", entity.PriceSale, dec("70")))
	price, err = eng.FilterPrice(ctx, standard, entity.KindProduct, "p1", "wholesale")
	require.NoError(t, err)
	assert.True(t, dec("70").Equal(price))

	// Borrar sale: vuelve a regular.
	require.NoError(t, meta.DeleteRolePrice(entity.KindProduct, "p1", "wholesale", entity.PriceSale))
	price, err = eng.FilterPrice(ctx, standard, entity.KindProduct, "p1", "wholesale")
	require.NoError(t, err)
	assert.True(t, dec("80").Equal(price))
}

func TestFilterPrice_OtroRolNoSeVeAfectado(t *testing.T) {
	meta := newFakePriceMeta()
	require.NoError(t, meta.SetRolePrice(entity.KindProduct, "p1", "wholesale", entity.PriceRegular, dec("80")))
	eng := pricing.NewEngine(meta, &fakeVariants{}, nil)

	price, err := eng.FilterPrice(publicCtx("vip"), dec("100"), entity.KindProduct, "p1", "vip")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(price), "el override de wholesale no debe filtrarse a vip")
}

// Los accessors de una sola clase no mezclan clases: el regular no mira el
// sale y viceversa.
func TestFilterRegularPrice_SoloSuPropiaClase(t *testing.T) {
	meta := newFakePriceMeta()
	require.NoError(t, meta.SetRolePrice(entity.KindProduct, "p1", "wholesale", entity.PriceSale, dec("70")))
	eng := pricing.NewEngine(meta, &fakeVariants{}, nil)
	ctx := publicCtx("wholesale")

	regular, err := eng.FilterRegularPrice(ctx, dec("100"), entity.KindProduct, "p1", "wholesale")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(regular), "el accessor regular no debe devolver el sale")

	sale, err := eng.FilterSalePrice(ctx, dec("100"), entity.KindProduct, "p1", "wholesale")
	require.NoError(t, err)
	assert.True(t, dec("70").Equal(sale))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bypass administrativo
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterPrice_AdminEdicionSinSustituir(t *testing.T) {
	meta := newFakePriceMeta()
	require.NoError(t, meta.SetRolePrice(entity.KindProduct, "p1", "admin", entity.PriceSale, dec("70")))
	eng := pricing.NewEngine(meta, &fakeVariants{}, nil)

	ctx := reqctx.WithRequest(context.Background(), reqctx.Request{Role: "admin", Admin: true})
	price, err := eng.FilterPrice(ctx, dec("100"), entity.KindProduct, "p1", "admin")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(price),
		"en edición administrativa el editor debe ver el precio propio de la entidad")
}

func TestFilterPrice_AdminAsincronoSiSustituye(t *testing.T) {
	meta := newFakePriceMeta()
	require.NoError(t, meta.SetRolePrice(entity.KindProduct, "p1", "admin", entity.PriceSale, dec("70")))
	eng := pricing.NewEngine(meta, &fakeVariants{}, nil)

	ctx := reqctx.WithRequest(context.Background(), reqctx.Request{Role: "admin", Admin: true, Async: true})
	price, err := eng.FilterPrice(ctx, dec("100"), entity.KindProduct, "p1", "admin")
	require.NoError(t, err)
	assert.True(t, dec("70").Equal(price),
		"el refresco asíncrono administrativo recibe valores sustituidos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregado min/max de productos variables
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceRange_MinMaxConOverridesPorRol(t *testing.T) {
	meta := newFakePriceMeta()
	variants := &fakeVariants{variants: []*entity.Variant{
		{ID: "v1", ProductID: "p1", Price: dec("10")},
		{ID: "v2", ProductID: "p1", Price: dec("30")},
	}}
	// Override de wholesale sobre v1: 5.
	require.NoError(t, meta.SetRolePrice(entity.KindVariant, "v1", "wholesale", entity.PriceRegular, dec("5")))
	eng := pricing.NewEngine(meta, variants, nil)

	r, err := eng.PriceRange(publicCtx("wholesale"), "p1", "wholesale")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, dec("5").Equal(r.Min))
	assert.True(t, dec("30").Equal(r.Max))

	// Para otro rol el override no existe: rango estándar.
	r, err = eng.PriceRange(publicCtx("guest"), "p1", "guest")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, dec("10").Equal(r.Min))
	assert.True(t, dec("30").Equal(r.Max))
}

func TestPriceRange_SinVariantes_Nil(t *testing.T) {
	eng := pricing.NewEngine(newFakePriceMeta(), &fakeVariants{}, nil)
	r, err := eng.PriceRange(publicCtx("guest"), "p1", "guest")
	require.NoError(t, err)
	assert.Nil(t, r)
}

// La clave del caché incorpora el rol: un rango cacheado para un rol no se
// sirve jamás a otro.
func TestPriceRange_CacheSeparadoPorRol(t *testing.T) {
	cache := newFakeRangeCache()
	variants := &fakeVariants{variants: []*entity.Variant{
		{ID: "v1", ProductID: "p1", Price: dec("10")},
	}}
	meta := newFakePriceMeta()
	require.NoError(t, meta.SetRolePrice(entity.KindVariant, "v1", "wholesale", entity.PriceRegular, dec("5")))
	eng := pricing.NewEngine(meta, variants, cache)

	rWholesale, err := eng.PriceRange(publicCtx("wholesale"), "p1", "wholesale")
	require.NoError(t, err)
	require.NotNil(t, rWholesale)
	assert.True(t, dec("5").Equal(rWholesale.Min))

	// El rango de guest se calcula aparte, no hereda el cacheado de wholesale.
	rGuest, err := eng.PriceRange(publicCtx("guest"), "p1", "guest")
	require.NoError(t, err)
	require.NotNil(t, rGuest)
	assert.True(t, dec("10").Equal(rGuest.Min))

	// Segunda lectura de wholesale: ahora sí sirve del caché.
	_, err = eng.PriceRange(publicCtx("wholesale"), "p1", "wholesale")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestInvalidateRanges_BorraTodosLosRoles(t *testing.T) {
	cache := newFakeRangeCache()
	variants := &fakeVariants{variants: []*entity.Variant{
		{ID: "v1", ProductID: "p1", Price: dec("10")},
	}}
	eng := pricing.NewEngine(newFakePriceMeta(), variants, cache)

	roles := []entity.Role{"guest", "wholesale"}
	for _, role := range roles {
		_, err := eng.PriceRange(publicCtx(role), "p1", role)
		require.NoError(t, err)
	}
	assert.Len(t, cache.ranges, 2)

	require.NoError(t, eng.InvalidateRanges(context.Background(), "p1", roles))
	assert.Empty(t, cache.ranges, "la invalidación debe borrar el agregado para todos los roles")
}
