package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/application/roles"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type recordingMeta struct {
	hidden map[string][]entity.Role
	prices map[string]decimal.Decimal
}

func newRecordingMeta() *recordingMeta {
	return &recordingMeta{
		hidden: map[string][]entity.Role{},
		prices: map[string]decimal.Decimal{},
	}
}

func hKey(kind entity.EntityKind, id string) string { return string(kind) + ":" + id }

func pKey(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) string {
	return string(kind) + ":" + id + ":" + role + ":" + string(pk)
}

func (m *recordingMeta) GetHiddenRoles(kind entity.EntityKind, id string) ([]entity.Role, error) {
	return m.hidden[hKey(kind, id)], nil
}

func (m *recordingMeta) SetHiddenRoles(kind entity.EntityKind, id string, rs []entity.Role) error {
	m.hidden[hKey(kind, id)] = rs
	return nil
}

func (m *recordingMeta) GetRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) (decimal.Decimal, bool, error) {
	p, ok := m.prices[pKey(kind, id, role, pk)]
	return p, ok, nil
}

func (m *recordingMeta) SetRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind, price decimal.Decimal) error {
	m.prices[pKey(kind, id, role, pk)] = price
	return nil
}

func (m *recordingMeta) DeleteRolePrice(kind entity.EntityKind, id string, role entity.Role, pk entity.PriceKind) error {
	delete(m.prices, pKey(kind, id, role, pk))
	return nil
}

func (m *recordingMeta) HiddenCategoryIDs(entity.Role) ([]string, error) { return nil, nil }

func (m *recordingMeta) HiddenProductIDs(entity.Role) ([]string, error) { return nil, nil }

type stubVariants struct {
	variants map[string]*entity.Variant
}

func (v *stubVariants) Create(*entity.Variant) error { return nil }

func (v *stubVariants) GetByID(id string) (*entity.Variant, error) {
	return v.variants[id], nil
}

func (v *stubVariants) ListByProduct(string) ([]*entity.Variant, error) { return nil, nil }
func (v *stubVariants) Update(*entity.Variant) error                    { return nil }
func (v *stubVariants) Delete(string) error                             { return nil }

type memRangeCache struct {
	ranges map[string]entity.PriceRange
}

func newMemRangeCache() *memRangeCache {
	return &memRangeCache{ranges: map[string]entity.PriceRange{}}
}

func (c *memRangeCache) GetRange(_ context.Context, productID string, role entity.Role) (*entity.PriceRange, bool, error) {
	r, ok := c.ranges[productID+":"+role]
	return &r, ok, nil
}

func (c *memRangeCache) SetRange(_ context.Context, productID string, role entity.Role, r entity.PriceRange) error {
	c.ranges[productID+":"+role] = r
	return nil
}

func (c *memRangeCache) DeleteRanges(_ context.Context, productID string, rs []entity.Role) error {
	for _, role := range rs {
		delete(c.ranges, productID+":"+role)
	}
	return nil
}

func buildSettings(meta *recordingMeta, variants *stubVariants, cache pricing.RangeCache) *usecase.RoleSettingsUseCase {
	rolesSvc := roles.NewService([]entity.Role{"customer", "wholesale", "vip"}, nil)
	eng := pricing.NewEngine(meta, variants, cache)
	return usecase.NewRoleSettingsUseCase(meta, variants, rolesSvc, eng)
}

func managerCtx() context.Context {
	return reqctx.WithRequest(context.Background(), reqctx.Request{
		Role: "admin", Admin: true, CanManage: true,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveHiddenRoles
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveHiddenRoles_DescartaInvalidosYDuplicados(t *testing.T) {
	meta := newRecordingMeta()
	uc := buildSettings(meta, &stubVariants{}, nil)

	err := uc.SaveHiddenRoles(managerCtx(), entity.KindProduct, "p1",
		[]string{"wholesale", "inexistente", "guest", "wholesale"})
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{"wholesale", "guest"}, meta.hidden["product:p1"],
		"roles inválidos y duplicados descartados, orden de envío preservado")
}

func TestSaveHiddenRoles_SinCapacidad_NoOpSilencioso(t *testing.T) {
	meta := newRecordingMeta()
	uc := buildSettings(meta, &stubVariants{}, nil)

	ctx := reqctx.WithRequest(context.Background(), reqctx.Request{Role: "customer"})
	err := uc.SaveHiddenRoles(ctx, entity.KindProduct, "p1", []string{"wholesale"})
	require.NoError(t, err, "sin capacidad de gestión no hay error, solo no-op")
	assert.Empty(t, meta.hidden, "nada debe persistirse")
}

func TestSaveHiddenRoles_ListaVaciaLimpia(t *testing.T) {
	meta := newRecordingMeta()
	require.NoError(t, meta.SetHiddenRoles(entity.KindCategory, "c1", []entity.Role{"guest"}))
	uc := buildSettings(meta, &stubVariants{}, nil)

	err := uc.SaveHiddenRoles(managerCtx(), entity.KindCategory, "c1", nil)
	require.NoError(t, err)
	assert.Empty(t, meta.hidden["category:c1"])
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveRolePrices
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveRolePrices_GuardaYBorraConStringVacio(t *testing.T) {
	meta := newRecordingMeta()
	uc := buildSettings(meta, &stubVariants{}, nil)

	err := uc.SaveRolePrices(managerCtx(), entity.KindProduct, "p1", dto.SaveRolePricesRequest{
		Entries: []dto.RolePriceEntry{
			{Role: "wholesale", RegularPrice: "80", SalePrice: "70"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, meta.prices, 2)

	// String vacío: borra el sale, conserva el regular.
	err = uc.SaveRolePrices(managerCtx(), entity.KindProduct, "p1", dto.SaveRolePricesRequest{
		Entries: []dto.RolePriceEntry{
			{Role: "wholesale", RegularPrice: "80", SalePrice: ""},
		},
	})
	require.NoError(t, err)
	_, hasSale := meta.prices[pKey(entity.KindProduct, "p1", "wholesale", entity.PriceSale)]
	assert.False(t, hasSale, "la cadena vacía debe borrar el valor guardado")
	regular, hasRegular := meta.prices[pKey(entity.KindProduct, "p1", "wholesale", entity.PriceRegular)]
	assert.True(t, hasRegular)
	assert.True(t, decimal.RequireFromString("80").Equal(regular))
}

func TestSaveRolePrices_MalformadoSeDescartaSinError(t *testing.T) {
	meta := newRecordingMeta()
	uc := buildSettings(meta, &stubVariants{}, nil)

	err := uc.SaveRolePrices(managerCtx(), entity.KindProduct, "p1", dto.SaveRolePricesRequest{
		Entries: []dto.RolePriceEntry{
			{Role: "wholesale", RegularPrice: "no-es-numero"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, meta.prices, "el valor malformado no debe persistirse")
}

func TestSaveRolePrices_RolInvalidoSeDescarta(t *testing.T) {
	meta := newRecordingMeta()
	uc := buildSettings(meta, &stubVariants{}, nil)

	err := uc.SaveRolePrices(managerCtx(), entity.KindProduct, "p1", dto.SaveRolePricesRequest{
		Entries: []dto.RolePriceEntry{
			{Role: "inexistente", RegularPrice: "80"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, meta.prices)
}

// Toda escritura de precio marca sucio el agregado min/max del producto
// afectado; al editar una variante, el agregado invalidado es el del padre.
func TestSaveRolePrices_VarianteInvalidaRangoDelPadre(t *testing.T) {
	meta := newRecordingMeta()
	cache := newMemRangeCache()
	variants := &stubVariants{variants: map[string]*entity.Variant{
		"v1": {ID: "v1", ProductID: "p1"},
	}}
	uc := buildSettings(meta, variants, cache)

	// Agregados precalculados para varios roles del padre.
	require.NoError(t, cache.SetRange(context.Background(), "p1", "guest", entity.PriceRange{}))
	require.NoError(t, cache.SetRange(context.Background(), "p1", "wholesale", entity.PriceRange{}))

	err := uc.SaveRolePrices(managerCtx(), entity.KindVariant, "v1", dto.SaveRolePricesRequest{
		Entries: []dto.RolePriceEntry{
			{Role: "wholesale", RegularPrice: "5"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, cache.ranges, "el agregado del producto padre debe quedar invalidado para todos los roles")
}

func TestSaveRolePrices_SinEscrituraNoInvalida(t *testing.T) {
	meta := newRecordingMeta()
	cache := newMemRangeCache()
	uc := buildSettings(meta, &stubVariants{}, cache)

	require.NoError(t, cache.SetRange(context.Background(), "p1", "guest", entity.PriceRange{}))

	// Solo entradas inválidas o malformadas: no hay escritura, no hay invalidación.
	err := uc.SaveRolePrices(managerCtx(), entity.KindProduct, "p1", dto.SaveRolePricesRequest{
		Entries: []dto.RolePriceEntry{
			{Role: "inexistente", RegularPrice: "80"},
			{Role: "wholesale", RegularPrice: "basura"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, cache.ranges, 1, "sin escritura efectiva el agregado permanece")
}

// ──────────────────────────────────────────────────────────────────────────────
// RolePricing (pintado del formulario)
// ──────────────────────────────────────────────────────────────────────────────

func TestRolePricing_FilaPorRolValidoConGuest(t *testing.T) {
	meta := newRecordingMeta()
	require.NoError(t, meta.SetHiddenRoles(entity.KindProduct, "p1", []entity.Role{"wholesale"}))
	require.NoError(t, meta.SetRolePrice(entity.KindProduct, "p1", "wholesale", entity.PriceRegular, decimal.RequireFromString("80")))
	uc := buildSettings(meta, &stubVariants{}, nil)

	rows, err := uc.RolePricing(managerCtx(), entity.KindProduct, "p1")
	require.NoError(t, err)
	// guest + 3 configurados
	require.Len(t, rows, 4)
	assert.Equal(t, "guest", rows[0].Role, "guest encabeza el conjunto válido")

	byRole := map[string]dto.RolePricingResponse{}
	for _, r := range rows {
		byRole[r.Role] = r
	}
	assert.True(t, byRole["wholesale"].Hidden)
	assert.Equal(t, "80", byRole["wholesale"].RegularPrice)
	assert.Empty(t, byRole["wholesale"].SalePrice)
	assert.False(t, byRole["vip"].Hidden)
}
