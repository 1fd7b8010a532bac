// Package pricing implementa el motor de resolución de precios por rol:
// precedencia sale → regular → estándar, bypass en contexto administrativo y
// recálculo forzado del agregado min/max de productos variables.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// RangeCache puerto del caché del agregado de rango de precios. La clave
// incorpora el rol (Catalog Price Cache Key): un rango cacheado para un rol
// jamás se sirve a otro.
type RangeCache interface {
	GetRange(ctx context.Context, productID string, role entity.Role) (*entity.PriceRange, bool, error)
	SetRange(ctx context.Context, productID string, role entity.Role, r entity.PriceRange) error
	// DeleteRanges marca sucio el agregado: borra las claves del producto
	// para todos los roles dados; la próxima lectura recalcula.
	DeleteRanges(ctx context.Context, productID string, roles []entity.Role) error
}

// Engine resuelve precios efectivos por (entidad, rol).
type Engine struct {
	meta     repository.MetaRepository
	variants repository.VariantRepository
	cache    RangeCache
}

// NewEngine construye el motor. cache puede ser nil (sin caché: siempre
// recalcula, que es el comportamiento seguro).
func NewEngine(meta repository.MetaRepository, variants repository.VariantRepository, cache RangeCache) *Engine {
	return &Engine{meta: meta, variants: variants, cache: cache}
}

// EffectivePrice lee el override guardado para (entidad, rol, clase).
// ok=false significa ausente (heredar estándar); nunca es un error.
func (e *Engine) EffectivePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind) (decimal.Decimal, bool, error) {
	return e.meta.GetRolePrice(kind, entityID, role, priceKind)
}

// FilterPrice aplica la precedencia del precio de venta mostrado:
// sale → regular → estándar. En contexto administrativo de edición (no
// asíncrono) devuelve el estándar sin sustituir, para que el editor vea el
// precio propio de la entidad.
func (e *Engine) FilterPrice(ctx context.Context, standard decimal.Decimal, kind entity.EntityKind, entityID string, role entity.Role) (decimal.Decimal, error) {
	if !reqctx.PriceSubstitutionActive(ctx) {
		return standard, nil
	}
	if sale, ok, err := e.EffectivePrice(kind, entityID, role, entity.PriceSale); err != nil {
		return standard, err
	} else if ok {
		return sale, nil
	}
	if regular, ok, err := e.EffectivePrice(kind, entityID, role, entity.PriceRegular); err != nil {
		return standard, err
	} else if ok {
		return regular, nil
	}
	return standard, nil
}

// FilterRegularPrice precedencia del accessor de precio regular: solo mira su
// propio override antes de caer al estándar.
func (e *Engine) FilterRegularPrice(ctx context.Context, standard decimal.Decimal, kind entity.EntityKind, entityID string, role entity.Role) (decimal.Decimal, error) {
	return e.filterSingle(ctx, standard, kind, entityID, role, entity.PriceRegular)
}

// FilterSalePrice precedencia del accessor de precio de oferta: solo mira su
// propio override antes de caer al estándar.
func (e *Engine) FilterSalePrice(ctx context.Context, standard decimal.Decimal, kind entity.EntityKind, entityID string, role entity.Role) (decimal.Decimal, error) {
	return e.filterSingle(ctx, standard, kind, entityID, role, entity.PriceSale)
}

func (e *Engine) filterSingle(ctx context.Context, standard decimal.Decimal, kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind) (decimal.Decimal, error) {
	if !reqctx.PriceSubstitutionActive(ctx) {
		return standard, nil
	}
	if price, ok, err := e.EffectivePrice(kind, entityID, role, priceKind); err != nil {
		return standard, err
	} else if ok {
		return price, nil
	}
	return standard, nil
}

// PriceRange calcula el agregado min/max de los precios filtrados de las
// variantes de un producto variable para el rol. Lee del caché (clave con
// rol) y recalcula en miss. Producto sin variantes → nil.
func (e *Engine) PriceRange(ctx context.Context, productID string, role entity.Role) (*entity.PriceRange, error) {
	if e.cache != nil {
		if r, ok, err := e.cache.GetRange(ctx, productID, role); err == nil && ok {
			return r, nil
		}
		// Error de caché: recalcular en vez de fallar la petición.
	}
	variants, err := e.variants.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, nil
	}
	var r entity.PriceRange
	for i, v := range variants {
		price, err := e.FilterPrice(ctx, v.Price, entity.KindVariant, v.ID, role)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			r.Min, r.Max = price, price
			continue
		}
		if price.LessThan(r.Min) {
			r.Min = price
		}
		if price.GreaterThan(r.Max) {
			r.Max = price
		}
	}
	if e.cache != nil {
		_ = e.cache.SetRange(ctx, productID, role, r)
	}
	return &r, nil
}

// InvalidateRanges fuerza el recálculo del agregado del producto para todos
// los roles dados. Se invoca en cada escritura de precio por rol (producto o
// variante) para que nunca se sirva un rango calculado bajo otro rol o con
// overrides viejos.
func (e *Engine) InvalidateRanges(ctx context.Context, productID string, validRoles []entity.Role) error {
	if e.cache == nil {
		return nil
	}
	return e.cache.DeleteRanges(ctx, productID, validRoles)
}
