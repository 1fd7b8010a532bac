// Package visibility implementa el motor de resolución de visibilidad por
// rol: dos niveles de ocultamiento (categoría y producto) aplicados de forma
// consistente sobre todas las superficies de enumeración del catálogo.
package visibility

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// Engine calcula conjuntos y predicados de ocultamiento para un rol.
// Los cálculos se rehacen por petición; no hay memoización entre peticiones.
type Engine struct {
	meta       repository.MetaRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewEngine construye el motor con sus puertos de lectura.
func NewEngine(meta repository.MetaRepository, categories repository.CategoryRepository, products repository.ProductRepository) *Engine {
	return &Engine{meta: meta, categories: categories, products: products}
}

// IsCategoryHidden indica si la categoría está oculta para el rol.
func (e *Engine) IsCategoryHidden(categoryID string, role entity.Role) (bool, error) {
	roles, err := e.meta.GetHiddenRoles(entity.KindCategory, categoryID)
	if err != nil {
		return false, err
	}
	return entity.RolesContain(roles, role), nil
}

// IsProductHidden indica si el producto está oculto para el rol: por su
// propio conjunto o por cualquiera de sus categorías. Corta en la primera
// coincidencia.
func (e *Engine) IsProductHidden(productID string, role entity.Role) (bool, error) {
	own, err := e.meta.GetHiddenRoles(entity.KindProduct, productID)
	if err != nil {
		return false, err
	}
	if entity.RolesContain(own, role) {
		return true, nil
	}
	product, err := e.products.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}
	for _, catID := range product.CategoryIDs {
		hidden, err := e.IsCategoryHidden(catID, role)
		if err != nil {
			return false, err
		}
		if hidden {
			return true, nil
		}
	}
	return false, nil
}

// HiddenCategoryIDs devuelve los ids de categorías ocultas para el rol.
//
// Dos rutas de lectura con resultado idéntico: la ruta por el repositorio de
// categorías (join con metadatos) y el escaneo directo del almacén de
// atributos. Cuando el contexto lleva la marca de re-entrada (ya estamos
// dentro del filtrado de un listado de términos) se usa el escaneo directo,
// que no vuelve a pasar por el filtrado y evita la recursión sin fin.
// Ambas rutas comparan pertenencia exacta del rol, nunca por substring.
func (e *Engine) HiddenCategoryIDs(ctx context.Context, role entity.Role) ([]string, error) {
	if reqctx.InsideTermFilter(ctx) {
		return e.meta.HiddenCategoryIDs(role)
	}
	return e.categories.ListIDsWithHiddenRole(role)
}

// HiddenProductIDs devuelve los ids de productos ocultos para el rol:
// unión deduplicada de (a) productos con el rol en su propio conjunto y
// (b) productos miembros de cualquier categoría oculta para el rol.
func (e *Engine) HiddenProductIDs(ctx context.Context, role entity.Role) ([]string, error) {
	direct, err := e.meta.HiddenProductIDs(role)
	if err != nil {
		return nil, err
	}
	hiddenCats, err := e.HiddenCategoryIDs(ctx, role)
	if err != nil {
		return nil, err
	}
	var viaCategories []string
	if len(hiddenCats) > 0 {
		viaCategories, err = e.products.ListIDsByCategories(hiddenCats)
		if err != nil {
			return nil, err
		}
	}
	seen := make(map[string]struct{}, len(direct)+len(viaCategories))
	result := make([]string, 0, len(direct)+len(viaCategories))
	for _, id := range direct {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	for _, id := range viaCategories {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}
