package catalog

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/application/visibility"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// BrowseUseCase navegación pública del catálogo: listados y búsqueda con
// exclusión de ocultos, listados de categorías filtrados y acceso directo
// con bloqueo 404.
type BrowseUseCase struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	variants    repository.VariantRepository
	vis         *visibility.Engine
	prices      *pricing.Engine
	interceptor *Interceptor
}

// NewBrowseUseCase construye el caso de uso.
func NewBrowseUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	variants repository.VariantRepository,
	vis *visibility.Engine,
	prices *pricing.Engine,
	interceptor *Interceptor,
) *BrowseUseCase {
	return &BrowseUseCase{
		products:    products,
		categories:  categories,
		variants:    variants,
		vis:         vis,
		prices:      prices,
		interceptor: interceptor,
	}
}

// ListProducts listado/búsqueda pública. Construye la Query, la pasa por el
// interceptor (exclusión de ocultos fusionada con las exclusiones propias) y
// resuelve los precios para el rol del visitante.
func (uc *BrowseUseCase) ListProducts(ctx context.Context, in dto.CatalogListRequest) (*dto.CatalogListResponse, error) {
	if in.Limit <= 0 {
		in.Limit = 20
	}
	if in.Limit > 100 {
		in.Limit = 100
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	q := &Query{
		Kind:       KindProduct,
		Search:     in.Search,
		CategoryID: in.CategoryID,
		ExcludeIDs: in.ExcludeIDs,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.CategoryID != "" {
		q.Taxonomies = []string{TaxonomyCategory}
	}
	if err := uc.interceptor.Apply(ctx, q); err != nil {
		return nil, err
	}
	list, err := uc.products.List(repository.ProductFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		ExcludeIDs: q.ExcludeIDs,
		OnlyActive: true,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogProductResponse, 0, len(list))
	for _, p := range list {
		item, err := uc.toCatalogProduct(ctx, p, false)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return &dto.CatalogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ListCategories listado público de términos, con las categorías ocultas del
// rol restadas por el interceptor.
func (uc *BrowseUseCase) ListCategories(ctx context.Context, limit, offset int) (*dto.CategoryListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.categories.List(limit, offset)
	if err != nil {
		return nil, err
	}
	visible, err := uc.interceptor.FilterTerms(ctx, list)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(visible))
	for _, c := range visible {
		items = append(items, dto.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Status:      c.Status,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		})
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetProductBySlug acceso directo a la página de un producto. Si está oculto
// para el rol y el actor no tiene la capacidad de gestión, devuelve
// ErrHiddenForRole (el handler responde 404 sin caché).
func (uc *BrowseUseCase) GetProductBySlug(ctx context.Context, slug string) (*dto.CatalogProductResponse, error) {
	product, err := uc.products.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	req := reqctx.From(ctx)
	hidden, err := uc.vis.IsProductHidden(product.ID, req.Role)
	if err != nil {
		return nil, err
	}
	if visibility.Decide(entity.KindProduct, hidden, req.CanManage) == visibility.Blocked {
		return nil, domain.ErrHiddenForRole
	}
	return uc.toCatalogProduct(ctx, product, true)
}

// GetCategoryBySlug acceso directo al archivo de una categoría. El bloqueo
// de categoría no admite bypass: aplica también a gestores.
func (uc *BrowseUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*dto.CatalogCategoryResponse, error) {
	category, err := uc.categories.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	req := reqctx.From(ctx)
	hidden, err := uc.vis.IsCategoryHidden(category.ID, req.Role)
	if err != nil {
		return nil, err
	}
	if visibility.Decide(entity.KindCategory, hidden, req.CanManage) == visibility.Blocked {
		return nil, domain.ErrHiddenForRole
	}
	list, err := uc.ListProducts(ctx, dto.CatalogListRequest{CategoryID: category.ID, Limit: 100})
	if err != nil {
		return nil, err
	}
	return &dto.CatalogCategoryResponse{
		Category: dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Slug:        category.Slug,
			Description: category.Description,
			Status:      category.Status,
			CreatedAt:   category.CreatedAt,
			UpdatedAt:   category.UpdatedAt,
		},
		Products: list.Items,
	}, nil
}

// toCatalogProduct resuelve los precios del producto para el rol del
// visitante. Para productos variables incluye el rango min/max (agregado
// cacheado por rol) y, si withVariants, las variantes con precio resuelto.
func (uc *BrowseUseCase) toCatalogProduct(ctx context.Context, p *entity.Product, withVariants bool) (*dto.CatalogProductResponse, error) {
	req := reqctx.From(ctx)
	price, err := uc.prices.FilterPrice(ctx, p.Price, entity.KindProduct, p.ID, req.Role)
	if err != nil {
		return nil, err
	}
	item := &dto.CatalogProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Type:        p.Type,
		Price:       price,
	}
	if p.IsVariable() {
		r, err := uc.prices.PriceRange(ctx, p.ID, req.Role)
		if err != nil {
			return nil, err
		}
		if r != nil {
			min, max := r.Min, r.Max
			item.PriceMin, item.PriceMax = &min, &max
		}
		if withVariants {
			variants, err := uc.variants.ListByProduct(p.ID)
			if err != nil {
				return nil, err
			}
			for _, v := range variants {
				vPrice, err := uc.prices.FilterPrice(ctx, v.Price, entity.KindVariant, v.ID, req.Role)
				if err != nil {
					return nil, err
				}
				item.Variants = append(item.Variants, dto.CatalogVariantResponse{
					ID:    v.ID,
					SKU:   v.SKU,
					Name:  v.Name,
					Price: vPrice,
				})
			}
		}
	}
	return item, nil
}
