package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/slug"
)

// ProductUseCase casos de uso CRUD administrativos para productos y sus
// variantes. La visibilidad y los precios por rol se gestionan aparte
// (RoleSettingsUseCase); aquí el editor siempre ve los valores estándar.
type ProductUseCase struct {
	repo     repository.ProductRepository
	variants repository.VariantRepository
	meta     repository.MetaRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, variants repository.VariantRepository, meta repository.MetaRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, variants: variants, meta: meta}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	productType := in.Type
	if productType == "" {
		productType = entity.ProductTypeSimple
	}
	if productType != entity.ProductTypeSimple && productType != entity.ProductTypeVariable {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Type:        productType,
		Price:       in.Price,
		Status:      "active",
		CategoryIDs: in.CategoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if len(in.CategoryIDs) > 0 {
		if err := uc.repo.SetCategories(product.ID, in.CategoryIDs); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(product)
}

// GetByID obtiene un producto por ID (vista administrativa: precio estándar,
// con su configuración de roles ocultos).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product)
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
		product.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	if in.CategoryIDs != nil {
		if err := uc.repo.SetCategories(product.ID, in.CategoryIDs); err != nil {
			return nil, err
		}
		product.CategoryIDs = in.CategoryIDs
	}
	return uc.toResponse(product)
}

// List lista productos con paginación (vista administrativa, sin filtros de
// visibilidad: los editores ven todos los productos).
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(repository.ProductFilter{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		item, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// AddVariant crea una variante para un producto variable.
func (uc *ProductUseCase) AddVariant(productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsVariable() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	variant := &entity.Variant{
		ID:        uuid.New().String(),
		ProductID: productID,
		SKU:       in.SKU,
		Name:      in.Name,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.variants.Create(variant); err != nil {
		return nil, err
	}
	return &dto.VariantResponse{
		ID:        variant.ID,
		ProductID: variant.ProductID,
		SKU:       variant.SKU,
		Name:      variant.Name,
		Price:     variant.Price,
	}, nil
}

// ListVariants lista las variantes de un producto.
func (uc *ProductUseCase) ListVariants(productID string) ([]dto.VariantResponse, error) {
	variants, err := uc.variants.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		items = append(items, dto.VariantResponse{
			ID:        v.ID,
			ProductID: v.ProductID,
			SKU:       v.SKU,
			Name:      v.Name,
			Price:     v.Price,
		})
	}
	return items, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	hiddenRoles, err := uc.meta.GetHiddenRoles(entity.KindProduct, p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Type:        p.Type,
		Price:       p.Price,
		Status:      p.Status,
		CategoryIDs: p.CategoryIDs,
		HiddenRoles: hiddenRoles,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
