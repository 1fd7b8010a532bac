package repository

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// VariantRepository define el puerto de persistencia para Variant (DIP).
type VariantRepository interface {
	Create(variant *entity.Variant) error
	GetByID(id string) (*entity.Variant, error)
	ListByProduct(productID string) ([]*entity.Variant, error)
	Update(variant *entity.Variant) error
	Delete(id string) error
}
