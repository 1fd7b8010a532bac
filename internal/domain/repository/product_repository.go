package repository

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// ProductFilter criterios para listados públicos de productos.
// ExcludeIDs es el conjunto de exclusión ya fusionado por la intercepción de
// consultas (ids ocultos para el rol + exclusiones propias de la consulta).
type ProductFilter struct {
	Search     string
	CategoryID string
	ExcludeIDs []string
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	// ListIDsByCategories devuelve los ids de productos que pertenecen a
	// cualquiera de las categorías dadas (sin duplicados).
	ListIDsByCategories(categoryIDs []string) ([]string, error)
	SetCategories(productID string, categoryIDs []string) error
	Delete(id string) error
}
