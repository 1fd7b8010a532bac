package repository

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	// ListIDsWithHiddenRole devuelve los ids de categorías cuyo conjunto de
	// roles ocultos contiene exactamente el rol dado. Es la ruta "alta" del
	// cálculo de categorías ocultas (join con metadatos vía query); la ruta
	// baja (escaneo directo) vive en MetaRepository.
	ListIDsWithHiddenRole(role entity.Role) ([]string, error)
	Delete(id string) error
}
