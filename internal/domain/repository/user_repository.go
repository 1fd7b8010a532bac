package repository

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// DistinctRoles roles presentes en usuarios (para el universo de roles
	// válidos junto con los configurados).
	DistinctRoles() ([]entity.Role, error)
}
