// Package roles resuelve el universo de roles válidos del catálogo.
package roles

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// userRoles es el contrato mínimo que necesita el servicio para enumerar los
// roles presentes en usuarios (lo implementa repository.UserRepository).
type userRoles interface {
	DistinctRoles() ([]entity.Role, error)
}

// Service enumera los roles válidos: los configurados en la aplicación, los
// asignados a usuarios existentes y el rol sintético guest. Los valores de
// hidden_roles fuera de este conjunto son inertes pero no se purgan.
type Service struct {
	configured []entity.Role
	users      userRoles
}

// NewService construye el servicio. configured viene de la configuración
// (CATALOG_ROLES); users puede ser nil en tests.
func NewService(configured []entity.Role, users userRoles) *Service {
	return &Service{configured: configured, users: users}
}

// ValidRoles devuelve el conjunto válido, deduplicado, con guest incluido.
func (s *Service) ValidRoles() ([]entity.Role, error) {
	seen := map[entity.Role]struct{}{}
	var result []entity.Role
	add := func(r entity.Role) {
		if r == "" {
			return
		}
		if _, ok := seen[r]; ok {
			return
		}
		seen[r] = struct{}{}
		result = append(result, r)
	}
	add(entity.RoleGuest)
	for _, r := range s.configured {
		add(r)
	}
	if s.users != nil {
		fromUsers, err := s.users.DistinctRoles()
		if err != nil {
			return nil, err
		}
		for _, r := range fromUsers {
			add(r)
		}
	}
	return result, nil
}

// IsValid verifica pertenencia exacta al conjunto válido.
func (s *Service) IsValid(role entity.Role) (bool, error) {
	valid, err := s.ValidRoles()
	if err != nil {
		return false, err
	}
	return entity.RolesContain(valid, role), nil
}
