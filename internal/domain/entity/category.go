package entity

import "time"

// Category representa una categoría del catálogo (término de taxonomía).
// HiddenRoles es el conjunto de roles para los que la categoría (y por
// propagación todos sus productos) queda oculta; se persiste como metadato
// del término, no como columna.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Status      string // active, inactive
	HiddenRoles []Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HiddenFor indica si la categoría está oculta para el rol dado.
func (c *Category) HiddenFor(role Role) bool {
	return RolesContain(c.HiddenRoles, role)
}
