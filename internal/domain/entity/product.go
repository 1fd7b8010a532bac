package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeSimple   = "simple"
	ProductTypeVariable = "variable"
)

// Product representa un ítem del catálogo.
// Price es el precio estándar (independiente del rol); los precios por rol se
// guardan como metadatos y los resuelve el motor de precios. HiddenRoles oculta
// el producto directamente, además del ocultamiento heredado de sus categorías.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Slug        string
	Description string
	Type        string          // simple, variable
	Price       decimal.Decimal // precio estándar de venta
	Status      string          // active, inactive
	CategoryIDs []string        // relación muchos-a-muchos con Category
	HiddenRoles []Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsVariable indica si el producto tiene variantes.
func (p *Product) IsVariable() bool {
	return p.Type == ProductTypeVariable
}

// HiddenDirectlyFor indica si el producto está oculto por su propio conjunto
// de roles ocultos (sin considerar categorías).
func (p *Product) HiddenDirectlyFor(role Role) bool {
	return RolesContain(p.HiddenRoles, role)
}
