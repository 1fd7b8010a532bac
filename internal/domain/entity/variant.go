package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant representa una variante de un producto variable (talla, color, etc.).
// Comparte la semántica de precios por rol del producto padre (metadatos
// regular/sale por rol, resueltos por su propio ID), pero NUNCA lleva roles
// ocultos propios: una variante solo se oculta vía su producto o categoría.
type Variant struct {
	ID        string
	ProductID string
	SKU       string
	Name      string // ej. "Talla M / Rojo"
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
