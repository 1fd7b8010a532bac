package entity

import "github.com/shopspring/decimal"

// Clase de entidad sobre la que se guardan metadatos por rol.
type EntityKind string

const (
	KindCategory EntityKind = "category"
	KindProduct  EntityKind = "product"
	KindVariant  EntityKind = "variant"
)

// Clase de precio por rol.
type PriceKind string

const (
	PriceRegular PriceKind = "regular"
	PriceSale    PriceKind = "sale"
)

// RolePricing es el registro en memoria de la configuración de un rol sobre
// una entidad: oculto sí/no y overrides opcionales de precio (nil = heredar el
// precio estándar). El adaptador de persistencia lo descompone en claves de
// metadato por rol (hidden_roles, regular_price_<rol>, sale_price_<rol>);
// ese patrón de claves vive solo en la frontera de almacenamiento.
type RolePricing struct {
	Role         Role
	Hidden       bool
	RegularPrice *decimal.Decimal
	SalePrice    *decimal.Decimal
}

// PriceRange agregado min/max de precios de variantes para un producto
// variable y un rol. Se cachea bajo una clave que incluye el rol para que
// nunca se filtre un rango calculado para otro rol.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}
