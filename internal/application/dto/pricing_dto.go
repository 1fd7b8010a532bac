package dto

// SaveHiddenRolesRequest formulario de roles ocultos de una entidad.
// Los valores fuera del conjunto de roles válidos se descartan en silencio.
type SaveHiddenRolesRequest struct {
	Roles []string `json:"roles"`
}

// RolePriceEntry precios enviados para un rol: strings del formulario; la
// cadena vacía borra el valor guardado (la entidad vuelve a heredar el
// precio estándar para esa clase).
type RolePriceEntry struct {
	Role         string `json:"role"`
	RegularPrice string `json:"regular_price"`
	SalePrice    string `json:"sale_price"`
}

// SaveRolePricesRequest formulario de precios por rol de una entidad.
type SaveRolePricesRequest struct {
	Entries []RolePriceEntry `json:"entries"`
}

// RolePricingResponse configuración vigente de un rol sobre una entidad.
type RolePricingResponse struct {
	Role         string `json:"role"`
	Hidden       bool   `json:"hidden"`
	RegularPrice string `json:"regular_price,omitempty"`
	SalePrice    string `json:"sale_price,omitempty"`
}
