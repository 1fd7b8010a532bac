package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// MetaRepository es el adaptador del almacén de atributos por entidad:
// conjuntos de roles ocultos y precios por rol, guardados como metadatos
// clave-valor por (clase de entidad, id). El patrón de claves por rol
// (regular_price_<rol>, sale_price_<rol>, hidden_roles) se construye solo
// dentro del adaptador, nunca en la capa de aplicación.
//
// Política de fallos: dato ausente o malformado se trata como conjunto vacío
// o precio ausente, nunca como error.
type MetaRepository interface {
	// GetHiddenRoles devuelve el conjunto de roles ocultos de la entidad.
	// Ausente o malformado → slice vacío, sin error.
	GetHiddenRoles(kind entity.EntityKind, entityID string) ([]entity.Role, error)
	// SetHiddenRoles persiste el conjunto (preserva el orden de inserción).
	SetHiddenRoles(kind entity.EntityKind, entityID string, roles []entity.Role) error

	// GetRolePrice lee el override de precio por rol. ok=false si no existe
	// o está vacío; nunca error por ausencia.
	GetRolePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind) (decimal.Decimal, bool, error)
	SetRolePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind, price decimal.Decimal) error
	// DeleteRolePrice elimina el override (string vacío en el formulario).
	DeleteRolePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind) error

	// HiddenCategoryIDs escaneo directo de bajo nivel: ids de categorías cuyo
	// conjunto oculto contiene el rol. Se usa dentro del filtrado de términos
	// para no re-disparar ese mismo filtrado (guardia de re-entrada).
	HiddenCategoryIDs(role entity.Role) ([]string, error)
	// HiddenProductIDs ids de productos directamente ocultos para el rol
	// (sin contar el ocultamiento heredado de categorías).
	HiddenProductIDs(role entity.Role) ([]string, error)
}
