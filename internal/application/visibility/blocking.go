package visibility

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// Decision resultado del acceso directo a una entidad: renderizar normal o
// responder 404 (con supresión de caché) y terminar la petición.
type Decision int

const (
	Visible Decision = iota
	Blocked
)

// Decide unifica el bloqueo de acceso directo de productos y categorías en
// una sola máquina de estados {clase de entidad, bypass permitido}.
//
// Asimetría deliberada: un producto oculto se muestra igualmente a quien
// tiene la capacidad de gestión del catálogo; una categoría oculta bloquea a
// todos, incluidos los gestores (el ocultamiento de categoría es intención
// administrativa estricta, sin bypass).
func Decide(kind entity.EntityKind, hidden, canManage bool) Decision {
	if !hidden {
		return Visible
	}
	if bypassAllowed(kind) && canManage {
		return Visible
	}
	return Blocked
}

func bypassAllowed(kind entity.EntityKind) bool {
	return kind == entity.KindProduct
}
