// Package reqctx transporta la información del visitante por el
// context.Context de la petición: rol resuelto, si es un contexto
// administrativo de edición, si es una llamada asíncrona de refresco y si el
// actor tiene la capacidad de gestión del catálogo.
//
// También implementa la guardia de re-entrada del filtrado de términos como
// un marcador de contexto explícito en lugar de un flag global de proceso:
// el camino recursivo se marca con WithInsideTermFilter y el motor de
// visibilidad elige la ruta de lectura de bajo nivel cuando lo detecta. Al
// vivir en el contexto, el marcador se descarta solo en cada retorno
// (normal o con error), sin estado compartido entre peticiones.
package reqctx

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

type ctxKey int

const (
	keyRequest ctxKey = iota
	keyInsideTermFilter
)

// Request describe al visitante de la petición actual.
type Request struct {
	Role          entity.Role
	Authenticated bool
	// Admin contexto administrativo de edición: el motor de precios devuelve
	// el precio estándar sin sustituir.
	Admin bool
	// Async llamada administrativa asíncrona de refresco de datos: recibe
	// valores sustituidos por rol aunque Admin sea true (vista previa).
	Async bool
	// CanManage capacidad de gestión del catálogo (bypass del bloqueo 404 de
	// productos; las categorías ocultas no admiten bypass).
	CanManage bool
}

// WithRequest anota el contexto con la información del visitante.
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, keyRequest, req)
}

// From devuelve la información del visitante. Sin anotación previa se asume
// un visitante anónimo: rol guest, sin privilegios.
func From(ctx context.Context) Request {
	if req, ok := ctx.Value(keyRequest).(Request); ok {
		if req.Role == "" {
			req.Role = entity.RoleGuest
		}
		return req
	}
	return Request{Role: entity.RoleGuest}
}

// PriceSubstitutionActive indica si el motor de precios debe sustituir por
// rol: siempre en el camino público, y en el administrativo solo cuando la
// llamada es asíncrona (refresco de vista previa).
func PriceSubstitutionActive(ctx context.Context) bool {
	req := From(ctx)
	if req.Admin && !req.Async {
		return false
	}
	return true
}

// WithInsideTermFilter marca que ya estamos dentro del filtrado de un listado
// de términos; las consultas de categorías ocultas bajo esta marca deben usar
// el escaneo directo del almacén para no recursar.
func WithInsideTermFilter(ctx context.Context) context.Context {
	return context.WithValue(ctx, keyInsideTermFilter, true)
}

// InsideTermFilter consulta la marca de re-entrada.
func InsideTermFilter(ctx context.Context) bool {
	v, _ := ctx.Value(keyInsideTermFilter).(bool)
	return v
}
