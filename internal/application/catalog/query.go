// Package catalog implementa la navegación pública del catálogo: la
// intercepción de consultas (exclusión de productos ocultos en todo listado,
// búsqueda y feed), el filtrado de listados de términos y el bloqueo 404 de
// acceso directo.
package catalog

import "strings"

// Clases de contenido y taxonomías que puede tener como objetivo una consulta.
const (
	KindProduct      = "product"
	TaxonomyCategory = "product_category"
)

// Query es el objeto de consulta del catálogo: lista de exclusión legible y
// modificable, clase de contenido objetivo, taxonomías y flag de búsqueda.
// Toda superficie de enumeración (listado genérico, shortcode, widget, feed)
// construye una Query y la pasa por el interceptor antes de ejecutarla.
type Query struct {
	Kind       string
	Taxonomies []string
	Search     string
	CategoryID string
	ExcludeIDs []string
	Limit      int
	Offset     int
}

// TargetsKind indica si la consulta apunta a la clase de contenido dada.
func (q *Query) TargetsKind(kind string) bool {
	return q.Kind == kind
}

// TargetsTaxonomy indica si la consulta apunta a la taxonomía dada.
func (q *Query) TargetsTaxonomy(taxonomy string) bool {
	for _, t := range q.Taxonomies {
		if t == taxonomy {
			return true
		}
	}
	return false
}

// IsSearch indica si la consulta es una búsqueda por palabra clave.
func (q *Query) IsSearch() bool {
	return q.Search != ""
}

// MergeExclusions fusiona ids en la lista de exclusión existente (nunca la
// reemplaza), deduplicando.
func (q *Query) MergeExclusions(ids []string) {
	seen := make(map[string]struct{}, len(q.ExcludeIDs)+len(ids))
	for _, id := range q.ExcludeIDs {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		q.ExcludeIDs = append(q.ExcludeIDs, id)
	}
}

// ExcludeCSV devuelve la lista de exclusión como ids separados por coma,
// para superficies que esperan ese formato (widgets, shortcodes).
func (q *Query) ExcludeCSV() string {
	return strings.Join(q.ExcludeIDs, ",")
}
