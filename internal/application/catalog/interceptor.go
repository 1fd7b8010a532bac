package catalog

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/application/visibility"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Interceptor aplica los conjuntos ocultos del rol actual a toda consulta
// del catálogo y a todo listado de términos.
type Interceptor struct {
	vis *visibility.Engine
}

// NewInterceptor construye el interceptor sobre el motor de visibilidad.
func NewInterceptor(vis *visibility.Engine) *Interceptor {
	return &Interceptor{vis: vis}
}

// Apply añade los productos ocultos del rol a la lista de exclusión de la
// consulta (fusión, no reemplazo). Exento en contexto administrativo no
// asíncrono: los editores ven todos los productos; las llamadas
// administrativas asíncronas orientadas al catálogo sí se filtran.
func (i *Interceptor) Apply(ctx context.Context, q *Query) error {
	if !q.TargetsKind(KindProduct) {
		return nil
	}
	req := reqctx.From(ctx)
	if req.Admin && !req.Async {
		return nil
	}
	hidden, err := i.vis.HiddenProductIDs(ctx, req.Role)
	if err != nil {
		return err
	}
	q.MergeExclusions(hidden)
	return nil
}

// FilterTerms resta las categorías ocultas del rol de un listado de términos.
// Marca el contexto como dentro-de-filtrado-de-términos antes de consultar el
// motor, de modo que el cálculo de categorías ocultas use el escaneo directo
// y no vuelva a pasar por este mismo filtrado.
func (i *Interceptor) FilterTerms(ctx context.Context, categories []*entity.Category) ([]*entity.Category, error) {
	req := reqctx.From(ctx)
	if req.Admin && !req.Async {
		return categories, nil
	}
	hidden, err := i.vis.HiddenCategoryIDs(reqctx.WithInsideTermFilter(ctx), req.Role)
	if err != nil {
		return nil, err
	}
	if len(hidden) == 0 {
		return categories, nil
	}
	hiddenSet := make(map[string]struct{}, len(hidden))
	for _, id := range hidden {
		hiddenSet[id] = struct{}{}
	}
	visible := make([]*entity.Category, 0, len(categories))
	for _, c := range categories {
		if _, ok := hiddenSet[c.ID]; ok {
			continue
		}
		visible = append(visible, c)
	}
	return visible, nil
}

// HiddenTermIDs devuelve las categorías ocultas para inyectarlas en los
// argumentos de filtro de widgets y shortcodes (como slice o CSV según la
// superficie). Usa la misma ruta guardada que FilterTerms.
func (i *Interceptor) HiddenTermIDs(ctx context.Context) ([]string, error) {
	req := reqctx.From(ctx)
	if req.Admin && !req.Async {
		return nil, nil
	}
	return i.vis.HiddenCategoryIDs(reqctx.WithInsideTermFilter(ctx), req.Role)
}
