package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// FeedBuilder genera el feed XML de productos (estilo merchant).
type FeedBuilder interface {
	BuildFeed(ctx context.Context, items []FeedItem) ([]byte, error)
}

// FeedItem entrada del feed: el precio ya viene resuelto para el rol del
// visitante y los productos ocultos nunca llegan aquí.
type FeedItem struct {
	ID          string
	SKU         string
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
}

// PriceListGenerator genera la lista de precios en PDF para un rol.
type PriceListGenerator interface {
	GeneratePriceList(ctx context.Context, role entity.Role, rows []PriceListRow) ([]byte, error)
}

// PriceListRow fila de la lista de precios por rol.
type PriceListRow struct {
	SKU           string
	Name          string
	StandardPrice decimal.Decimal
	RolePrice     decimal.Decimal
}

// ExportUseCase superficies de exportación del catálogo: feed XML público y
// lista de precios PDF administrativa. Ambas pasan por los mismos filtros de
// visibilidad que cualquier otro listado.
type ExportUseCase struct {
	products    repository.ProductRepository
	prices      *pricing.Engine
	interceptor *Interceptor
	feed        FeedBuilder
	pdf         PriceListGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(products repository.ProductRepository, prices *pricing.Engine, interceptor *Interceptor, feed FeedBuilder, pdf PriceListGenerator) *ExportUseCase {
	return &ExportUseCase{products: products, prices: prices, interceptor: interceptor, feed: feed, pdf: pdf}
}

// Feed genera el feed XML con los productos visibles para el rol actual.
func (uc *ExportUseCase) Feed(ctx context.Context) ([]byte, error) {
	req := reqctx.From(ctx)
	q := &Query{Kind: KindProduct, Limit: 1000}
	if err := uc.interceptor.Apply(ctx, q); err != nil {
		return nil, err
	}
	list, err := uc.products.List(repository.ProductFilter{
		ExcludeIDs: q.ExcludeIDs,
		OnlyActive: true,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]FeedItem, 0, len(list))
	for _, p := range list {
		price, err := uc.prices.FilterPrice(ctx, p.Price, entity.KindProduct, p.ID, req.Role)
		if err != nil {
			return nil, err
		}
		items = append(items, FeedItem{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Price:       price,
		})
	}
	return uc.feed.BuildFeed(ctx, items)
}

// PriceList genera el PDF de lista de precios para el rol indicado (vista
// administrativa: incluye todos los productos, con el precio estándar y el
// efectivo del rol lado a lado).
func (uc *ExportUseCase) PriceList(ctx context.Context, role entity.Role) ([]byte, error) {
	list, err := uc.products.List(repository.ProductFilter{OnlyActive: true, Limit: 1000})
	if err != nil {
		return nil, err
	}
	// La sustitución por rol debe operar aunque la petición sea
	// administrativa: se marca como refresco asíncrono de datos.
	priceCtx := reqctx.WithRequest(ctx, reqctx.Request{Role: role, Async: true})
	rows := make([]PriceListRow, 0, len(list))
	for _, p := range list {
		rolePrice, err := uc.prices.FilterPrice(priceCtx, p.Price, entity.KindProduct, p.ID, role)
		if err != nil {
			return nil, err
		}
		rows = append(rows, PriceListRow{
			SKU:           p.SKU,
			Name:          p.Name,
			StandardPrice: p.Price,
			RolePrice:     rolePrice,
		})
	}
	return uc.pdf.GeneratePriceList(ctx, role, rows)
}
