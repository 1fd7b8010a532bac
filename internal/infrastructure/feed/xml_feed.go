// Package feed genera el feed XML de productos del catálogo (formato RSS 2.0
// estilo merchant). El listado que recibe ya viene filtrado por visibilidad y
// con precios resueltos para el rol del visitante.
package feed

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
)

var _ catalog.FeedBuilder = (*XMLFeedBuilder)(nil)

// XMLFeedBuilder construye el feed con etree.
type XMLFeedBuilder struct {
	// BaseURL raíz pública de la tienda para los links de producto.
	BaseURL string
	// Currency código de moneda de los precios del feed.
	Currency string
}

// NewXMLFeedBuilder construye el generador.
func NewXMLFeedBuilder(baseURL, currency string) *XMLFeedBuilder {
	if currency == "" {
		currency = "COP"
	}
	return &XMLFeedBuilder{BaseURL: baseURL, Currency: currency}
}

// BuildFeed genera el documento XML y devuelve sus bytes.
func (b *XMLFeedBuilder) BuildFeed(_ context.Context, items []catalog.FeedItem) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", "http://base.google.com/ns/1.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText("Catálogo de productos")
	channel.CreateElement("link").SetText(b.BaseURL)

	for _, item := range items {
		el := channel.CreateElement("item")
		el.CreateElement("g:id").SetText(item.SKU)
		el.CreateElement("title").SetText(item.Name)
		el.CreateElement("description").SetText(item.Description)
		el.CreateElement("link").SetText(fmt.Sprintf("%s/products/%s", b.BaseURL, item.Slug))
		el.CreateElement("g:price").SetText(fmt.Sprintf("%s %s", item.Price.StringFixed(2), b.Currency))
		el.CreateElement("g:availability").SetText("in stock")
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
