package dto

import "github.com/shopspring/decimal"

// CatalogProductResponse producto visto por el visitante: el precio ya viene
// resuelto para su rol (sale → regular → estándar) y los productos ocultos
// jamás llegan a este DTO.
type CatalogProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	// PriceMin/PriceMax rango de variantes para productos variables.
	PriceMin *decimal.Decimal         `json:"price_min,omitempty"`
	PriceMax *decimal.Decimal         `json:"price_max,omitempty"`
	Variants []CatalogVariantResponse `json:"variants,omitempty"`
}

// CatalogVariantResponse variante con precio resuelto por rol.
type CatalogVariantResponse struct {
	ID    string          `json:"id"`
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CatalogListRequest parámetros de listado/búsqueda pública.
type CatalogListRequest struct {
	Search     string `query:"q"`
	CategoryID string `query:"category_id"`
	// ExcludeIDs exclusiones propias de la superficie (shortcode/widget);
	// se fusionan con los ocultos del rol, nunca se reemplazan.
	ExcludeIDs []string `query:"exclude"`
	Limit      int      `query:"limit"`
	Offset     int      `query:"offset"`
}

// CatalogListResponse listado público de productos.
type CatalogListResponse struct {
	Items []CatalogProductResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// CatalogCategoryResponse archivo de categoría: la categoría más sus
// productos visibles para el rol.
type CatalogCategoryResponse struct {
	Category CategoryResponse         `json:"category"`
	Products []CatalogProductResponse `json:"products"`
}
