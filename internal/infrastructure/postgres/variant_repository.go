package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de persistencia para variantes.
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, sku, name, price, created_at, updated_at`

// Create persiste una nueva variante.
func (r *VariantRepo) Create(variant *entity.Variant) error {
	query := `
		INSERT INTO variants (id, product_id, sku, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.SKU, variant.Name, variant.Price,
		variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(id string) (*entity.Variant, error) {
	var v entity.Variant
	err := r.q.QueryRow(context.Background(),
		`SELECT `+variantColumns+` FROM variants WHERE id = $1`, id).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// ListByProduct lista las variantes de un producto.
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.Variant, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+variantColumns+` FROM variants WHERE product_id = $1 ORDER BY created_at ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualiza una variante existente.
func (r *VariantRepo) Update(variant *entity.Variant) error {
	query := `UPDATE variants SET sku = $2, name = $3, price = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.SKU, variant.Name, variant.Price, variant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// Delete elimina una variante por ID.
func (r *VariantRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	return nil
}
