package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.MetaRepository = (*MetaRepo)(nil)

// MetaRepo adaptador del almacén de atributos por entidad sobre la tabla
// entity_meta (entity_kind, entity_id, meta_key, meta_value). Aquí — y solo
// aquí — se construye el patrón de claves por rol: hidden_roles como lista
// JSON, y una clave de precio por (rol, clase) en vez de un blob compuesto,
// para que el almacén indexe y busque por clave nativa.
type MetaRepo struct {
	q Querier
}

// NewMetaRepository construye el adaptador de metadatos.
func NewMetaRepository(q Querier) *MetaRepo {
	return &MetaRepo{q: q}
}

const metaKeyHiddenRoles = "hidden_roles"

// rolePriceKey clave de metadato de un precio por rol: regular_price_<rol> o
// sale_price_<rol>.
func rolePriceKey(priceKind entity.PriceKind, role entity.Role) string {
	return fmt.Sprintf("%s_price_%s", priceKind, role)
}

// GetHiddenRoles lee el conjunto de roles ocultos de la entidad.
// Ausente o JSON malformado → conjunto vacío, nunca error.
func (r *MetaRepo) GetHiddenRoles(kind entity.EntityKind, entityID string) ([]entity.Role, error) {
	raw, found, err := r.get(kind, entityID, metaKeyHiddenRoles)
	if err != nil {
		return nil, err
	}
	if !found {
		return []entity.Role{}, nil
	}
	var roles []entity.Role
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		// Forma inesperada guardada: coaccionar a vacío, no propagar.
		return []entity.Role{}, nil
	}
	return roles, nil
}

// SetHiddenRoles persiste el conjunto como lista JSON (preserva orden de
// inserción; semánticamente es un conjunto).
func (r *MetaRepo) SetHiddenRoles(kind entity.EntityKind, entityID string, roles []entity.Role) error {
	if roles == nil {
		roles = []entity.Role{}
	}
	raw, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("marshal hidden roles: %w", err)
	}
	return r.set(kind, entityID, metaKeyHiddenRoles, string(raw))
}

// GetRolePrice lee el override de precio. Clave ausente o valor vacío →
// ok=false sin error.
func (r *MetaRepo) GetRolePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind) (decimal.Decimal, bool, error) {
	raw, found, err := r.get(kind, entityID, rolePriceKey(priceKind, role))
	if err != nil {
		return decimal.Zero, false, err
	}
	if !found || raw == "" {
		return decimal.Zero, false, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		// Valor malformado guardado: tratar como ausente.
		return decimal.Zero, false, nil
	}
	return price, true, nil
}

// SetRolePrice guarda el override de precio para (entidad, rol, clase).
func (r *MetaRepo) SetRolePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind, price decimal.Decimal) error {
	return r.set(kind, entityID, rolePriceKey(priceKind, role), price.String())
}

// DeleteRolePrice elimina el override (string vacío en el formulario).
func (r *MetaRepo) DeleteRolePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM entity_meta WHERE entity_kind = $1 AND entity_id = $2 AND meta_key = $3`,
		string(kind), entityID, rolePriceKey(priceKind, role),
	)
	if err != nil {
		return fmt.Errorf("delete role price: %w", err)
	}
	return nil
}

// HiddenCategoryIDs escaneo directo de bajo nivel: recorre las filas
// hidden_roles de categorías y decide pertenencia decodificando la lista en
// memoria, con comparación exacta de elemento (nunca substring sobre el
// valor serializado: un rol prefijo de otro no debe dar falso positivo).
func (r *MetaRepo) HiddenCategoryIDs(role entity.Role) ([]string, error) {
	return r.scanHidden(entity.KindCategory, role)
}

// HiddenProductIDs ids de productos con el rol en su propio conjunto oculto.
func (r *MetaRepo) HiddenProductIDs(role entity.Role) ([]string, error) {
	return r.scanHidden(entity.KindProduct, role)
}

func (r *MetaRepo) scanHidden(kind entity.EntityKind, role entity.Role) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT entity_id, meta_value FROM entity_meta WHERE entity_kind = $1 AND meta_key = $2`,
		string(kind), metaKeyHiddenRoles,
	)
	if err != nil {
		return nil, fmt.Errorf("scan hidden roles meta: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan meta row: %w", err)
		}
		var roles []entity.Role
		if err := json.Unmarshal([]byte(raw), &roles); err != nil {
			continue // malformado: conjunto vacío
		}
		if entity.RolesContain(roles, role) {
			ids = append(ids, id)
		}
	}
	return ids, rows.Err()
}

func (r *MetaRepo) get(kind entity.EntityKind, entityID, key string) (string, bool, error) {
	var raw string
	err := r.q.QueryRow(context.Background(),
		`SELECT meta_value FROM entity_meta WHERE entity_kind = $1 AND entity_id = $2 AND meta_key = $3`,
		string(kind), entityID, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get meta %s: %w", key, err)
	}
	return raw, true, nil
}

func (r *MetaRepo) set(kind entity.EntityKind, entityID, key, value string) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO entity_meta (entity_kind, entity_id, meta_key, meta_value)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (entity_kind, entity_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`,
		string(kind), entityID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set meta %s: %w", key, err)
	}
	return nil
}
