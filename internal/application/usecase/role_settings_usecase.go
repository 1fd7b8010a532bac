package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/application/roles"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// RoleSettingsUseCase puntos de entrada de guardado del formulario
// administrativo: conjunto de roles ocultos y precios por rol de una entidad.
//
// Política de escritura: los roles fuera del conjunto válido se descartan en
// silencio; un actor sin capacidad de gestión produce un no-op silencioso
// (sin error al llamador).
type RoleSettingsUseCase struct {
	meta     repository.MetaRepository
	variants repository.VariantRepository
	roles    *roles.Service
	prices   *pricing.Engine
}

// NewRoleSettingsUseCase construye el caso de uso.
func NewRoleSettingsUseCase(meta repository.MetaRepository, variants repository.VariantRepository, rolesSvc *roles.Service, prices *pricing.Engine) *RoleSettingsUseCase {
	return &RoleSettingsUseCase{meta: meta, variants: variants, roles: rolesSvc, prices: prices}
}

// SaveHiddenRoles persiste el conjunto de roles ocultos de la entidad,
// preservando el orden de inserción de los valores válidos.
func (uc *RoleSettingsUseCase) SaveHiddenRoles(ctx context.Context, kind entity.EntityKind, entityID string, submitted []string) error {
	if !reqctx.From(ctx).CanManage {
		return nil
	}
	filtered := make([]entity.Role, 0, len(submitted))
	for _, r := range submitted {
		valid, err := uc.roles.IsValid(r)
		if err != nil {
			return err
		}
		if !valid {
			continue
		}
		if entity.RolesContain(filtered, r) {
			continue
		}
		filtered = append(filtered, r)
	}
	return uc.meta.SetHiddenRoles(kind, entityID, filtered)
}

// SaveRolePrices persiste los precios por rol de la entidad: cada string no
// vacío se guarda como decimal; el string vacío borra el valor guardado
// (la entidad vuelve a heredar el estándar). Valores malformados o roles
// inválidos se descartan en silencio. Toda escritura marca sucio el agregado
// de rango del producto afectado.
func (uc *RoleSettingsUseCase) SaveRolePrices(ctx context.Context, kind entity.EntityKind, entityID string, in dto.SaveRolePricesRequest) error {
	if !reqctx.From(ctx).CanManage {
		return nil
	}
	dirty := false
	for _, e := range in.Entries {
		valid, err := uc.roles.IsValid(e.Role)
		if err != nil {
			return err
		}
		if !valid {
			continue
		}
		if err := uc.savePrice(kind, entityID, e.Role, entity.PriceRegular, e.RegularPrice, &dirty); err != nil {
			return err
		}
		if err := uc.savePrice(kind, entityID, e.Role, entity.PriceSale, e.SalePrice, &dirty); err != nil {
			return err
		}
	}
	if !dirty {
		return nil
	}
	return uc.invalidateRange(ctx, kind, entityID)
}

// RolePricing devuelve, para cada rol válido, su configuración vigente sobre
// la entidad (para pintar el formulario administrativo).
func (uc *RoleSettingsUseCase) RolePricing(ctx context.Context, kind entity.EntityKind, entityID string) ([]dto.RolePricingResponse, error) {
	validRoles, err := uc.roles.ValidRoles()
	if err != nil {
		return nil, err
	}
	hidden, err := uc.meta.GetHiddenRoles(kind, entityID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RolePricingResponse, 0, len(validRoles))
	for _, role := range validRoles {
		row := dto.RolePricingResponse{
			Role:   role,
			Hidden: entity.RolesContain(hidden, role),
		}
		if regular, ok, err := uc.meta.GetRolePrice(kind, entityID, role, entity.PriceRegular); err != nil {
			return nil, err
		} else if ok {
			row.RegularPrice = regular.String()
		}
		if sale, ok, err := uc.meta.GetRolePrice(kind, entityID, role, entity.PriceSale); err != nil {
			return nil, err
		} else if ok {
			row.SalePrice = sale.String()
		}
		result = append(result, row)
	}
	return result, nil
}

func (uc *RoleSettingsUseCase) savePrice(kind entity.EntityKind, entityID string, role entity.Role, priceKind entity.PriceKind, raw string, dirty *bool) error {
	if raw == "" {
		if err := uc.meta.DeleteRolePrice(kind, entityID, role, priceKind); err != nil {
			return err
		}
		*dirty = true
		return nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		// Valor malformado del formulario: descartar sin error.
		return nil
	}
	if err := uc.meta.SetRolePrice(kind, entityID, role, priceKind, price); err != nil {
		return err
	}
	*dirty = true
	return nil
}

// invalidateRange marca sucio el agregado min/max del producto afectado por
// la escritura: el propio producto, o el padre si se editó una variante.
func (uc *RoleSettingsUseCase) invalidateRange(ctx context.Context, kind entity.EntityKind, entityID string) error {
	productID := entityID
	if kind == entity.KindVariant {
		variant, err := uc.variants.GetByID(entityID)
		if err != nil {
			return err
		}
		if variant == nil {
			return nil
		}
		productID = variant.ProductID
	}
	validRoles, err := uc.roles.ValidRoles()
	if err != nil {
		return err
	}
	return uc.prices.InvalidateRanges(ctx, productID, validRoles)
}
