package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogo-api/pkg/slug"
)

func TestMake_NormalizaAcentosYEspacios(t *testing.T) {
	assert.Equal(t, "categoria-de-oferta", slug.Make("Categoría de Oferta"))
	assert.Equal(t, "nino-grande", slug.Make("  Niño   Grande  "))
	assert.Equal(t, "producto-2024", slug.Make("Producto (2024)"))
}

func TestMake_Idempotente(t *testing.T) {
	s := slug.Make("Categoría de Oferta")
	assert.Equal(t, s, slug.Make(s))
}

func TestMake_Vacio(t *testing.T) {
	assert.Equal(t, "", slug.Make(""))
}
