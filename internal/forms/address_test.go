package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenAddressNestedWins(t *testing.T) {
	fs := FormState{
		"nome":       "Ana",
		"logradouro": "Rua Antiga", // legacy flat field from the entity
	}
	out := FlattenAddress(fs, &Address{
		Logradouro: "Av. Paulista",
		Bairro:     "Bela Vista",
		Cidade:     "São Paulo",
		UF:         "SP",
		CEP:        "01310-100",
	})

	assert.Equal(t, "Av. Paulista", out["logradouro"], "nested value takes precedence")
	assert.Equal(t, "Bela Vista", out["bairro"])
	assert.Equal(t, "Ana", out["nome"], "scalar fields untouched")
}

func TestFlattenAddressLegacyFallback(t *testing.T) {
	fs := FormState{"cidade": "Campinas"}
	out := FlattenAddress(fs, &Address{Logradouro: "Rua A"})

	assert.Equal(t, "Campinas", out["cidade"], "legacy flat value kept when nested field empty")
	assert.Equal(t, "Rua A", out["logradouro"])
}

func TestFlattenAddressNilIsTotal(t *testing.T) {
	out := FlattenAddress(nil, nil)
	for _, field := range AddressFields {
		v, ok := out[field]
		require.True(t, ok, field)
		assert.Equal(t, "", v)
	}
}

func TestAddressRoundTrip(t *testing.T) {
	original := FlattenAddress(FormState{"nome": "Beto", "telefone": "11 99999-0000"}, &Address{
		Logradouro:  "Rua B",
		Bairro:      "Centro",
		Numero:      "42",
		Complemento: "Sala 3",
		Cidade:      "Santos",
		UF:          "SP",
		CEP:         "11010-000",
	})

	scalars, addr := SplitAddress(original)
	again := FlattenAddress(scalars.Clone(), &addr)

	assert.Equal(t, original, again, "flatten ∘ unflatten is idempotent on its own output")
}

func TestSplitAddressSeparatesScalars(t *testing.T) {
	fs := FormState{"nome": "Ana", "bairro": "Centro", "cep": "111", "telefone": "x"}
	scalars, addr := SplitAddress(fs)

	assert.Equal(t, FormState{"nome": "Ana", "telefone": "x"}, scalars)
	assert.Equal(t, "Centro", addr.Bairro)
	assert.Equal(t, "111", addr.CEP)
	assert.Equal(t, "", addr.Numero, "missing fields default to empty")
}
