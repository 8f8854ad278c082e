package physicians

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medpro/clinicapp/internal/forms"
)

func filledForm() forms.FormState {
	return forms.FormState{
		"nome":          "Ana Maria da Silva",
		"especialidade": "CARDIOLOGIA",
		"crm":           "123456",
		"email":         "ana@medpro.com",
		"telefone":      "(11) 98888-0000",
		"cep":           "01310-100",
		"logradouro":    "Av. Paulista",
		"bairro":        "Bela Vista",
		"numero":        "1000",
		"complemento":   "",
		"cidade":        "São Paulo",
		"uf":            "SP",
	}
}

func marshalKeys(t *testing.T, payload any) map[string]any {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestCreatePayloadIncludesLockedFields(t *testing.T) {
	ctrl := forms.NewController(FormConfig(), 0, filledForm())
	payload, errs := ctrl.Submit()
	require.Empty(t, errs)

	keys := marshalKeys(t, payload)
	assert.Contains(t, keys, "especialidade")
	assert.Contains(t, keys, "crm")
	assert.Contains(t, keys, "email")
	assert.NotContains(t, keys, "id", "create bodies omit the id")

	endereco, ok := keys["endereco"].(map[string]any)
	require.True(t, ok, "address travels nested")
	assert.Equal(t, "Bela Vista", endereco["bairro"])
}

func TestUpdatePayloadOmitsLockedFields(t *testing.T) {
	ctrl := forms.NewController(FormConfig(), 3, filledForm())
	ctrl.SetField("telefone", "(11) 97777-1111")
	payload, errs := ctrl.Submit()
	require.Empty(t, errs)

	keys := marshalKeys(t, payload)
	assert.NotContains(t, keys, "especialidade")
	assert.NotContains(t, keys, "crm")
	assert.NotContains(t, keys, "email")
	assert.EqualValues(t, 3, keys["id"], "id travels in the body")
	assert.Equal(t, "(11) 97777-1111", keys["telefone"])
}

func TestLockedFieldsIgnoredWhileEditing(t *testing.T) {
	ctrl := forms.NewController(FormConfig(), 3, filledForm())
	ctrl.SetField("crm", "999999")
	assert.Equal(t, "123456", ctrl.Field("crm"))
}

func TestCreateRequiresAllFields(t *testing.T) {
	ctrl := forms.NewController(FormConfig(), 0, nil)
	_, errs := ctrl.Submit()
	for _, field := range []string{"nome", "especialidade", "crm", "email", "telefone", "logradouro", "bairro", "cidade", "uf", "cep"} {
		assert.Contains(t, errs, field)
	}
	assert.NotContains(t, errs, "numero", "number and complement are optional")
	assert.NotContains(t, errs, "complemento")
}

func TestFlattenUsesNestedAddress(t *testing.T) {
	p := &Physician{
		ID:        1,
		Name:      "Ana",
		Specialty: "CARDIOLOGIA",
		CRM:       "123456",
		Email:     "ana@medpro.com",
		Phone:     "11 9",
		Address:   &forms.Address{Bairro: "Centro", Cidade: "Santos", UF: "SP", CEP: "11010-000"},
	}
	fs := Flatten(p)
	assert.Equal(t, "Ana", fs["nome"])
	assert.Equal(t, "Centro", fs["bairro"])
	assert.Equal(t, "", fs["logradouro"], "missing address fields default to empty")
}

func TestListConfigSearchAndSections(t *testing.T) {
	cfg := ListConfig()
	p := Physician{Name: "Ana", Specialty: "CARDIOLOGIA"}
	assert.Equal(t, []string{"Ana", "CARDIOLOGIA"}, cfg.SearchFields(p))
	assert.Equal(t, "A", cfg.SectionKey(p))
	assert.False(t, cfg.Descending)
}
