package scheduling

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medpro/clinicapp/internal/forms"
)

func payloadKeys(t *testing.T, p *CreatePayload) map[string]any {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestPhysicianTakesPrecedence(t *testing.T) {
	payload, errs := BuildCreatePayload(forms.FormState{
		"pacienteId":    "7",
		"dataHora":      "2025-12-25T10:00:00",
		"medicoId":      "3",
		"especialidade": "CARDIOLOGIA",
	})
	require.Empty(t, errs)

	keys := payloadKeys(t, payload)
	assert.EqualValues(t, 3, keys["medicoId"])
	assert.NotContains(t, keys, "especialidade", "specialty omitted entirely, not sent empty")
	assert.EqualValues(t, 7, keys["pacienteId"])
	assert.Equal(t, "2025-12-25T10:00:00", keys["dataHora"])
}

func TestSpecialtyUsedWhenNoPhysician(t *testing.T) {
	payload, errs := BuildCreatePayload(forms.FormState{
		"pacienteId":    "7",
		"dataHora":      "2025-12-25T10:00:00",
		"especialidade": "cardiologia",
	})
	require.Empty(t, errs)

	keys := payloadKeys(t, payload)
	assert.Equal(t, "CARDIOLOGIA", keys["especialidade"], "specialty upper-cased")
	assert.NotContains(t, keys, "medicoId")
}

func TestNeitherPhysicianNorSpecialtyFails(t *testing.T) {
	payload, errs := BuildCreatePayload(forms.FormState{
		"pacienteId": "7",
		"dataHora":   "2025-12-25T10:00:00",
	})
	assert.Nil(t, payload)
	assert.Contains(t, errs, "medicoId")
}

func TestUnconditionalFields(t *testing.T) {
	payload, errs := BuildCreatePayload(forms.FormState{"medicoId": "3"})
	assert.Nil(t, payload)
	assert.Equal(t, forms.RequiredMessage, errs["pacienteId"])
	assert.Equal(t, forms.RequiredMessage, errs["dataHora"])
}

func TestNonNumericIDs(t *testing.T) {
	_, errs := BuildCreatePayload(forms.FormState{
		"pacienteId": "sete",
		"dataHora":   "2025-12-25T10:00:00",
		"medicoId":   "três",
	})
	assert.Equal(t, "Deve ser um número.", errs["pacienteId"])
	assert.Equal(t, "Deve ser um número.", errs["medicoId"])
}

func TestReasonCarriedThrough(t *testing.T) {
	payload, errs := BuildCreatePayload(forms.FormState{
		"pacienteId":     "7",
		"dataHora":       "2025-12-25T10:00:00",
		"medicoId":       "3",
		"motivoConsulta": "Dor de cabeça recorrente",
	})
	require.Empty(t, errs)
	assert.Equal(t, "Dor de cabeça recorrente", payload.MotivoConsulta)
}

func TestBuildCancelPayload(t *testing.T) {
	p := BuildCancelPayload(9, "Paciente desistiu")
	assert.Equal(t, CancelPayload{ConsultaID: 9, MotivoCancelamento: "Paciente desistiu"}, p)

	p = BuildCancelPayload(9, "  ")
	assert.Equal(t, DefaultCancelReason, p.MotivoCancelamento)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"consultaId":9,"motivoCancelamento":"Solicitado pelo App"}`, string(data))
}
