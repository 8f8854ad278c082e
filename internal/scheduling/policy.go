// Package scheduling shapes appointment creation and cancellation
// payloads. A physician reference and a specialty are mutually exclusive;
// exactly one is required.
package scheduling

import (
	"strconv"
	"strings"

	"github.com/medpro/clinicapp/internal/forms"
)

// DefaultCancelReason is sent when the caller gives no cancellation reason.
const DefaultCancelReason = "Solicitado pelo App"

// Assignment resolves who performs the appointment. It is decided once,
// then serialized; the unused key is omitted from the payload entirely.
type Assignment interface {
	apply(*CreatePayload)
}

// ByPhysician books a specific physician. Takes precedence over specialty.
type ByPhysician struct {
	PhysicianID int64
}

func (a ByPhysician) apply(p *CreatePayload) {
	id := a.PhysicianID
	p.MedicoID = &id
}

// BySpecialty lets the backend pick any physician of the specialty. The
// specialty is upper-cased before transmission.
type BySpecialty struct {
	Specialty string
}

func (a BySpecialty) apply(p *CreatePayload) {
	p.Especialidade = strings.ToUpper(a.Specialty)
}

// CreatePayload is the POST /consultas body.
type CreatePayload struct {
	PacienteID     int64  `json:"pacienteId"`
	DataHora       string `json:"dataHora"`
	MotivoConsulta string `json:"motivoConsulta"`
	MedicoID       *int64 `json:"medicoId,omitempty"`
	Especialidade  string `json:"especialidade,omitempty"`
}

// CancelPayload travels in the body of DELETE /consultas/{id}. The backend
// deactivates the appointment and records the reason.
type CancelPayload struct {
	ConsultaID         int64  `json:"consultaId"`
	MotivoCancelamento string `json:"motivoCancelamento"`
}

// BuildCreatePayload validates the scheduling form and shapes the outbound
// payload. Patient and date-time are required unconditionally; a physician
// id or a specialty is required, never both in the payload.
func BuildCreatePayload(fs forms.FormState) (*CreatePayload, forms.Errors) {
	errs := forms.Errors{}

	pacienteRaw := strings.TrimSpace(fs["pacienteId"])
	if pacienteRaw == "" {
		errs["pacienteId"] = forms.RequiredMessage
	}
	dataHora := strings.TrimSpace(fs["dataHora"])
	if dataHora == "" {
		errs["dataHora"] = forms.RequiredMessage
	}

	medicoRaw := strings.TrimSpace(fs["medicoId"])
	especialidade := strings.TrimSpace(fs["especialidade"])
	if medicoRaw == "" && especialidade == "" {
		errs["medicoId"] = "Informe o Médico (ID) ou a Especialidade."
	}

	var pacienteID int64
	if pacienteRaw != "" {
		id, err := strconv.ParseInt(pacienteRaw, 10, 64)
		if err != nil {
			errs["pacienteId"] = "Deve ser um número."
		}
		pacienteID = id
	}

	var assignment Assignment
	if medicoRaw != "" {
		id, err := strconv.ParseInt(medicoRaw, 10, 64)
		if err != nil {
			errs["medicoId"] = "Deve ser um número."
		} else {
			assignment = ByPhysician{PhysicianID: id}
		}
	} else if especialidade != "" {
		assignment = BySpecialty{Specialty: especialidade}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	payload := &CreatePayload{
		PacienteID:     pacienteID,
		DataHora:       dataHora,
		MotivoConsulta: fs["motivoConsulta"],
	}
	assignment.apply(payload)
	return payload, nil
}

// BuildCancelPayload pairs the appointment id with a free-text reason.
// Cancellation is irreversible from the client's perspective.
func BuildCancelPayload(id int64, reason string) CancelPayload {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultCancelReason
	}
	return CancelPayload{ConsultaID: id, MotivoCancelamento: reason}
}
