// Package appointments defines the appointment entity, its scheduling
// form and the cancellation flow. Appointments are never edited: the only
// transition is AGENDADA → CANCELADA, and it is irreversible.
package appointments

import (
	"context"

	"github.com/medpro/clinicapp/internal/clinicapi"
	"github.com/medpro/clinicapp/internal/forms"
	"github.com/medpro/clinicapp/internal/listview"
	"github.com/medpro/clinicapp/internal/repository"
	"github.com/medpro/clinicapp/internal/scheduling"
	"github.com/medpro/clinicapp/pkg/logging"
)

// DefaultResource is the backend collection path.
const DefaultResource = "/consultas"

const listSort = "dataHora,desc"

// Status values are server-authoritative.
const (
	StatusScheduled = "AGENDADA"
	StatusCancelled = "CANCELADA"
)

// Appointment is the list summary the backend serves: denormalized
// physician and patient names plus the scheduling data.
type Appointment struct {
	ID            int64  `json:"id,omitempty"`
	PhysicianName string `json:"nomeMedico,omitempty"`
	PatientName   string `json:"nomePaciente,omitempty"`
	DateTime      string `json:"dataHora,omitempty"`
	Reason        string `json:"motivoConsulta,omitempty"`
	Status        string `json:"situacao,omitempty"`
}

// Cancelled reports whether the appointment was already cancelled.
func (a Appointment) Cancelled() bool { return a.Status == StatusCancelled }

var formFields = []string{
	"pacienteId", "dataHora", "medicoId", "especialidade", "motivoConsulta",
}

func shapePayload(mode forms.Mode, _ int64, fs forms.FormState) (any, forms.Errors) {
	payload, errs := scheduling.BuildCreatePayload(fs)
	if len(errs) > 0 {
		return nil, errs
	}
	return payload, nil
}

// FormConfig describes the scheduling form. The physician-or-specialty
// rule lives in the shaper; the controller only enforces the
// unconditional fields.
func FormConfig() forms.Config {
	return forms.Config{
		Fields:   formFields,
		Required: []string{"pacienteId", "dataHora"},
		Shape:    shapePayload,
	}
}

// ListConfig describes search and sectioning for the appointment list:
// matched on physician or patient name, grouped by day, newest day first.
func ListConfig() listview.Config[Appointment] {
	return listview.Config[Appointment]{
		SearchFields: func(a Appointment) []string { return []string{a.PhysicianName, a.PatientName} },
		SectionKey:   func(a Appointment) string { return listview.DateKey(a.DateTime) },
		Descending:   true,
	}
}

// Repository wraps the generic repository with the cancellation flow.
type Repository struct {
	*repository.Repository[Appointment]
}

// NewRepository builds the appointment repository.
func NewRepository(client *clinicapi.Client, resource string, pageSize int, logger *logging.Logger) *Repository {
	if resource == "" {
		resource = DefaultResource
	}
	return &Repository{
		Repository: repository.New[Appointment](client, resource, pageSize, listSort, logger),
	}
}

// Cancel soft-deletes the appointment, carrying the reason in the request
// body. An empty reason falls back to the default.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	return r.DeleteWithReason(ctx, id, scheduling.BuildCancelPayload(id, reason))
}
