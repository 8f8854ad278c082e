// Package patients defines the patient entity and its form and list
// behavior. CPF and email are immutable once the record is persisted.
package patients

import (
	"github.com/medpro/clinicapp/internal/clinicapi"
	"github.com/medpro/clinicapp/internal/forms"
	"github.com/medpro/clinicapp/internal/listview"
	"github.com/medpro/clinicapp/internal/repository"
	"github.com/medpro/clinicapp/pkg/logging"
)

// DefaultResource is the backend collection path.
const DefaultResource = "/pacientes"

const listSort = "nome,asc"

// Patient is the entity as the backend serves it.
type Patient struct {
	ID      int64          `json:"id,omitempty"`
	Name    string         `json:"nome"`
	CPF     string         `json:"cpf,omitempty"`
	Email   string         `json:"email,omitempty"`
	Phone   string         `json:"telefone,omitempty"`
	Address *forms.Address `json:"endereco,omitempty"`
}

// CreatePayload includes every field, locked ones included.
type CreatePayload struct {
	Name    string        `json:"nome"`
	CPF     string        `json:"cpf"`
	Email   string        `json:"email"`
	Phone   string        `json:"telefone"`
	Address forms.Address `json:"endereco"`
}

// UpdatePayload omits the locked CPF and email fields entirely.
type UpdatePayload struct {
	ID      int64         `json:"id"`
	Name    string        `json:"nome"`
	Phone   string        `json:"telefone"`
	Address forms.Address `json:"endereco"`
}

var formFields = []string{
	"nome", "cpf", "email", "telefone",
	"cep", "logradouro", "bairro", "numero", "complemento", "cidade", "uf",
}

var requiredOnCreate = []string{
	"nome", "cpf", "email", "telefone",
	"logradouro", "bairro", "cidade", "uf", "cep",
}

var lockedOnEdit = []string{"cpf", "email"}

var requiredOnEdit = []string{
	"nome", "telefone", "logradouro", "bairro", "cidade", "uf", "cep",
}

// Flatten projects a fetched patient into flat form state.
func Flatten(p *Patient) forms.FormState {
	fs := forms.FormState{
		"nome":     p.Name,
		"cpf":      p.CPF,
		"email":    p.Email,
		"telefone": p.Phone,
	}
	return forms.FlattenAddress(fs, p.Address)
}

func shapePayload(mode forms.Mode, id int64, fs forms.FormState) (any, forms.Errors) {
	scalars, addr := forms.SplitAddress(fs)
	if mode == forms.ModeEdit {
		return UpdatePayload{
			ID:      id,
			Name:    scalars["nome"],
			Phone:   scalars["telefone"],
			Address: addr,
		}, nil
	}
	return CreatePayload{
		Name:    scalars["nome"],
		CPF:     scalars["cpf"],
		Email:   scalars["email"],
		Phone:   scalars["telefone"],
		Address: addr,
	}, nil
}

// FormConfig describes the patient form.
func FormConfig() forms.Config {
	return forms.Config{
		Fields:         formFields,
		Required:       requiredOnCreate,
		RequiredOnEdit: requiredOnEdit,
		LockedOnEdit:   lockedOnEdit,
		Shape:          shapePayload,
	}
}

// ListConfig describes search and sectioning for the patient list:
// matched on name or CPF, grouped by first letter ascending.
func ListConfig() listview.Config[Patient] {
	return listview.Config[Patient]{
		SearchFields: func(p Patient) []string { return []string{p.Name, p.CPF} },
		SectionKey:   func(p Patient) string { return listview.NameKey(p.Name) },
	}
}

// NewRepository builds the patient repository.
func NewRepository(client *clinicapi.Client, resource string, pageSize int, logger *logging.Logger) *repository.Repository[Patient] {
	if resource == "" {
		resource = DefaultResource
	}
	return repository.New[Patient](client, resource, pageSize, listSort, logger)
}
