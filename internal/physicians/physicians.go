// Package physicians defines the physician entity and its form and list
// behavior. Specialty, CRM and email are immutable once the record is
// persisted.
package physicians

import (
	"github.com/medpro/clinicapp/internal/clinicapi"
	"github.com/medpro/clinicapp/internal/forms"
	"github.com/medpro/clinicapp/internal/listview"
	"github.com/medpro/clinicapp/internal/repository"
	"github.com/medpro/clinicapp/pkg/logging"
)

// DefaultResource is the backend collection path.
const DefaultResource = "/medicos"

const listSort = "nome,asc"

// Physician is the entity as the backend serves it. List responses omit
// the address; only the detail endpoint includes it.
type Physician struct {
	ID        int64          `json:"id,omitempty"`
	Name      string         `json:"nome"`
	Specialty string         `json:"especialidade,omitempty"`
	CRM       string         `json:"crm,omitempty"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"telefone,omitempty"`
	Address   *forms.Address `json:"endereco,omitempty"`
}

// CreatePayload includes every field, locked ones included.
type CreatePayload struct {
	Name      string        `json:"nome"`
	Specialty string        `json:"especialidade"`
	CRM       string        `json:"crm"`
	Email     string        `json:"email"`
	Phone     string        `json:"telefone"`
	Address   forms.Address `json:"endereco"`
}

// UpdatePayload carries only the identifier, the mutable scalars and the
// address. The backend's update contract rejects the locked fields, so
// they are omitted entirely.
type UpdatePayload struct {
	ID      int64         `json:"id"`
	Name    string        `json:"nome"`
	Phone   string        `json:"telefone"`
	Address forms.Address `json:"endereco"`
}

var formFields = []string{
	"nome", "especialidade", "crm", "email", "telefone",
	"cep", "logradouro", "bairro", "numero", "complemento", "cidade", "uf",
}

var requiredOnCreate = []string{
	"nome", "especialidade", "crm", "email", "telefone",
	"logradouro", "bairro", "cidade", "uf", "cep",
}

var lockedOnEdit = []string{"especialidade", "crm", "email"}

var requiredOnEdit = []string{
	"nome", "telefone", "logradouro", "bairro", "cidade", "uf", "cep",
}

// Flatten projects a fetched physician into flat form state.
func Flatten(p *Physician) forms.FormState {
	fs := forms.FormState{
		"nome":          p.Name,
		"especialidade": p.Specialty,
		"crm":           p.CRM,
		"email":         p.Email,
		"telefone":      p.Phone,
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
		Name:      scalars["nome"],
		Specialty: scalars["especialidade"],
		CRM:       scalars["crm"],
		Email:     scalars["email"],
		Phone:     scalars["telefone"],
		Address:   addr,
	}, nil
}

// FormConfig describes the physician form.
func FormConfig() forms.Config {
	return forms.Config{
		Fields:         formFields,
		Required:       requiredOnCreate,
		RequiredOnEdit: requiredOnEdit,
		LockedOnEdit:   lockedOnEdit,
		Shape:          shapePayload,
	}
}

// ListConfig describes search and sectioning for the physician list:
// matched on name or specialty, grouped by first letter ascending.
func ListConfig() listview.Config[Physician] {
	return listview.Config[Physician]{
		SearchFields: func(p Physician) []string { return []string{p.Name, p.Specialty} },
		SectionKey:   func(p Physician) string { return listview.NameKey(p.Name) },
	}
}

// NewRepository builds the physician repository.
func NewRepository(client *clinicapi.Client, resource string, pageSize int, logger *logging.Logger) *repository.Repository[Physician] {
	if resource == "" {
		resource = DefaultResource
	}
	return repository.New[Physician](client, resource, pageSize, listSort, logger)
}
