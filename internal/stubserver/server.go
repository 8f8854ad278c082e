// Package stubserver is an in-memory clinic backend implementing the wire
// contract the app consumes: paged listings with a content envelope, PUT
// at the collection root, soft deletes, Bean Validation style error
// bodies. It backs local development and the end-to-end tests.
package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medpro/clinicapp/internal/appointments"
	"github.com/medpro/clinicapp/internal/forms"
	"github.com/medpro/clinicapp/internal/patients"
	"github.com/medpro/clinicapp/internal/physicians"
	"github.com/medpro/clinicapp/pkg/logging"
)

type fieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

type physicianRecord struct {
	physicians.Physician
	active bool
}

type patientRecord struct {
	patients.Patient
	active bool
}

type appointmentRecord struct {
	appointments.Appointment
	cancelReason string
}

// Server holds the in-memory clinic state.
type Server struct {
	logger *logging.Logger

	mu           sync.Mutex
	nextID       int64
	physicians   map[int64]*physicianRecord
	patients     map[int64]*patientRecord
	appointments map[int64]*appointmentRecord
}

// New creates an empty stub backend.
func New(logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{
		logger:       logger.Component("stubserver"),
		nextID:       1,
		physicians:   map[int64]*physicianRecord{},
		patients:     map[int64]*patientRecord{},
		appointments: map[int64]*appointmentRecord{},
	}
}

// Router mounts the REST contract.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/medicos", func(r chi.Router) {
		r.Get("/", s.listPhysicians)
		r.Post("/", s.createPhysician)
		r.Put("/", s.updatePhysician)
		r.Get("/{id}", s.getPhysician)
		r.Delete("/{id}", s.deletePhysician)
	})
	r.Route("/pacientes", func(r chi.Router) {
		r.Get("/", s.listPatients)
		r.Post("/", s.createPatient)
		r.Put("/", s.updatePatient)
		r.Get("/{id}", s.getPatient)
		r.Delete("/{id}", s.deletePatient)
	})
	r.Route("/consultas", func(r chi.Router) {
		r.Get("/", s.listAppointments)
		r.Post("/", s.createAppointment)
		r.Delete("/{id}", s.cancelAppointment)
	})
	return r
}

func (s *Server) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// --- physicians ---

var physicianRequired = []string{
	"nome", "especialidade", "crm", "email", "telefone",
}

var physicianLocked = []string{"especialidade", "crm", "email"}

func (s *Server) listPhysicians(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]physicians.Physician, 0, len(s.physicians))
	for _, rec := range s.physicians {
		if !rec.active {
			continue
		}
		summary := rec.Physician
		summary.Address = nil // list endpoint omits the address
		list = append(list, summary)
	}
	s.mu.Unlock()

	desc := strings.HasSuffix(r.URL.Query().Get("sort"), ",desc")
	sort.Slice(list, func(i, j int) bool {
		if desc {
			return list[i].Name > list[j].Name
		}
		return list[i].Name < list[j].Name
	})
	writeJSON(w, http.StatusOK, map[string]any{"content": truncate(list, pageSize(r))})
}

func (s *Server) getPhysician(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	rec, ok := s.physicians[id]
	s.mu.Unlock()
	if !ok || !rec.active {
		writeMessage(w, http.StatusNotFound, "Médico não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, rec.Physician)
}

func (s *Server) createPhysician(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if errs := requireFields(body, physicianRequired); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	p := physicians.Physician{
		Name:      str(body, "nome"),
		Specialty: str(body, "especialidade"),
		CRM:       str(body, "crm"),
		Email:     str(body, "email"),
		Phone:     str(body, "telefone"),
		Address:   decodeAddress(body),
	}
	s.mu.Lock()
	p.ID = s.allocID()
	s.physicians[p.ID] = &physicianRecord{Physician: p, active: true}
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePhysician(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if errs := rejectLocked(body, physicianLocked); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	id := int64(num(body, "id"))
	s.mu.Lock()
	rec, found := s.physicians[id]
	if !found || !rec.active {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Médico não encontrado")
		return
	}
	rec.Name = str(body, "nome")
	rec.Phone = str(body, "telefone")
	if addr := decodeAddress(body); addr != nil {
		rec.Address = addr
	}
	updated := rec.Physician
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePhysician(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	rec, ok := s.physicians[id]
	if ok {
		rec.active = false // soft delete
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Médico não encontrado")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- patients ---

var patientRequired = []string{"nome", "cpf", "email", "telefone"}

var patientLocked = []string{"cpf", "email"}

func (s *Server) listPatients(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]patients.Patient, 0, len(s.patients))
	for _, rec := range s.patients {
		if !rec.active {
			continue
		}
		summary := rec.Patient
		summary.Address = nil
		list = append(list, summary)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"content": truncate(list, pageSize(r))})
}

func (s *Server) getPatient(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	rec, ok := s.patients[id]
	s.mu.Unlock()
	if !ok || !rec.active {
		writeMessage(w, http.StatusNotFound, "Paciente não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, rec.Patient)
}

func (s *Server) createPatient(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if errs := requireFields(body, patientRequired); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	if addr := decodeAddress(body); addr == nil || addr.Bairro == "" {
		writeJSON(w, http.StatusBadRequest, []fieldError{{Campo: "endereco.bairro", Mensagem: "não pode estar em branco"}})
		return
	}

	p := patients.Patient{
		Name:    str(body, "nome"),
		CPF:     str(body, "cpf"),
		Email:   str(body, "email"),
		Phone:   str(body, "telefone"),
		Address: decodeAddress(body),
	}
	s.mu.Lock()
	p.ID = s.allocID()
	s.patients[p.ID] = &patientRecord{Patient: p, active: true}
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePatient(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if errs := rejectLocked(body, patientLocked); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	id := int64(num(body, "id"))
	s.mu.Lock()
	rec, found := s.patients[id]
	if !found || !rec.active {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Paciente não encontrado")
		return
	}
	rec.Name = str(body, "nome")
	rec.Phone = str(body, "telefone")
	if addr := decodeAddress(body); addr != nil {
		rec.Address = addr
	}
	updated := rec.Patient
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePatient(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	rec, ok := s.patients[id]
	if ok {
		rec.active = false
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Paciente não encontrado")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- appointments ---

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]appointments.Appointment, 0, len(s.appointments))
	for _, rec := range s.appointments {
		list = append(list, rec.Appointment)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].DateTime > list[j].DateTime })
	writeJSON(w, http.StatusOK, map[string]any{"content": truncate(list, pageSize(r))})
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	pacienteID := int64(num(body, "pacienteId"))
	dataHora := str(body, "dataHora")
	if pacienteID == 0 || dataHora == "" {
		writeMessage(w, http.StatusBadRequest, "Paciente e Data/Hora são obrigatórios")
		return
	}

	_, hasMedico := body["medicoId"]
	_, hasEspecialidade := body["especialidade"]
	if hasMedico && hasEspecialidade {
		writeMessage(w, http.StatusBadRequest, "Informe apenas o médico ou a especialidade")
		return
	}
	if !hasMedico && !hasEspecialidade {
		writeMessage(w, http.StatusBadRequest, "Informe o médico ou a especialidade")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patient, found := s.patients[pacienteID]
	if !found || !patient.active {
		writeMessage(w, http.StatusBadRequest, "Paciente não encontrado")
		return
	}

	var physician *physicianRecord
	if hasMedico {
		rec, ok := s.physicians[int64(num(body, "medicoId"))]
		if !ok || !rec.active {
			writeMessage(w, http.StatusBadRequest, "Médico não encontrado")
			return
		}
		physician = rec
	} else {
		specialty := str(body, "especialidade")
		for _, rec := range s.physicians {
			if rec.active && rec.Specialty == specialty {
				physician = rec
				break
			}
		}
		if physician == nil {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Nenhum médico disponível para %s", specialty))
			return
		}
	}

	appt := appointments.Appointment{
		ID:            s.allocID(),
		PhysicianName: physician.Name,
		PatientName:   patient.Name,
		DateTime:      dataHora,
		Reason:        str(body, "motivoConsulta"),
		Status:        appointments.StatusScheduled,
	}
	s.appointments[appt.ID] = &appointmentRecord{Appointment: appt}
	writeJSON(w, http.StatusCreated, appt)
}

func (s *Server) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	rec, found := s.appointments[id]
	if found {
		rec.Status = appointments.StatusCancelled
		rec.cancelReason = str(body, "motivoCancelamento")
	}
	s.mu.Unlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "Consulta não encontrada")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return nil, false
	}
	return body, true
}

func decodeAddress(body map[string]any) *forms.Address {
	raw, ok := body["endereco"].(map[string]any)
	if !ok {
		return nil
	}
	get := func(key string) string {
		v, _ := raw[key].(string)
		return v
	}
	return &forms.Address{
		Logradouro:  get("logradouro"),
		Bairro:      get("bairro"),
		Numero:      get("numero"),
		Complemento: get("complemento"),
		Cidade:      get("cidade"),
		UF:          get("uf"),
		CEP:         get("cep"),
	}
}

func requireFields(body map[string]any, required []string) []fieldError {
	var errs []fieldError
	for _, field := range required {
		if strings.TrimSpace(str(body, field)) == "" {
			errs = append(errs, fieldError{Campo: field, Mensagem: "não pode estar em branco"})
		}
	}
	return errs
}

func rejectLocked(body map[string]any, locked []string) []fieldError {
	var errs []fieldError
	for _, field := range locked {
		if _, present := body[field]; present {
			errs = append(errs, fieldError{Campo: field, Mensagem: "não pode ser alterado"})
		}
	}
	return errs
}

func str(body map[string]any, key string) string {
	v, _ := body[key].(string)
	return v
}

func num(body map[string]any, key string) float64 {
	v, _ := body[key].(float64)
	return v
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func pageSize(r *http.Request) int {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		return 100
	}
	return size
}

func truncate[T any](list []T, size int) []T {
	if len(list) > size {
		return list[:size]
	}
	return list
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
