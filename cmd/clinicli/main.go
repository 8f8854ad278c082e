// clinicli is a terminal front end over the clinic API: sectioned entity
// listings with search, create/edit forms with field locks, and
// appointment scheduling/cancellation.
//
// Examples:
//
//	clinicli -entity medicos -op list -search ana
//	clinicli -entity medicos -op create -set nome="Ana Silva" -set crm=123456 ...
//	clinicli -entity medicos -op update -id 3 -set telefone="(11) 99999-0000"
//	clinicli -entity consultas -op cancel -id 7 -reason "Paciente desistiu"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/medpro/clinicapp/internal/appointments"
	"github.com/medpro/clinicapp/internal/clinicapi"
	"github.com/medpro/clinicapp/internal/config"
	"github.com/medpro/clinicapp/internal/forms"
	"github.com/medpro/clinicapp/internal/listview"
	"github.com/medpro/clinicapp/internal/observability/metrics"
	"github.com/medpro/clinicapp/internal/patients"
	"github.com/medpro/clinicapp/internal/physicians"
	"github.com/medpro/clinicapp/internal/session"
	"github.com/medpro/clinicapp/pkg/logging"
)

type setFlags map[string]string

func (s setFlags) String() string { return "" }

func (s setFlags) Set(value string) error {
	k, v, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("use -set campo=valor, got %q", value)
	}
	s[k] = v
	return nil
}

func main() {
	var (
		entity = flag.String("entity", "medicos", "medicos | pacientes | consultas")
		op     = flag.String("op", "list", "list | get | create | update | delete | cancel")
		search = flag.String("search", "", "filter the listing")
		id     = flag.Int64("id", 0, "entity id for get/update/delete/cancel")
		reason = flag.String("reason", "", "cancellation reason (consultas)")
		fields = setFlags{}
	)
	flag.Var(fields, "set", "form field, repeatable: -set nome=Ana")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	client, err := clinicapi.New(clinicapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
		Metrics: metrics.NewAPIMetrics(nil),
	})
	if err != nil {
		fatal(err.Error())
	}

	ctx := context.Background()
	switch *entity {
	case "medicos":
		runEntity(ctx, entityFlow[physicians.Physician]{
			repo:       physicians.NewRepository(client, cfg.PhysiciansResource, cfg.PageSize, logger),
			form:       physicians.FormConfig(),
			list:       physicians.ListConfig(),
			flatten:    func(p *physicians.Physician) forms.FormState { return physicians.Flatten(p) },
			renderItem: func(p physicians.Physician) string { return fmt.Sprintf("#%d %s — %s", p.ID, p.Name, p.Specialty) },
			logger:     logger,
		}, *op, *search, *id, fields)
	case "pacientes":
		runEntity(ctx, entityFlow[patients.Patient]{
			repo:       patients.NewRepository(client, cfg.PatientsResource, cfg.PageSize, logger),
			form:       patients.FormConfig(),
			list:       patients.ListConfig(),
			flatten:    func(p *patients.Patient) forms.FormState { return patients.Flatten(p) },
			renderItem: func(p patients.Patient) string { return fmt.Sprintf("#%d %s — CPF %s", p.ID, p.Name, p.CPF) },
			logger:     logger,
		}, *op, *search, *id, fields)
	case "consultas":
		runAppointments(ctx, client, cfg, logger, *op, *search, *id, *reason, fields)
	default:
		fatal("unknown entity: " + *entity)
	}
}

type entityFlow[T any] struct {
	repo interface {
		List(context.Context) ([]T, error)
		Get(context.Context, int64) (*T, error)
		Create(context.Context, any) (*T, error)
		Update(context.Context, any) (*T, error)
		Delete(context.Context, int64) error
	}
	form       forms.Config
	list       listview.Config[T]
	flatten    func(*T) forms.FormState
	renderItem func(T) string
	logger     *logging.Logger
}

func runEntity[T any](ctx context.Context, flow entityFlow[T], op, search string, id int64, fields setFlags) {
	switch op {
	case "list":
		screen := session.NewListScreen(flow.repo.List, flow.logger)
		if err := screen.OnFocus(ctx); err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		printSections(listview.Project(screen.Items(), search, flow.list), flow.renderItem, false)
	case "get":
		item, err := flow.repo.Get(ctx, id)
		if err != nil {
			// Detail fetch failed: report and return to the list.
			fatal(clinicapi.UserMessage(err))
		}
		fmt.Println(flow.renderItem(*item))
	case "create":
		ctrl := forms.NewController(flow.form, 0, nil)
		applyFields(ctrl, fields)
		payload := submitOrDie(ctrl)
		created, err := flow.repo.Create(ctx, payload)
		if err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		fmt.Println("Criado:", flow.renderItem(*created))
	case "update":
		existing, err := flow.repo.Get(ctx, id)
		if err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		ctrl := forms.NewController(flow.form, id, flow.flatten(existing))
		applyFields(ctrl, fields)
		payload := submitOrDie(ctrl)
		updated, err := flow.repo.Update(ctx, payload)
		if err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		fmt.Println("Atualizado:", flow.renderItem(*updated))
	case "delete":
		if err := flow.repo.Delete(ctx, id); err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		fmt.Println("Inativado com sucesso.")
	default:
		fatal("unknown op: " + op)
	}
}

func runAppointments(ctx context.Context, client *clinicapi.Client, cfg *config.Config, logger *logging.Logger, op, search string, id int64, reason string, fields setFlags) {
	repo := appointments.NewRepository(client, cfg.AppointmentsResource, cfg.PageSize, logger)
	render := func(a appointments.Appointment) string {
		status := ""
		if a.Cancelled() {
			status = " [CANCELADA]"
		}
		return fmt.Sprintf("#%d %s — %s (paciente: %s)%s", a.ID, hourOf(a.DateTime), a.PhysicianName, a.PatientName, status)
	}

	switch op {
	case "list":
		screen := session.NewListScreen(repo.List, logger)
		if err := screen.OnFocus(ctx); err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		printSections(listview.Project(screen.Items(), search, appointments.ListConfig()), render, true)
	case "create":
		ctrl := forms.NewController(appointments.FormConfig(), 0, nil)
		applyFields(ctrl, fields)
		payload := submitOrDie(ctrl)
		created, err := repo.Create(ctx, payload)
		if err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		fmt.Println("Consulta agendada:", render(*created))
	case "cancel":
		if err := repo.Cancel(ctx, id, reason); err != nil {
			fatal(clinicapi.UserMessage(err))
		}
		fmt.Println("Consulta cancelada.")
	default:
		fatal("unknown op: " + op)
	}
}

func applyFields(ctrl *forms.Controller, fields setFlags) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ctrl.SetField(k, fields[k])
	}
}

// submitOrDie validates and shapes the form, printing one aggregate
// failure notice listing every field error.
func submitOrDie(ctrl *forms.Controller) any {
	payload, errs := ctrl.Submit()
	if len(errs) > 0 {
		keys := make([]string, 0, len(errs))
		for k := range errs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("Por favor, corrija os campos:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, errs[k])
		}
		fatal(b.String())
	}
	return payload
}

func printSections[T any](sections []listview.Section[T], render func(T) string, dateTitles bool) {
	if len(sections) == 0 {
		fmt.Println("Nenhum registro encontrado.")
		return
	}
	for _, sec := range sections {
		title := sec.Title
		if dateTitles {
			title = listview.FormatDateTitle(title)
		}
		fmt.Println(title)
		for _, item := range sec.Items {
			fmt.Println("  " + render(item))
		}
	}
}

func hourOf(dateTime string) string {
	if _, rest, ok := strings.Cut(dateTime, "T"); ok && len(rest) >= 5 {
		return rest[:5]
	}
	return "--:--"
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
