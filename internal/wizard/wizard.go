// Package wizard implements the four-step campaign creation flow.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
)

type Step int

const (
	StepAudience Step = iota + 1
	StepTemplate
	StepVariables
	StepScheduling
)

var stepTitles = map[Step]string{
	StepAudience:   "Paso 1: Seleccionar audiencia",
	StepTemplate:   "Paso 2: Elegir plantilla",
	StepVariables:  "Paso 3: Variables dinámicas",
	StepScheduling: "Paso 4: Detalles y programación",
}

func (s Step) String() string {
	return stepTitles[s]
}

// fields each step requires before Next may advance.
var stepFields = map[Step][]string{
	StepAudience:   {"AudienceID"},
	StepTemplate:   {"TemplateID"},
	StepVariables:  {"Variables"},
	StepScheduling: {"Name", "ScheduledDate"},
}

var fieldMessages = map[string]string{
	"AudienceID":    "Por favor selecciona una audiencia",
	"TemplateID":    "Por favor selecciona una plantilla",
	"Variables":     "Por favor asigna un campo a cada variable",
	"Name":          "Por favor ingresa un nombre para la campaña",
	"ScheduledDate": "Por favor programa una fecha y hora",
}

type Timezone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Offset int    `json:"-"`
}

var Timezones = []Timezone{
	{ID: "europe-madrid", Label: "Europa/Madrid (GMT+1)", Offset: 1},
	{ID: "america-bogota", Label: "América/Bogotá (GMT-5)", Offset: -5},
	{ID: "america-mexico", Label: "América/México (GMT-6)", Offset: -6},
}

const DefaultTimezone = "europe-madrid"

// Location resolves a timezone id; unknown ids fall back to UTC.
func Location(id string) *time.Location {
	for _, tz := range Timezones {
		if tz.ID == id {
			return time.FixedZone(tz.Label, tz.Offset*3600)
		}
	}
	return time.UTC
}

// Draft is what the wizard has collected so far.
type Draft struct {
	AudienceID    string            `json:"audience_id" validate:"required"`
	TemplateID    string            `json:"template_id" validate:"required"`
	Variables     map[string]string `json:"variables" validate:"dive,required"`
	Name          string            `json:"name" validate:"required"`
	ScheduledDate string            `json:"scheduled_date" validate:"required"`
	Timezone      string            `json:"timezone"`
}

// Submission is handed to the create callback when step four completes.
type Submission struct {
	Name          string
	AudienceID    string
	TemplateID    string
	Variables     map[string]string
	ScheduledDate time.Time
}

type CreateFunc func(context.Context, Submission) error

var validate = validator.New()

// Wizard is not safe for concurrent use.
type Wizard struct {
	step      Step
	open      bool
	draft     Draft
	audiences []model.Audience
	onCreate  CreateFunc
}

func New(audiences []model.Audience, onCreate CreateFunc) *Wizard {
	w := &Wizard{audiences: audiences, onCreate: onCreate}
	w.reset()
	return w
}

func (w *Wizard) reset() {
	w.step = StepAudience
	w.draft = Draft{Variables: map[string]string{}, Timezone: DefaultTimezone}
}

// SetAudiences refreshes the audiences step one offers.
func (w *Wizard) SetAudiences(audiences []model.Audience) {
	w.audiences = audiences
}

func (w *Wizard) Open() { w.open = true }
func (w *Wizard) IsOpen() bool { return w.open }
func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Draft() Draft {
	d := w.draft
	d.Variables = maps.Clone(w.draft.Variables)
	return d
}

func (w *Wizard) SetAudience(id string) {
	w.draft.AudienceID = id
}

// SetTemplate selects a template and rebinds its variables to the default fields.
func (w *Wizard) SetTemplate(id string) {
	w.draft.TemplateID = id
	w.draft.Variables = map[string]string{}
	if t, ok := model.FindTemplate(id); ok {
		for _, v := range t.Variables() {
			w.draft.Variables[v] = model.DefaultVariableBindings[v]
		}
	}
}

func (w *Wizard) BindVariable(name, field string) error {
	if _, ok := w.draft.Variables[name]; !ok {
		return appErrors.NewValidation("Variables", fmt.Sprintf("la plantilla no usa la variable %q", name))
	}
	w.draft.Variables[name] = field
	return nil
}

func (w *Wizard) SetName(name string) {
	w.draft.Name = name
}

func (w *Wizard) SetSchedule(date, timezone string) {
	w.draft.ScheduledDate = date
	if timezone != "" {
		w.draft.Timezone = timezone
	}
}

// Next validates the current step and advances. On the last step it calls the
// create callback and resets; done reports that a campaign was created.
func (w *Wizard) Next(ctx context.Context) (done bool, err error) {
	if err := w.check(w.step); err != nil {
		return false, err
	}
	if w.step < StepScheduling {
		w.step++
		return false, nil
	}

	sub, err := w.submission()
	if err != nil {
		return false, err
	}
	if w.onCreate != nil {
		if err := w.onCreate(ctx, sub); err != nil {
			return false, err
		}
	}
	w.reset()
	w.open = false
	return true, nil
}

// Previous moves back one step without validating.
func (w *Wizard) Previous() {
	if w.step > StepAudience {
		w.step--
	}
}

// Cancel discards the draft and closes the wizard.
func (w *Wizard) Cancel() {
	w.reset()
	w.open = false
}

func (w *Wizard) check(step Step) error {
	if err := validate.StructPartial(w.draft, stepFields[step]...); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].StructField()
			return appErrors.NewValidation(field, fieldMessages[field])
		}
		return err
	}

	switch step {
	case StepAudience:
		if _, ok := w.audience(); !ok {
			return appErrors.NewValidation("AudienceID", "La audiencia seleccionada no existe")
		}
	case StepTemplate:
		if _, ok := model.FindTemplate(w.draft.TemplateID); !ok {
			return appErrors.NewValidation("TemplateID", "La plantilla seleccionada no existe")
		}
	case StepVariables:
		t, _ := model.FindTemplate(w.draft.TemplateID)
		for _, v := range t.Variables() {
			if strings.TrimSpace(w.draft.Variables[v]) == "" {
				return appErrors.NewValidation("Variables", fieldMessages["Variables"])
			}
		}
	case StepScheduling:
		if strings.TrimSpace(w.draft.Name) == "" {
			return appErrors.NewValidation("Name", fieldMessages["Name"])
		}
	}
	return nil
}

var dateLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

func (w *Wizard) submission() (Submission, error) {
	loc := Location(w.draft.Timezone)
	var when time.Time
	var err error
	for _, layout := range dateLayouts {
		when, err = time.ParseInLocation(layout, w.draft.ScheduledDate, loc)
		if err == nil {
			break
		}
	}
	if err != nil {
		return Submission{}, appErrors.NewValidation("ScheduledDate", "La fecha y hora no son válidas")
	}
	return Submission{
		Name:          strings.TrimSpace(w.draft.Name),
		AudienceID:    w.draft.AudienceID,
		TemplateID:    w.draft.TemplateID,
		Variables:     maps.Clone(w.draft.Variables),
		ScheduledDate: when,
	}, nil
}

func (w *Wizard) audience() (model.Audience, bool) {
	for _, a := range w.audiences {
		if a.ID == w.draft.AudienceID {
			return a, true
		}
	}
	return model.Audience{}, false
}

// State is the wizard as the dialog shows it.
type State struct {
	Open      bool                   `json:"open"`
	Step      Step                   `json:"step"`
	Title     string                 `json:"title"`
	Draft     Draft                  `json:"draft"`
	Audiences []model.Audience       `json:"audiences"`
	Summary   *model.AudienceFilters `json:"audience_filters,omitempty"`
	Templates []model.Template       `json:"templates"`
	Preview   string                 `json:"preview,omitempty"`
	Fields    map[string][]string    `json:"variable_fields,omitempty"`
	Timezones []Timezone             `json:"timezones"`
	CanGoBack bool                   `json:"can_go_back"`
	NextLabel string                 `json:"next_label"`
}

func (w *Wizard) State() State {
	st := State{
		Open:      w.open,
		Step:      w.step,
		Title:     w.step.String(),
		Draft:     w.Draft(),
		Audiences: w.audiences,
		Templates: model.Templates,
		Timezones: Timezones,
		CanGoBack: w.step > StepAudience,
		NextLabel: "Siguiente",
	}
	if a, ok := w.audience(); ok && !a.Filters.Empty() {
		st.Summary = a.Filters
	}
	if t, ok := model.FindTemplate(w.draft.TemplateID); ok {
		st.Preview = t.Body
		st.Fields = map[string][]string{}
		for _, v := range t.Variables() {
			st.Fields[v] = model.VariableFields[v]
		}
	}
	if w.step == StepScheduling {
		st.NextLabel = "Confirmar y crear"
	}
	return st
}
