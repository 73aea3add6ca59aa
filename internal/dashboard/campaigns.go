package dashboard

import (
	"context"
	"maps"
	"slices"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/filter"
	"github.com/unclebandit/audience-crm/internal/listview"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/service"
	"github.com/unclebandit/audience-crm/internal/wizard"
)

const (
	FilterAudience = "audience"
	FilterDate     = "date"

	CampaignsAll = "todas"
)

var campaignStatuses = []string{
	model.CampaignScheduled,
	model.CampaignInProgress,
	model.CampaignCompleted,
	model.CampaignSent,
	model.CampaignCanceled,
}

// CampaignsView is the campaign list screen and its creation wizard.
type CampaignsView struct {
	filterable
	svc       *service.CampaignService
	audiences *service.AudienceService
	list      *listview.View[model.Campaign]
	wizard    *wizard.Wizard
	// set by the wizard's create callback
	created *model.Campaign
	notice  model.Notice
}

func newCampaignsView(svc *service.CampaignService, audiences *service.AudienceService) *CampaignsView {
	statusOpts := []filter.Option{{Value: CampaignsAll, Label: "Todas"}}
	for _, s := range campaignStatuses {
		statusOpts = append(statusOpts, filter.Option{Value: s, Label: model.CampaignStatusLabel(s)})
	}
	v := &CampaignsView{svc: svc, audiences: audiences}
	v.filters = filter.NewSet(
		filter.Descriptor{ID: FilterSearch, Label: "Buscar", Kind: filter.Text, Pinned: true},
		filter.Descriptor{ID: FilterStatus, Label: "Estado", Kind: filter.Select, Pinned: true,
			Default: CampaignsAll, All: CampaignsAll, Options: statusOpts},
		filter.Descriptor{ID: FilterAudience, Label: "Audiencia", Kind: filter.Select},
		filter.Descriptor{ID: FilterDate, Label: "Fecha programada", Kind: filter.DateRange},
	)
	v.list = listview.New(nil, v.match)
	v.wizard = wizard.New(nil, v.create)
	return v
}

func (v *CampaignsView) match(c model.Campaign) bool {
	return filter.MatchText(v.filters.Text(FilterSearch), c.Name, c.AudienceName) &&
		filter.MatchEquals(v.filters.Selected(FilterStatus), c.Status) &&
		filter.MatchEquals(v.filters.Selected(FilterAudience), c.AudienceID) &&
		v.filters.Range(FilterDate).Contains(c.ScheduledDate)
}

func (v *CampaignsView) create(ctx context.Context, sub wizard.Submission) error {
	c, notice, err := v.svc.CreateCampaign(ctx, sub)
	if err != nil {
		return err
	}
	v.created, v.notice = c, notice
	v.list.Append(*c)
	return nil
}

func (v *CampaignsView) refresh(ctx context.Context) error {
	items, err := v.svc.List(ctx)
	if err != nil {
		return err
	}
	v.list.Reset(items)
	return nil
}

type CampaignsState struct {
	Filters    Filters                   `json:"filters"`
	Items      []service.CampaignDetails `json:"items"`
	Total      int                       `json:"total"`
	SelectedID string                    `json:"selected_id,omitempty"`
	// Audiences feeds the audience filter options.
	Audiences []filter.Option `json:"audiences"`
	Wizard    *wizard.State   `json:"wizard,omitempty"`
}

func (v *CampaignsView) State(ctx context.Context) (CampaignsState, error) {
	if err := v.refresh(ctx); err != nil {
		return CampaignsState{}, err
	}
	audiences, err := v.audiences.List(ctx)
	if err != nil {
		return CampaignsState{}, err
	}
	st := CampaignsState{
		Filters:    v.filterState(),
		Total:      v.list.Len(),
		SelectedID: v.list.SelectedID(),
		Items:      []service.CampaignDetails{},
		Audiences:  []filter.Option{},
	}
	for _, c := range v.list.Filtered() {
		st.Items = append(st.Items, service.DetailsOf(c))
	}
	for _, a := range audiences {
		st.Audiences = append(st.Audiences, filter.Option{Value: a.ID, Label: a.Name})
	}
	if v.wizard.IsOpen() {
		ws := v.wizard.State()
		st.Wizard = &ws
	}
	return st, nil
}

func (v *CampaignsView) Select(ctx context.Context, id string) (bool, error) {
	if err := v.refresh(ctx); err != nil {
		return false, err
	}
	selected, found := v.list.Select(id)
	if !found {
		return false, appErrors.NewNotFound("campaign", id)
	}
	return selected, nil
}

// Panel returns the selected campaign with its metrics, or nil.
func (v *CampaignsView) Panel(ctx context.Context) (*service.CampaignDetails, error) {
	if err := v.refresh(ctx); err != nil {
		return nil, err
	}
	c, ok := v.list.Selected()
	if !ok {
		return nil, nil
	}
	d := service.DetailsOf(c)
	return &d, nil
}

func (v *CampaignsView) Delete(ctx context.Context, id string) (model.Notice, error) {
	notice, err := v.svc.DeleteCampaign(ctx, id)
	if err != nil {
		return model.Notice{}, err
	}
	v.list.Delete(id)
	return notice, nil
}

func (v *CampaignsView) Duplicate(ctx context.Context, id string) (*model.Campaign, model.Notice, error) {
	c, notice, err := v.svc.DuplicateCampaign(ctx, id)
	if err != nil {
		return nil, model.Notice{}, err
	}
	v.list.Append(*c)
	return c, notice, nil
}

func (v *CampaignsView) Cancel(ctx context.Context, id string) (*model.Campaign, model.Notice, error) {
	c, notice, err := v.svc.CancelCampaign(ctx, id)
	if err != nil {
		return nil, model.Notice{}, err
	}
	v.list.Replace(*c)
	return c, notice, nil
}

// ====================== Wizard ======================

// WizardInput carries the fields the dialog edits. Nil fields are left as
// they are.
type WizardInput struct {
	AudienceID    *string           `json:"audience_id,omitempty"`
	TemplateID    *string           `json:"template_id,omitempty"`
	Variables     map[string]string `json:"variables,omitempty"`
	Name          *string           `json:"name,omitempty"`
	ScheduledDate *string           `json:"scheduled_date,omitempty"`
	Timezone      *string           `json:"timezone,omitempty"`
}

// WizardResult is the wizard after a step change. Campaign is set once the
// last step created one.
type WizardResult struct {
	Wizard   wizard.State    `json:"wizard"`
	Campaign *model.Campaign `json:"campaign,omitempty"`
	Notice   *model.Notice   `json:"notice,omitempty"`
}

func (v *CampaignsView) loadAudiences(ctx context.Context) error {
	audiences, err := v.audiences.List(ctx)
	if err != nil {
		return err
	}
	v.wizard.SetAudiences(slices.DeleteFunc(audiences, func(a model.Audience) bool {
		return a.Status != model.AudienceActive
	}))
	return nil
}

func (v *CampaignsView) OpenWizard(ctx context.Context) (wizard.State, error) {
	if err := v.loadAudiences(ctx); err != nil {
		return wizard.State{}, err
	}
	v.wizard.Open()
	return v.wizard.State(), nil
}

func (v *CampaignsView) WizardState() wizard.State {
	return v.wizard.State()
}

func (v *CampaignsView) requireWizard() error {
	if !v.wizard.IsOpen() {
		return appErrors.NewValidation("wizard", "El asistente de campañas no está abierto")
	}
	return nil
}

func (v *CampaignsView) UpdateWizard(in WizardInput) (wizard.State, error) {
	if err := v.requireWizard(); err != nil {
		return wizard.State{}, err
	}
	if in.AudienceID != nil {
		v.wizard.SetAudience(*in.AudienceID)
	}
	if in.TemplateID != nil {
		v.wizard.SetTemplate(*in.TemplateID)
	}
	for _, name := range slices.Sorted(maps.Keys(in.Variables)) {
		if err := v.wizard.BindVariable(name, in.Variables[name]); err != nil {
			return wizard.State{}, err
		}
	}
	if in.Name != nil {
		v.wizard.SetName(*in.Name)
	}
	if in.ScheduledDate != nil || in.Timezone != nil {
		d := v.wizard.Draft()
		date, tz := d.ScheduledDate, ""
		if in.ScheduledDate != nil {
			date = *in.ScheduledDate
		}
		if in.Timezone != nil {
			tz = *in.Timezone
		}
		v.wizard.SetSchedule(date, tz)
	}
	return v.wizard.State(), nil
}

func (v *CampaignsView) WizardNext(ctx context.Context) (WizardResult, error) {
	if err := v.requireWizard(); err != nil {
		return WizardResult{}, err
	}
	if err := v.loadAudiences(ctx); err != nil {
		return WizardResult{}, err
	}
	v.created = nil
	done, err := v.wizard.Next(ctx)
	if err != nil {
		return WizardResult{}, err
	}
	res := WizardResult{Wizard: v.wizard.State()}
	if done {
		res.Campaign = v.created
		notice := v.notice
		res.Notice = &notice
	}
	return res, nil
}

func (v *CampaignsView) WizardPrevious() (wizard.State, error) {
	if err := v.requireWizard(); err != nil {
		return wizard.State{}, err
	}
	v.wizard.Previous()
	return v.wizard.State(), nil
}

func (v *CampaignsView) CancelWizard() wizard.State {
	v.wizard.Cancel()
	return v.wizard.State()
}
