package dashboard

import (
	"context"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/filter"
	"github.com/unclebandit/audience-crm/internal/listview"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/service"
)

const (
	FilterSearch = "search"
	FilterStatus = "status"
)

// audience status filter values
const (
	AudiencesActive   = "activas"
	AudiencesArchived = "archivadas"
	AudiencesAll      = "todas"
)

var audienceStatusByFilter = map[string]string{
	AudiencesActive:   model.AudienceActive,
	AudiencesArchived: model.AudienceArchived,
}

// AudiencesView is the audience list screen.
type AudiencesView struct {
	filterable
	svc  *service.AudienceService
	list *listview.View[model.Audience]
}

func newAudiencesView(svc *service.AudienceService) *AudiencesView {
	v := &AudiencesView{svc: svc}
	v.filters = filter.NewSet(
		filter.Descriptor{ID: FilterSearch, Label: "Buscar", Kind: filter.Text, Pinned: true},
		filter.Descriptor{ID: FilterStatus, Label: "Estado", Kind: filter.Select, Pinned: true,
			Default: AudiencesActive, All: AudiencesAll,
			Options: []filter.Option{
				{Value: AudiencesActive, Label: "Activas"},
				{Value: AudiencesArchived, Label: "Archivadas"},
				{Value: AudiencesAll, Label: "Todas"},
			}},
	)
	v.list = listview.New(nil, v.match)
	return v
}

func (v *AudiencesView) match(a model.Audience) bool {
	if !filter.MatchText(v.filters.Text(FilterSearch), a.Name) {
		return false
	}
	status := v.filters.Selected(FilterStatus)
	return status == "" || audienceStatusByFilter[status] == a.Status
}

func (v *AudiencesView) refresh(ctx context.Context) error {
	items, err := v.svc.List(ctx)
	if err != nil {
		return err
	}
	v.list.Reset(items)
	return nil
}

type AudiencesState struct {
	Filters    Filters          `json:"filters"`
	Items      []model.Audience `json:"items"`
	Total      int              `json:"total"`
	SelectedID string           `json:"selected_id,omitempty"`
}

func (v *AudiencesView) State(ctx context.Context) (AudiencesState, error) {
	if err := v.refresh(ctx); err != nil {
		return AudiencesState{}, err
	}
	return AudiencesState{
		Filters:    v.filterState(),
		Items:      v.list.Filtered(),
		Total:      v.list.Len(),
		SelectedID: v.list.SelectedID(),
	}, nil
}

// Select toggles the side panel for an audience.
func (v *AudiencesView) Select(ctx context.Context, id string) (bool, error) {
	if err := v.refresh(ctx); err != nil {
		return false, err
	}
	selected, found := v.list.Select(id)
	if !found {
		return false, appErrors.NewNotFound("audience", id)
	}
	return selected, nil
}

// AudiencePanel is the side panel of the selected audience.
type AudiencePanel struct {
	Audience  model.Audience    `json:"audience"`
	Breakdown service.Breakdown `json:"breakdown"`
	Members   []model.Contact   `json:"members"`
}

// Panel returns nil when no audience is selected.
func (v *AudiencesView) Panel(ctx context.Context) (*AudiencePanel, error) {
	if err := v.refresh(ctx); err != nil {
		return nil, err
	}
	a, ok := v.list.Selected()
	if !ok {
		return nil, nil
	}
	members, err := v.svc.Members(ctx, a)
	if err != nil {
		return nil, err
	}
	return &AudiencePanel{Audience: a, Breakdown: service.BreakdownOf(members), Members: members}, nil
}

func (v *AudiencesView) Delete(ctx context.Context, id string) (model.Notice, error) {
	notice, err := v.svc.DeleteAudience(ctx, id)
	if err != nil {
		return model.Notice{}, err
	}
	v.list.Delete(id)
	return notice, nil
}

// SaveMembers stores the manual editor's contact list.
func (v *AudiencesView) SaveMembers(ctx context.Context, id string, contactIDs []string) (*model.Audience, model.Notice, error) {
	a, notice, err := v.svc.UpdateMembers(ctx, id, contactIDs)
	if err != nil {
		return nil, model.Notice{}, err
	}
	v.list.Replace(*a)
	return a, notice, nil
}
