package dashboard

import (
	"context"
	"slices"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/filter"
	"github.com/unclebandit/audience-crm/internal/listview"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/service"
)

const (
	FilterTags = "tags"

	ContactsAll = "todos"
)

// NoContactsSelected is the side panel text while nothing is checked.
const NoContactsSelected = "Selecciona uno o más contactos para ver sus detalles"

// ContactsView is the contact list with checkbox selection.
type ContactsView struct {
	filterable
	svc       *service.ContactService
	audiences *service.AudienceService
	list      *listview.View[model.Contact]
}

func newContactsView(svc *service.ContactService, audiences *service.AudienceService) *ContactsView {
	v := &ContactsView{svc: svc, audiences: audiences}
	descriptors := []filter.Descriptor{
		{ID: FilterSearch, Label: "Buscar", Kind: filter.Text, Pinned: true},
		{ID: FilterAudience, Label: "Audiencia", Kind: filter.MultiSelect},
	}
	descriptors = append(descriptors, segmentDescriptors()...)
	descriptors = append(descriptors,
		filter.Descriptor{ID: FilterStatus, Label: "Estado", Kind: filter.Select,
			Default: ContactsAll, All: ContactsAll,
			Options: []filter.Option{
				{Value: ContactsAll, Label: "Todos"},
				{Value: model.ContactActive, Label: model.ContactActive},
				{Value: model.ContactInactive, Label: model.ContactInactive},
			}},
		filter.Descriptor{ID: FilterTags, Label: "Etiquetas", Kind: filter.MultiSelect},
	)
	v.filters = filter.NewSet(descriptors...)
	v.list = listview.New(nil, v.match)
	return v
}

func (v *ContactsView) match(c model.Contact) bool {
	return filter.MatchText(v.filters.Text(FilterSearch), c.Name, c.Phone, c.ID) &&
		filter.MatchAnyOf(v.filters.Options(FilterAudience), c.Audiences) &&
		filter.MatchOneOf(v.filters.Options(FilterAge), c.AgeRange()) &&
		filter.MatchOneOf(v.filters.Options(FilterProperties), c.PropertyRange()) &&
		filter.MatchOneOf(v.filters.Options(FilterNeighborhood), c.Neighborhood) &&
		filter.MatchEquals(v.filters.Selected(FilterStatus), c.Status) &&
		filter.MatchAnyOf(v.filters.Options(FilterTags), c.Tags)
}

func (v *ContactsView) refresh(ctx context.Context) error {
	items, err := v.svc.List(ctx)
	if err != nil {
		return err
	}
	v.list.Reset(items)
	return nil
}

type ContactsState struct {
	Filters    Filters         `json:"filters"`
	Items      []model.Contact `json:"items"`
	Total      int             `json:"total"`
	CheckedIDs []string        `json:"checked_ids"`
	AllChecked bool            `json:"all_checked"`
	// option lists for the audience and tag filters
	Audiences []string `json:"audiences"`
	Tags      []string `json:"tags"`
}

func (v *ContactsView) State(ctx context.Context) (ContactsState, error) {
	if err := v.refresh(ctx); err != nil {
		return ContactsState{}, err
	}
	audiences, err := v.audiences.List(ctx)
	if err != nil {
		return ContactsState{}, err
	}
	items := v.list.Filtered()
	st := ContactsState{
		Filters:    v.filterState(),
		Items:      items,
		Total:      v.list.Len(),
		CheckedIDs: []string{},
		AllChecked: len(items) > 0,
		Audiences:  []string{},
		Tags:       []string{},
	}
	for _, c := range v.list.Checked() {
		st.CheckedIDs = append(st.CheckedIDs, c.ID)
	}
	for _, c := range items {
		if !v.list.IsChecked(c.ID) {
			st.AllChecked = false
		}
	}
	for _, a := range audiences {
		st.Audiences = append(st.Audiences, a.Name)
	}
	for _, c := range v.list.Items() {
		for _, t := range c.Tags {
			if !slices.Contains(st.Tags, t) {
				st.Tags = append(st.Tags, t)
			}
		}
	}
	slices.Sort(st.Tags)
	return st, nil
}

// Check sets the checkbox of one contact.
func (v *ContactsView) Check(ctx context.Context, id string, checked bool) error {
	if err := v.refresh(ctx); err != nil {
		return err
	}
	if !checked {
		v.list.Uncheck(id)
		return nil
	}
	if !v.list.Check(id) {
		return appErrors.NewNotFound("contact", id)
	}
	return nil
}

// CheckAll checks every visible contact, or clears the checks.
func (v *ContactsView) CheckAll(ctx context.Context, all bool) error {
	if err := v.refresh(ctx); err != nil {
		return err
	}
	v.list.CheckAll(all)
	return nil
}

// ContactsPanel summarizes the checked contacts.
type ContactsPanel struct {
	Contacts  []model.Contact    `json:"contacts"`
	Breakdown *service.Breakdown `json:"breakdown,omitempty"`
	Message   string             `json:"message,omitempty"`
}

func (v *ContactsView) Panel(ctx context.Context) (ContactsPanel, error) {
	if err := v.refresh(ctx); err != nil {
		return ContactsPanel{}, err
	}
	checked := v.list.Checked()
	if len(checked) == 0 {
		return ContactsPanel{Contacts: []model.Contact{}, Message: NoContactsSelected}, nil
	}
	b := service.BreakdownOf(checked)
	return ContactsPanel{Contacts: checked, Breakdown: &b}, nil
}

func (v *ContactsView) Create(ctx context.Context, c model.Contact) (*model.Contact, model.Notice, error) {
	created, notice, err := v.svc.CreateContact(ctx, c)
	if err != nil {
		return nil, notice, err
	}
	v.list.Append(*created)
	return created, notice, nil
}

func (v *ContactsView) Delete(ctx context.Context, id string) (model.Notice, error) {
	notice, err := v.svc.DeleteContact(ctx, id)
	if err != nil {
		return model.Notice{}, err
	}
	v.list.Delete(id)
	return notice, nil
}
