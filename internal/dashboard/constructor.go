package dashboard

import (
	"context"
	"slices"
	"strings"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/filter"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/service"
)

const (
	FilterAge          = "age"
	FilterProperties   = "properties"
	FilterNeighborhood = "neighborhood"
)

func optionsOf(values []string) []filter.Option {
	opts := make([]filter.Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, filter.Option{Value: v, Label: v})
	}
	return opts
}

func segmentDescriptors() []filter.Descriptor {
	return []filter.Descriptor{
		{ID: FilterAge, Label: "Edad", Kind: filter.MultiSelect, Options: optionsOf(model.AgeRanges)},
		{ID: FilterProperties, Label: "Nº propiedades", Kind: filter.MultiSelect, Options: optionsOf(model.PropertyRanges)},
		{ID: FilterNeighborhood, Label: "Barrio", Kind: filter.MultiSelect, Options: optionsOf(model.Neighborhoods)},
	}
}

// ConstructorView builds a new audience from segmentation criteria.
type ConstructorView struct {
	filterable
	audiences *service.AudienceService
	contacts  *service.ContactService
	name      string
	dirty     bool
	// manual overrides the matched contacts once the editor saved a list.
	manual []string
}

func newConstructorView(audiences *service.AudienceService, contacts *service.ContactService) *ConstructorView {
	v := &ConstructorView{audiences: audiences, contacts: contacts, name: service.DefaultAudienceName}
	v.filters = filter.NewSet(segmentDescriptors()...)
	v.onChange = func() {
		v.dirty = true
		v.manual = nil
	}
	return v
}

// SetName renames the draft; a blank name falls back to the default.
func (v *ConstructorView) SetName(name string) string {
	v.name = strings.TrimSpace(name)
	if v.name == "" {
		v.name = service.DefaultAudienceName
	}
	return v.name
}

func (v *ConstructorView) Criteria() model.AudienceFilters {
	return model.AudienceFilters{
		Age:           v.filters.Options(FilterAge),
		Properties:    v.filters.Options(FilterProperties),
		Neighborhoods: v.filters.Options(FilterNeighborhood),
	}
}

func (v *ConstructorView) matched(ctx context.Context) ([]model.Contact, error) {
	contacts, err := v.contacts.Segment(ctx, v.Criteria())
	if err != nil || v.manual == nil {
		return contacts, err
	}
	all, err := v.contacts.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, func(c model.Contact) bool { return slices.Contains(v.manual, c.ID) }), nil
}

type ConstructorState struct {
	Name     string                `json:"name"`
	Filters  Filters               `json:"filters"`
	Criteria model.AudienceFilters `json:"criteria"`
	Contacts []model.Contact       `json:"contacts"`
	Count    int                   `json:"count"`
	CanSave  bool                  `json:"can_save"`
}

func (v *ConstructorView) State(ctx context.Context) (ConstructorState, error) {
	contacts, err := v.matched(ctx)
	if err != nil {
		return ConstructorState{}, err
	}
	return ConstructorState{
		Name:     v.name,
		Filters:  v.filterState(),
		Criteria: v.Criteria(),
		Contacts: contacts,
		Count:    len(contacts),
		CanSave:  v.dirty,
	}, nil
}

// SetContacts replaces the preview with a hand-edited contact list.
func (v *ConstructorView) SetContacts(ctx context.Context, ids []string) (model.Notice, error) {
	for _, id := range ids {
		if _, err := v.contacts.ContactRepo.GetByID(ctx, id); err != nil {
			return model.Notice{}, err
		}
	}
	v.manual = append([]string{}, ids...)
	v.dirty = true
	return v.contacts.Notifier.Notify(model.NoticeSuccess, "Contactos actualizados correctamente"), nil
}

func (v *ConstructorView) Snapshot(ctx context.Context) (model.Notice, error) {
	contacts, err := v.matched(ctx)
	if err != nil {
		return model.Notice{}, err
	}
	return v.audiences.Snapshot(v.name, len(contacts)), nil
}

// Save stores the draft as an active audience and resets the constructor.
func (v *ConstructorView) Save(ctx context.Context) (*model.Audience, model.Notice, error) {
	if !v.dirty {
		return nil, model.Notice{}, appErrors.NewValidation("filters", "Modifica algún filtro antes de guardar la audiencia")
	}
	contacts, err := v.matched(ctx)
	if err != nil {
		return nil, model.Notice{}, err
	}
	a, notice, err := v.audiences.SaveSegment(ctx, v.name, v.Criteria(), contacts)
	if err != nil {
		return nil, model.Notice{}, err
	}
	v.reset()
	return a, notice, nil
}

func (v *ConstructorView) reset() {
	v.filters.Clear()
	v.name = service.DefaultAudienceName
	v.dirty = false
	v.manual = nil
}
