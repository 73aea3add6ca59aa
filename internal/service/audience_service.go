package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/repository"
)

const DefaultAudienceName = "Nueva audiencia"

type AudienceService struct {
	AudienceRepo repository.AudienceRepositoryInterface
	ContactRepo  repository.ContactRepositoryInterface
	Notifier     *Notifier
	Now          func() time.Time
}

func (s *AudienceService) today() string {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return now.Format("2006-01-02")
}

func (s *AudienceService) List(ctx context.Context) ([]model.Audience, error) {
	return s.AudienceRepo.List(ctx)
}

func (s *AudienceService) Get(ctx context.Context, id string) (*model.Audience, error) {
	return s.AudienceRepo.GetByID(ctx, id)
}

func (s *AudienceService) DeleteAudience(ctx context.Context, id string) (model.Notice, error) {
	if err := s.AudienceRepo.Delete(ctx, id); err != nil {
		return model.Notice{}, err
	}
	return s.Notifier.Notify(model.NoticeSuccess, "Audiencia eliminada correctamente"), nil
}

// UpdateMembers stores the contact list chosen in the manual editor. The
// audience size follows the list length.
func (s *AudienceService) UpdateMembers(ctx context.Context, id string, contactIDs []string) (*model.Audience, model.Notice, error) {
	a, err := s.AudienceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, model.Notice{}, err
	}
	ids := uniqueIDs(contactIDs)
	for _, cid := range ids {
		if _, err := s.ContactRepo.GetByID(ctx, cid); err != nil {
			return nil, model.Notice{}, err
		}
	}
	a.ContactIDs = ids
	a.Size = len(a.ContactIDs)
	if err := s.AudienceRepo.Update(ctx, a); err != nil {
		return nil, model.Notice{}, err
	}
	return a, s.Notifier.Notify(model.NoticeSuccess, "Audiencia actualizada correctamente"), nil
}

// SaveSegment creates an active audience from constructor criteria and the
// contacts they matched.
func (s *AudienceService) SaveSegment(ctx context.Context, name string, criteria model.AudienceFilters, members []model.Contact) (*model.Audience, model.Notice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultAudienceName
	}
	ids := make([]string, 0, len(members))
	for _, c := range members {
		ids = append(ids, c.ID)
	}
	a := &model.Audience{
		Name:       name,
		Size:       len(members),
		LastRun:    s.today(),
		Status:     model.AudienceActive,
		ContactIDs: ids,
	}
	if !criteria.Empty() {
		a.Filters = &criteria
	}
	if err := s.AudienceRepo.Create(ctx, a); err != nil {
		return nil, model.Notice{}, err
	}
	return a, s.Notifier.Notify(model.NoticeSuccess, fmt.Sprintf("Audiencia %q guardada correctamente", name)), nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// Bucket is one bar of a distribution chart.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Breakdown struct {
	Members    int      `json:"members"`
	Age        []Bucket `json:"age"`
	Properties []Bucket `json:"properties"`
}

// Members resolves the contacts of an audience: its explicit contact list
// when it has one, otherwise contacts tagged with the audience name.
func (s *AudienceService) Members(ctx context.Context, a model.Audience) ([]model.Contact, error) {
	contacts, err := s.ContactRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Contact{}
	for _, c := range contacts {
		if len(a.ContactIDs) > 0 {
			if slices.Contains(a.ContactIDs, c.ID) {
				out = append(out, c)
			}
		} else if slices.Contains(c.Audiences, a.Name) {
			out = append(out, c)
		}
	}
	return out, nil
}

// BreakdownOf buckets contacts by age and property range.
func BreakdownOf(contacts []model.Contact) Breakdown {
	b := Breakdown{Members: len(contacts)}
	age := map[string]int{}
	props := map[string]int{}
	for _, c := range contacts {
		age[c.AgeRange()]++
		props[c.PropertyRange()]++
	}
	for _, r := range model.AgeRanges {
		b.Age = append(b.Age, Bucket{Name: r, Value: age[r]})
	}
	for _, r := range model.PropertyRanges {
		b.Properties = append(b.Properties, Bucket{Name: r, Value: props[r]})
	}
	return b
}

// Snapshot records the current constructor result.
func (s *AudienceService) Snapshot(name string, matched int) model.Notice {
	log.WithFields(log.Fields{"audience": name, "matched": matched}).Info("📸 Audience snapshot")
	return s.Notifier.Notify(model.NoticeSuccess, "Snapshot creado correctamente")
}
