package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/filter"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/repository"
)

var validate = validator.New()

var contactFieldMessages = map[string]string{
	"Name":       "Por favor ingresa un nombre",
	"Phone":      "Por favor ingresa un teléfono",
	"Age":        "La edad no puede ser negativa",
	"Properties": "El número de propiedades no puede ser negativo",
}

type ContactService struct {
	ContactRepo repository.ContactRepositoryInterface
	Notifier    *Notifier
	// Now is overridable in tests.
	Now func() time.Time
}

func (s *ContactService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	return s.ContactRepo.List(ctx)
}

// CreateContact validates and stores a new contact.
func (s *ContactService) CreateContact(ctx context.Context, c model.Contact) (*model.Contact, model.Notice, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].StructField()
			msg := appErrors.NewValidation(field, contactFieldMessages[field])
			return nil, s.Notifier.Notify(model.NoticeError, msg.Error()), msg
		}
		return nil, model.Notice{}, err
	}

	c.ID = ""
	c.Status = model.ContactActive
	c.CreatedAt = s.now().Format("2006-01-02")
	c.LastCampaign = "-"
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if err := s.ContactRepo.Create(ctx, &c); err != nil {
		return nil, model.Notice{}, err
	}
	return &c, s.Notifier.Notify(model.NoticeSuccess, "Contacto creado correctamente"), nil
}

func (s *ContactService) DeleteContact(ctx context.Context, id string) (model.Notice, error) {
	if err := s.ContactRepo.Delete(ctx, id); err != nil {
		return model.Notice{}, err
	}
	return s.Notifier.Notify(model.NoticeSuccess, "Contacto eliminado correctamente"), nil
}

// Segment returns the contacts matching every non-empty criterion.
func (s *ContactService) Segment(ctx context.Context, criteria model.AudienceFilters) ([]model.Contact, error) {
	contacts, err := s.ContactRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(contacts, SegmentPredicate(criteria)), nil
}

// SegmentPredicate ANDs the age, property and neighborhood criteria.
func SegmentPredicate(criteria model.AudienceFilters) filter.Predicate[model.Contact] {
	return func(c model.Contact) bool {
		return filter.MatchOneOf(criteria.Age, c.AgeRange()) &&
			filter.MatchOneOf(criteria.Properties, c.PropertyRange()) &&
			filter.MatchOneOf(criteria.Neighborhoods, c.Neighborhood)
	}
}
