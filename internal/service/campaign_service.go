// internal/service/campaign_service.go
package service

import (
	"context"
	"fmt"
	"maps"
	"time"

	log "github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/repository"
	"github.com/unclebandit/audience-crm/internal/wizard"
)

// EditorName is recorded in campaign edit history.
const EditorName = "Admin"

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	AudienceRepo repository.AudienceRepositoryInterface
	ContactRepo  repository.ContactRepositoryInterface
	Notifier     *Notifier
	Now          func() time.Time
}

func (s *CampaignService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CampaignService) List(ctx context.Context) ([]model.Campaign, error) {
	return s.CampaignRepo.List(ctx)
}

func (s *CampaignService) Get(ctx context.Context, id string) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(ctx, id)
}

// CreateCampaign stores the campaign the wizard collected. The audience is
// looked up for its name and size; a missing audience leaves both empty.
func (s *CampaignService) CreateCampaign(ctx context.Context, sub wizard.Submission) (*model.Campaign, model.Notice, error) {
	now := s.now()
	c := &model.Campaign{
		Name:          sub.Name,
		AudienceID:    sub.AudienceID,
		ScheduledDate: sub.ScheduledDate,
		Status:        model.CampaignScheduled,
		Template:      sub.TemplateID,
		Variables:     maps.Clone(sub.Variables),
		LastEdited:    &now,
		EditHistory:   []model.EditEntry{{Date: now, User: EditorName, Action: "Creación de campaña"}},
	}

	if a, err := s.AudienceRepo.GetByID(ctx, sub.AudienceID); err == nil {
		c.AudienceName = a.Name
		size := a.Size
		c.AudienceSize = &size
	} else if !appErrors.IsNotFound(err) {
		return nil, model.Notice{}, err
	}
	if t, ok := model.FindTemplate(sub.TemplateID); ok {
		c.MessageText = t.Body
	}

	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, model.Notice{}, err
	}
	log.WithField("campaign_id", c.ID).Info("📣 Campaign created")
	return c, s.Notifier.Notify(model.NoticeSuccess, fmt.Sprintf("Campaña %q creada correctamente", c.Name)), nil
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) (model.Notice, error) {
	if err := s.CampaignRepo.Delete(ctx, id); err != nil {
		return model.Notice{}, err
	}
	return s.Notifier.Notify(model.NoticeSuccess, "Campaña eliminada correctamente"), nil
}

// DuplicateCampaign copies a campaign as a new scheduled one without metrics.
func (s *CampaignService) DuplicateCampaign(ctx context.Context, id string) (*model.Campaign, model.Notice, error) {
	orig, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, model.Notice{}, err
	}
	now := s.now()
	dup := *orig
	dup.ID = ""
	dup.Name = orig.Name + " (copia)"
	dup.Status = model.CampaignScheduled
	dup.Metrics = nil
	dup.Variables = maps.Clone(orig.Variables)
	dup.LastEdited = &now
	dup.EditHistory = []model.EditEntry{{Date: now, User: EditorName, Action: "Duplicada de " + orig.ID}}
	if err := s.CampaignRepo.Create(ctx, &dup); err != nil {
		return nil, model.Notice{}, err
	}
	return &dup, s.Notifier.Notify(model.NoticeSuccess, fmt.Sprintf("Campaña %q clonada correctamente", orig.Name)), nil
}

// CancelCampaign stops a campaign that has not started yet.
func (s *CampaignService) CancelCampaign(ctx context.Context, id string) (*model.Campaign, model.Notice, error) {
	c, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, model.Notice{}, err
	}
	if c.Status != model.CampaignScheduled {
		return nil, model.Notice{}, appErrors.NewValidation("status",
			fmt.Sprintf("No se puede cancelar una campaña en estado %s", model.CampaignStatusLabel(c.Status)))
	}
	now := s.now()
	c.Status = model.CampaignCanceled
	c.LastEdited = &now
	c.EditHistory = append(c.EditHistory, model.EditEntry{Date: now, User: EditorName, Action: "Cancelación"})
	if err := s.CampaignRepo.Update(ctx, c); err != nil {
		return nil, model.Notice{}, err
	}
	return c, s.Notifier.Notify(model.NoticeInfo, fmt.Sprintf("Campaña %q cancelada", c.Name)), nil
}

// RenderPreview renders the campaign message for one contact. A non-empty
// override template body replaces the campaign's template.
func (s *CampaignService) RenderPreview(ctx context.Context, campaignID, contactID string, override *string) (string, error) {
	campaign, err := s.CampaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return "", err
	}
	contact, err := s.ContactRepo.GetByID(ctx, contactID)
	if err != nil {
		return "", err
	}

	tmpl, ok := model.FindTemplate(campaign.Template)
	if override != nil && *override != "" {
		tmpl = model.Template{Body: *override}
		ok = true
	}
	if !ok || tmpl.Body == "" {
		return "", appErrors.NewValidation("template", "template cannot be empty")
	}
	return RenderMessage(tmpl, campaign.Variables, *contact), nil
}

// CampaignDetails is the campaign side panel.
type CampaignDetails struct {
	model.Campaign
	StatusLabel  string `json:"status_label"`
	ReadRate     string `json:"read_rate"`
	ResponseRate string `json:"response_rate"`
	Failed       int    `json:"failed"`
}

func DetailsOf(c model.Campaign) CampaignDetails {
	d := CampaignDetails{Campaign: c, StatusLabel: model.CampaignStatusLabel(c.Status), ReadRate: "-", ResponseRate: "-"}
	if c.Metrics != nil {
		d.ReadRate = c.Metrics.ReadRate()
		d.ResponseRate = c.Metrics.ResponseRate()
		d.Failed = c.Metrics.Failed()
	}
	return d
}
