// internal/controller/campaign_controller.go
package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/audience-crm/internal/dashboard"
	"github.com/unclebandit/audience-crm/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func campaignsState(ctx context.Context, s *dashboard.Session) (any, error) {
	return s.Campaigns.State(ctx)
}

func (c *CampaignController) Filters() *FilterController {
	return &FilterController{
		Editor: func(s *dashboard.Session) dashboard.FilterEditor { return s.Campaigns },
		State:  campaignsState,
	}
}

func (c *CampaignController) List(w http.ResponseWriter, r *http.Request) {
	serve(w, r, campaignsState)
}

func (c *CampaignController) Select(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		selected, err := s.Campaigns.Select(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"id": id, "selected": selected}, nil
	})
}

func (c *CampaignController) Panel(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		panel, err := s.Campaigns.Panel(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"panel": panel}, nil
	})
}

func (c *CampaignController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		notice, err := s.Campaigns.Delete(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"notice": notice}, nil
	})
}

func (c *CampaignController) Duplicate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		campaign, notice, err := s.Campaigns.Duplicate(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"campaign": campaign, "notice": notice}, nil
	})
}

func (c *CampaignController) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		campaign, notice, err := s.Campaigns.Cancel(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"campaign": campaign, "notice": notice}, nil
	})
}

// PersonalizedPreview renders the campaign message for one contact. It reads
// shared data only and does not touch the session.
func (c *CampaignController) PersonalizedPreview(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	var body struct {
		ContactID        string  `json:"contact_id"`
		OverrideTemplate *string `json:"override_template"`
	}
	decodeAndServe(w, r, &body, func(ctx context.Context, _ *dashboard.Session) (any, error) {
		rendered, err := c.CampaignService.RenderPreview(ctx, campaignID, body.ContactID, body.OverrideTemplate)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"rendered_message": rendered,
			"used_template":    body.OverrideTemplate,
			"contact_id":       body.ContactID,
		}, nil
	})
}

// ====================== Wizard ======================

func (c *CampaignController) WizardState(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		return s.Campaigns.WizardState(), nil
	})
}

func (c *CampaignController) OpenWizard(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		return s.Campaigns.OpenWizard(ctx)
	})
}

func (c *CampaignController) UpdateWizard(w http.ResponseWriter, r *http.Request) {
	var body dashboard.WizardInput
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		return s.Campaigns.UpdateWizard(body)
	})
}

func (c *CampaignController) WizardNext(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		return s.Campaigns.WizardNext(ctx)
	})
}

func (c *CampaignController) WizardPrevious(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		return s.Campaigns.WizardPrevious()
	})
}

func (c *CampaignController) CancelWizard(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		return s.Campaigns.CancelWizard(), nil
	})
}
