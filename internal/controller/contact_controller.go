package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/audience-crm/internal/dashboard"
	"github.com/unclebandit/audience-crm/internal/model"
)

type ContactController struct{}

func contactsState(ctx context.Context, s *dashboard.Session) (any, error) {
	return s.Contacts.State(ctx)
}

func (c *ContactController) Filters() *FilterController {
	return &FilterController{
		Editor: func(s *dashboard.Session) dashboard.FilterEditor { return s.Contacts },
		State:  contactsState,
	}
}

func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	serve(w, r, contactsState)
}

func (c *ContactController) Check(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body := struct {
		Checked *bool `json:"checked"`
	}{}
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		checked := body.Checked == nil || *body.Checked
		if err := s.Contacts.Check(ctx, id, checked); err != nil {
			return nil, err
		}
		return s.Contacts.State(ctx)
	})
}

func (c *ContactController) CheckAll(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Checked *bool `json:"checked"`
	}{}
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		all := body.Checked == nil || *body.Checked
		if err := s.Contacts.CheckAll(ctx, all); err != nil {
			return nil, err
		}
		return s.Contacts.State(ctx)
	})
}

func (c *ContactController) Panel(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		return s.Contacts.Panel(ctx)
	})
}

func (c *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string   `json:"name"`
		Phone        string   `json:"phone"`
		Age          int      `json:"age"`
		Properties   int      `json:"properties"`
		Neighborhood string   `json:"neighborhood"`
		Tags         []string `json:"tags"`
		Audiences    []string `json:"audiences"`
		Notes        string   `json:"notes"`
	}
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		contact, notice, err := s.Contacts.Create(ctx, model.Contact{
			Name:         body.Name,
			Phone:        body.Phone,
			Age:          body.Age,
			Properties:   body.Properties,
			Neighborhood: body.Neighborhood,
			Tags:         body.Tags,
			Audiences:    body.Audiences,
			Notes:        body.Notes,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"contact": contact, "notice": notice}, nil
	})
}

func (c *ContactController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		notice, err := s.Contacts.Delete(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"notice": notice}, nil
	})
}
