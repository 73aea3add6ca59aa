package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/audience-crm/internal/dashboard"
)

type AudienceController struct{}

func audiencesState(ctx context.Context, s *dashboard.Session) (any, error) {
	return s.Audiences.State(ctx)
}

func (c *AudienceController) Filters() *FilterController {
	return &FilterController{
		Editor: func(s *dashboard.Session) dashboard.FilterEditor { return s.Audiences },
		State:  audiencesState,
	}
}

func (c *AudienceController) List(w http.ResponseWriter, r *http.Request) {
	serve(w, r, audiencesState)
}

func (c *AudienceController) Select(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		selected, err := s.Audiences.Select(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"id": id, "selected": selected}, nil
	})
}

func (c *AudienceController) Panel(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		panel, err := s.Audiences.Panel(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"panel": panel}, nil
	})
}

func (c *AudienceController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		notice, err := s.Audiences.Delete(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"notice": notice}, nil
	})
}

func (c *AudienceController) SaveMembers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		ContactIDs []string `json:"contact_ids"`
	}
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		a, notice, err := s.Audiences.SaveMembers(ctx, id, body.ContactIDs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"audience": a, "notice": notice}, nil
	})
}

// ====================== Constructor ======================

type ConstructorController struct{}

func constructorState(ctx context.Context, s *dashboard.Session) (any, error) {
	return s.Constructor.State(ctx)
}

func (c *ConstructorController) Filters() *FilterController {
	return &FilterController{
		Editor: func(s *dashboard.Session) dashboard.FilterEditor { return s.Constructor },
		State:  constructorState,
	}
}

func (c *ConstructorController) Get(w http.ResponseWriter, r *http.Request) {
	serve(w, r, constructorState)
}

func (c *ConstructorController) SetName(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		s.Constructor.SetName(body.Name)
		return s.Constructor.State(ctx)
	})
}

func (c *ConstructorController) SetContacts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContactIDs []string `json:"contact_ids"`
	}
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		notice, err := s.Constructor.SetContacts(ctx, body.ContactIDs)
		if err != nil {
			return nil, err
		}
		st, err := s.Constructor.State(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"notice": notice, "constructor": st}, nil
	})
}

func (c *ConstructorController) Snapshot(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		notice, err := s.Constructor.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"notice": notice}, nil
	})
}

func (c *ConstructorController) Save(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		a, notice, err := s.Constructor.Save(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"audience": a, "notice": notice, "redirect": "/audiencias"}, nil
	})
}
