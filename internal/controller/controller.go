// Package controller exposes the dashboard screens over HTTP.
package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/audience-crm/internal/dashboard"
	"github.com/unclebandit/audience-crm/internal/handler"
)

type sessionFunc func(ctx context.Context, s *dashboard.Session) (any, error)

// serve runs fn under the session lock and writes its result as JSON.
func serve(w http.ResponseWriter, r *http.Request, fn sessionFunc) {
	s := handler.SessionFrom(r.Context())
	if s == nil {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	s.Lock()
	out, err := fn(r.Context(), s)
	s.Unlock()
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, out)
}

// decodeAndServe decodes the body into dst before serving.
func decodeAndServe(w http.ResponseWriter, r *http.Request, dst any, fn sessionFunc) {
	if err := handler.DecodeJSON(r, dst); err != nil {
		handler.WriteError(w, err)
		return
	}
	serve(w, r, fn)
}

// ====================== Filters ======================

// FilterController serves the filter bar of one view. After every edit it
// responds with the view's state.
type FilterController struct {
	Editor func(s *dashboard.Session) dashboard.FilterEditor
	State  sessionFunc
}

func (f *FilterController) Routes(r chi.Router) {
	r.Post("/", f.Add)
	r.Delete("/", f.Clear)
	r.Put("/{filterID}", f.Update)
	r.Delete("/{filterID}", f.Remove)
}

func (f *FilterController) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		if err := f.Editor(s).AddFilter(body.ID); err != nil {
			return nil, err
		}
		return f.State(ctx, s)
	})
}

func (f *FilterController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "filterID")
	var body dashboard.FilterUpdate
	decodeAndServe(w, r, &body, func(ctx context.Context, s *dashboard.Session) (any, error) {
		if err := f.Editor(s).UpdateFilter(id, body); err != nil {
			return nil, err
		}
		return f.State(ctx, s)
	})
}

func (f *FilterController) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "filterID")
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		if err := f.Editor(s).RemoveFilter(id); err != nil {
			return nil, err
		}
		return f.State(ctx, s)
	})
}

func (f *FilterController) Clear(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(ctx context.Context, s *dashboard.Session) (any, error) {
		f.Editor(s).ClearFilters()
		return f.State(ctx, s)
	})
}

func Home(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, dashboard.HomeScreen())
}
