package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/audience-crm/internal/dashboard"
	"github.com/unclebandit/audience-crm/internal/handler"
)

// NewRouter wires every dashboard screen.
func NewRouter(store *dashboard.Store, campaigns *CampaignController) http.Handler {
	audiences := &AudienceController{}
	constructor := &ConstructorController{}
	contacts := &ContactController{}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(handler.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(handler.Sessions(store))
	r.NotFound(handler.NotFound)

	r.Get("/", Home)

	r.Route("/audiencias", func(r chi.Router) {
		r.Get("/", audiences.List)
		r.Route("/filters", audiences.Filters().Routes)
		r.Get("/panel", audiences.Panel)
		r.Route("/constructor", func(r chi.Router) {
			r.Get("/", constructor.Get)
			r.Route("/filters", constructor.Filters().Routes)
			r.Put("/name", constructor.SetName)
			r.Put("/contacts", constructor.SetContacts)
			r.Post("/snapshot", constructor.Snapshot)
			r.Post("/save", constructor.Save)
		})
		r.Post("/{id}/select", audiences.Select)
		r.Put("/{id}/contacts", audiences.SaveMembers)
		r.Delete("/{id}", audiences.Delete)
	})

	r.Route("/campanas", func(r chi.Router) {
		r.Get("/", campaigns.List)
		r.Route("/filters", campaigns.Filters().Routes)
		r.Get("/panel", campaigns.Panel)
		r.Route("/wizard", func(r chi.Router) {
			r.Get("/", campaigns.WizardState)
			r.Post("/", campaigns.OpenWizard)
			r.Put("/", campaigns.UpdateWizard)
			r.Post("/next", campaigns.WizardNext)
			r.Post("/previous", campaigns.WizardPrevious)
			r.Post("/cancel", campaigns.CancelWizard)
		})
		r.Post("/{id}/select", campaigns.Select)
		r.Post("/{id}/duplicate", campaigns.Duplicate)
		r.Post("/{id}/cancel", campaigns.Cancel)
		r.Post("/{id}/preview", campaigns.PersonalizedPreview)
		r.Delete("/{id}", campaigns.Delete)
	})

	r.Route("/contactos", func(r chi.Router) {
		r.Get("/", contacts.List)
		r.Post("/", contacts.Create)
		r.Route("/filters", contacts.Filters().Routes)
		r.Get("/panel", contacts.Panel)
		r.Post("/check-all", contacts.CheckAll)
		r.Post("/{id}/check", contacts.Check)
		r.Delete("/{id}", contacts.Delete)
	})

	return r
}
