// Package seed holds the demo dataset the dashboard starts with.
package seed

import (
	"time"

	"github.com/unclebandit/audience-crm/internal/model"
)

func intPtr(n int) *int { return &n }

func Audiences() []model.Audience {
	return []model.Audience{
		{ID: "aud1", Name: "Propietarios Centro", Size: 1245, LastRun: "2025-04-25", Status: model.AudienceActive,
			Filters: &model.AudienceFilters{Age: []string{"35-50", "50-70"}, Properties: []string{"1", "2-5"}, Neighborhoods: []string{"Salamanca", "Chamberí"}}},
		{ID: "aud2", Name: "Inversores Premium", Size: 857, LastRun: "2025-04-22", Status: model.AudienceActive,
			Filters: &model.AudienceFilters{Age: []string{"50-70", "70+"}, Properties: []string{"5+"}, Neighborhoods: []string{"Retiro", "Chamartín"}}},
		{ID: "aud3", Name: "Compradores 2024", Size: 2140, LastRun: "2025-04-15", Status: model.AudienceActive,
			Filters: &model.AudienceFilters{Age: []string{"20-35", "35-50"}, Properties: []string{"1"}, Neighborhoods: []string{"Tetuán", "Chamberí"}}},
		{ID: "aud4", Name: "Vendedores potenciales", Size: 412, LastRun: "2025-04-10", Status: model.AudienceActive},
		{ID: "aud5", Name: "Clientes antiguos", Size: 1589, LastRun: "2025-03-30", Status: model.AudienceArchived},
	}
}

func Campaigns() []model.Campaign {
	return []model.Campaign{
		{ID: "camp1", Name: "Promoción abril 2025", AudienceID: "aud1", AudienceName: "Propietarios Centro",
			ScheduledDate: time.Date(2025, 4, 28, 10, 0, 0, 0, time.UTC), Status: model.CampaignScheduled,
			Template: "template1", AudienceSize: intPtr(1245)},
		{ID: "camp2", Name: "Evento exclusivo inversores", AudienceID: "aud2", AudienceName: "Inversores Premium",
			ScheduledDate: time.Date(2025, 4, 20, 9, 30, 0, 0, time.UTC), Status: model.CampaignInProgress,
			Template: "template3", AudienceSize: intPtr(857),
			Metrics: &model.CampaignMetrics{Sent: 120, Delivered: 118, Read: 85, Responses: intPtr(12)}},
		{ID: "camp3", Name: "Promoción marzo 2025", AudienceID: "aud1", AudienceName: "Propietarios Centro",
			ScheduledDate: time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC), Status: model.CampaignCompleted,
			Template: "template1", AudienceSize: intPtr(1245),
			Metrics: &model.CampaignMetrics{Sent: 450, Delivered: 442, Read: 375}},
	}
}

func Contacts() []model.Contact {
	return []model.Contact{
		{ID: "cont1", Name: "Ana García", Phone: "+34 666 777 888", Age: 45, Properties: 3, Neighborhood: "Salamanca",
			Tags: []string{"Activo", "Inversor"}, Status: model.ContactActive, CreatedAt: "2022-11-20",
			Audiences: []string{"Inversores Premium"}, LastCampaign: "2025-04-15", ResponseStatus: "Leído"},
		{ID: "cont2", Name: "Luis Martínez", Phone: "+34 666 999 000", Age: 62, Properties: 6, Neighborhood: "Chamberí",
			Tags: []string{"Excliente", "Herencia"}, Status: model.ContactInactive, CreatedAt: "2022-09-05",
			Audiences: []string{"Propietarios Centro"}, LastCampaign: "2025-03-02", ResponseStatus: "No leído"},
		{ID: "cont3", Name: "Marta López", Phone: "+34 611 222 333", Age: 29, Properties: 1, Neighborhood: "Tetuán",
			Tags: []string{"Comprador"}, Status: model.ContactActive, CreatedAt: "2023-01-12",
			Audiences: []string{"Compradores 2024"}, ResponseStatus: "Respondido"},
		{ID: "cont4", Name: "Javier Ruiz", Phone: "+34 622 333 444", Age: 74, Properties: 8, Neighborhood: "Retiro",
			Tags: []string{"Inversor", "VIP"}, Status: model.ContactActive, CreatedAt: "2021-06-30",
			Audiences: []string{"Inversores Premium"}, LastCampaign: "2025-04-20", ResponseStatus: "Leído"},
		{ID: "cont5", Name: "Carmen Díaz", Phone: "+34 633 444 555", Age: 38, Properties: 2, Neighborhood: "Chamberí",
			Tags: []string{"Propietario"}, Status: model.ContactActive, CreatedAt: "2023-03-18",
			Audiences: []string{"Propietarios Centro", "Compradores 2024"}},
		{ID: "cont6", Name: "Pedro Sánchez", Phone: "+34 644 555 666", Age: 55, Properties: 1, Neighborhood: "Centro",
			Tags: []string{"Vendedor"}, Status: model.ContactInactive, CreatedAt: "2020-12-01",
			Audiences: []string{"Vendedores potenciales"}},
	}
}
