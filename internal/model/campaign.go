// internal/model/campaign.go
package model

import (
	"fmt"
	"time"
)

const (
	CampaignScheduled  = "scheduled"
	CampaignInProgress = "in-progress"
	CampaignCompleted  = "completed"
	CampaignSent       = "sent"
	CampaignCanceled   = "canceled"
)

var campaignStatusLabels = map[string]string{
	CampaignScheduled:  "Programada",
	CampaignInProgress: "En curso",
	CampaignCompleted:  "Finalizada",
	CampaignSent:       "Enviada",
	CampaignCanceled:   "Cancelada",
}

// CampaignStatusLabel returns the dashboard label for a status, or the raw
// status when it has none.
func CampaignStatusLabel(status string) string {
	if label, ok := campaignStatusLabels[status]; ok {
		return label
	}
	return status
}

func ValidCampaignStatus(status string) bool {
	_, ok := campaignStatusLabels[status]
	return ok
}

type CampaignMetrics struct {
	Sent      int  `json:"sent"`
	Delivered int  `json:"delivered"`
	Read      int  `json:"read"`
	Responses *int `json:"responses,omitempty"`
}

// ReadRate is read/delivered formatted as a percentage, "-" when nothing was delivered.
func (m CampaignMetrics) ReadRate() string {
	return rate(m.Read, m.Delivered)
}

func (m CampaignMetrics) ResponseRate() string {
	if m.Responses == nil {
		return "-"
	}
	return rate(*m.Responses, m.Delivered)
}

func (m CampaignMetrics) Failed() int {
	if m.Sent < m.Delivered {
		return 0
	}
	return m.Sent - m.Delivered
}

func rate(n, of int) string {
	if of <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(of))
}

type EditEntry struct {
	Date   time.Time `json:"date"`
	User   string    `json:"user"`
	Action string    `json:"action"`
}

type Campaign struct {
	ID            string            `db:"id" json:"id"`
	Name          string            `db:"name" json:"name"`
	AudienceID    string            `db:"audience_id" json:"audience_id"`
	AudienceName  string            `db:"audience_name" json:"audience_name"`
	ScheduledDate time.Time         `db:"scheduled_date" json:"scheduled_date"`
	Status        string            `db:"status" json:"status"`
	Metrics       *CampaignMetrics  `db:"metrics" json:"metrics,omitempty"`
	Template      string            `db:"template" json:"template,omitempty"`
	Variables     map[string]string `db:"variables" json:"variables,omitempty"`
	AudienceSize  *int              `db:"audience_size" json:"audience_size,omitempty"`
	MessageText   string            `db:"message_text" json:"message_text,omitempty"`
	LastEdited    *time.Time        `db:"last_edited" json:"last_edited,omitempty"`
	EditHistory   []EditEntry       `db:"edit_history" json:"edit_history,omitempty"`
}

func (c Campaign) GetID() string { return c.ID }
