// internal/model/contact.go
package model

const (
	ContactActive   = "Activo"
	ContactInactive = "Inactivo"
)

// Age and property ranges used by the contact filters and the audience constructor.
var (
	AgeRanges      = []string{"20-35", "35-50", "50-70", "70+"}
	PropertyRanges = []string{"1", "2-5", "5+"}
	Neighborhoods  = []string{"Salamanca", "Chamberí", "Retiro", "Centro", "Chamartín", "Tetuán", "Arganzuela"}
)

type Contact struct {
	ID             string   `db:"id" json:"id"`
	Name           string   `db:"name" json:"name" validate:"required"`
	Phone          string   `db:"phone" json:"phone" validate:"required"`
	Age            int      `db:"age" json:"age" validate:"gte=0"`
	Properties     int      `db:"properties" json:"properties" validate:"gte=0"`
	Neighborhood   string   `db:"neighborhood" json:"neighborhood"`
	Tags           []string `db:"tags" json:"tags"`
	Status         string   `db:"status" json:"status,omitempty"`
	CreatedAt      string   `db:"created_at" json:"created_at,omitempty"`
	Audiences      []string `db:"audiences" json:"audiences,omitempty"`
	LastCampaign   string   `db:"last_campaign" json:"last_campaign,omitempty"`
	ResponseStatus string   `db:"response_status" json:"response_status,omitempty"`
	Notes          string   `db:"notes" json:"notes,omitempty"`
}

func (c Contact) GetID() string { return c.ID }

// AgeRange buckets the contact's age. Anything under 35 lands in "20-35".
func (c Contact) AgeRange() string {
	switch {
	case c.Age < 35:
		return "20-35"
	case c.Age < 50:
		return "35-50"
	case c.Age < 70:
		return "50-70"
	default:
		return "70+"
	}
}

func (c Contact) PropertyRange() string {
	switch {
	case c.Properties <= 1:
		return "1"
	case c.Properties <= 5:
		return "2-5"
	default:
		return "5+"
	}
}
