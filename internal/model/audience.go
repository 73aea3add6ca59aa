// internal/model/audience.go
package model

const (
	AudienceActive   = "active"
	AudienceArchived = "archived"
)

// AudienceFilters are the segmentation criteria an audience was built from.
type AudienceFilters struct {
	Age           []string `json:"age,omitempty"`
	Properties    []string `json:"properties,omitempty"`
	Neighborhoods []string `json:"neighborhoods,omitempty"`
}

func (f *AudienceFilters) Empty() bool {
	return f == nil || (len(f.Age) == 0 && len(f.Properties) == 0 && len(f.Neighborhoods) == 0)
}

type Audience struct {
	ID         string           `db:"id" json:"id"`
	Name       string           `db:"name" json:"name"`
	Size       int              `db:"size" json:"size"`
	LastRun    string           `db:"last_run" json:"last_run"`
	Status     string           `db:"status" json:"status"`
	Filters    *AudienceFilters `db:"filters" json:"filters,omitempty"`
	ContactIDs []string         `db:"contact_ids" json:"contact_ids,omitempty"`
}

func (a Audience) GetID() string { return a.ID }
