package repository

import (
	"context"
	"database/sql/driver"

	"github.com/lib/pq"

	"github.com/unclebandit/audience-crm/internal/model"
)

// Repository is the storage contract every entity collection satisfies.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	// Create stores item, assigning an id when it has none.
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

type AudienceRepositoryInterface = Repository[model.Audience]
type CampaignRepositoryInterface = Repository[model.Campaign]
type ContactRepositoryInterface = Repository[model.Contact]

// textArray binds s to a TEXT[] column. A nil slice becomes an empty array
// since the array columns are NOT NULL.
func textArray(s []string) driver.Valuer {
	if s == nil {
		s = []string{}
	}
	return pq.Array(s)
}
