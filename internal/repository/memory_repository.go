package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
)

type identified interface {
	GetID() string
}

// MemoryRepository keeps a collection in process memory. Ids are the prefix
// followed by an increasing counter.
type MemoryRepository[T identified] struct {
	mu     sync.RWMutex
	entity string
	prefix string
	next   int
	items  []T
	setID  func(*T, string)
}

func newMemoryRepository[T identified](entity, prefix string, seed []T, setID func(*T, string)) *MemoryRepository[T] {
	r := &MemoryRepository[T]{entity: entity, prefix: prefix, setID: setID, next: 1}
	r.items = append(r.items, seed...)
	for _, item := range seed {
		if n, err := strconv.Atoi(strings.TrimPrefix(item.GetID(), prefix)); err == nil && n >= r.next {
			r.next = n + 1
		}
	}
	return r
}

func NewMemoryAudienceRepository(seed []model.Audience) *MemoryRepository[model.Audience] {
	return newMemoryRepository("audience", "aud", seed, func(a *model.Audience, id string) { a.ID = id })
}

func NewMemoryCampaignRepository(seed []model.Campaign) *MemoryRepository[model.Campaign] {
	return newMemoryRepository("campaign", "camp", seed, func(c *model.Campaign, id string) { c.ID = id })
}

func NewMemoryContactRepository(seed []model.Contact) *MemoryRepository[model.Contact] {
	return newMemoryRepository("contact", "cont", seed, func(c *model.Contact, id string) { c.ID = id })
}

func (r *MemoryRepository[T]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MemoryRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.GetID() == id {
			found := item
			return &found, nil
		}
	}
	return nil, appErrors.NewNotFound(r.entity, id)
}

func (r *MemoryRepository[T]) Create(ctx context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if (*item).GetID() == "" {
		r.setID(item, r.prefix+strconv.Itoa(r.next))
		r.next++
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].GetID() == (*item).GetID() {
			r.items[i] = *item
			return nil
		}
	}
	return appErrors.NewNotFound(r.entity, (*item).GetID())
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].GetID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return appErrors.NewNotFound(r.entity, id)
}

var (
	_ AudienceRepositoryInterface = (*MemoryRepository[model.Audience])(nil)
	_ CampaignRepositoryInterface = (*MemoryRepository[model.Campaign])(nil)
	_ ContactRepositoryInterface  = (*MemoryRepository[model.Contact])(nil)
)
