// Package dashboard keeps the per-visitor state of the CRM screens: active
// filters, selections, the constructor draft and the campaign wizard.
package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/unclebandit/audience-crm/internal/service"
)

// Services are shared by every session.
type Services struct {
	Audiences *service.AudienceService
	Campaigns *service.CampaignService
	Contacts  *service.ContactService
}

// Session is one visitor's dashboard. Callers hold its lock for the whole
// operation; the views are not safe for concurrent use.
type Session struct {
	sync.Mutex

	ID          string
	Audiences   *AudiencesView
	Constructor *ConstructorView
	Campaigns   *CampaignsView
	Contacts    *ContactsView

	lastSeen time.Time
}

func NewSession(id string, svc Services) *Session {
	return &Session{
		ID:          id,
		Audiences:   newAudiencesView(svc.Audiences),
		Constructor: newConstructorView(svc.Audiences, svc.Contacts),
		Campaigns:   newCampaignsView(svc.Campaigns, svc.Audiences),
		Contacts:    newContactsView(svc.Contacts, svc.Audiences),
	}
}

// Store maps session ids to sessions. Sessions idle longer than IdleTTL are
// dropped, and once MaxSessions is reached the least recently used one makes
// room for a new session.
type Store struct {
	IdleTTL     time.Duration
	MaxSessions int
	// Now is overridable in tests.
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	services Services
}

const (
	DefaultIdleTTL     = 12 * time.Hour
	DefaultMaxSessions = 1000
)

func NewStore(svc Services) *Store {
	return &Store{
		IdleTTL:     DefaultIdleTTL,
		MaxSessions: DefaultMaxSessions,
		sessions:    make(map[string]*Session),
		services:    svc,
	}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Session returns the session for id. An empty, unknown or expired id gets a
// new session under a fresh id; created reports that case.
func (s *Store) Session(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok && !s.expired(sess, now) {
		sess.lastSeen = now
		return sess, false
	}

	s.evict(now)
	sess = NewSession(uuid.NewString(), s.services)
	sess.lastSeen = now
	s.sessions[sess.ID] = sess
	log.WithField("session", sess.ID).Debug("🆕 Dashboard session started")
	return sess, true
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.IdleTTL > 0 && now.Sub(sess.lastSeen) > s.IdleTTL
}

// evict drops expired sessions, then the least recently used ones until a
// new session fits.
func (s *Store) evict(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
	if s.MaxSessions <= 0 {
		return
	}
	for len(s.sessions) >= s.MaxSessions {
		var oldest *Session
		for _, sess := range s.sessions {
			if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
				oldest = sess
			}
		}
		delete(s.sessions, oldest.ID)
		log.WithField("session", oldest.ID).Debug("🧹 Dashboard session evicted")
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
