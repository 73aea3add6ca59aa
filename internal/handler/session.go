package handler

import (
	"context"
	"net/http"

	"github.com/unclebandit/audience-crm/internal/dashboard"
)

const SessionCookie = "crm_session"

type sessionKey struct{}

// Sessions attaches the visitor's dashboard session to the request context,
// issuing a new cookie when the request carries none or an unknown one.
func Sessions(store *dashboard.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}
			sess, created := store.Session(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
		})
	}
}

// SessionFrom returns the session Sessions stored, or nil outside it.
func SessionFrom(ctx context.Context) *dashboard.Session {
	sess, _ := ctx.Value(sessionKey{}).(*dashboard.Session)
	return sess
}
