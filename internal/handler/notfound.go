package handler

import (
	"net/http"
	"strings"

	"github.com/agnivade/levenshtein"
	log "github.com/sirupsen/logrus"
)

// KnownRoutes are the screens a mistyped path is compared against.
var KnownRoutes = []string{"/", "/audiencias", "/audiencias/constructor", "/campanas", "/contactos"}

// Suggest returns the known route closest to path.
func Suggest(path string) string {
	path = strings.ToLower(strings.TrimRight(path, "/"))
	best, bestDist := "/", -1
	for _, route := range KnownRoutes {
		d := levenshtein.ComputeDistance(path, route)
		if bestDist < 0 || d < bestDist {
			best, bestDist = route, d
		}
	}
	return best
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	log.WithField("path", r.URL.Path).Warn("🚫 404: route does not exist")
	WriteJSON(w, http.StatusNotFound, map[string]string{
		"error":      "Página no encontrada",
		"path":       r.URL.Path,
		"suggestion": Suggest(r.URL.Path),
		"home":       "/",
	})
}
