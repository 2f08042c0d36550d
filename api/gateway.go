package api

import (
	"net/http"
	"path"
	"strings"

	"github.com/skillswap/skillswap/internal/session"
)

// publicPages are the page paths reachable without a session.
var publicPages = map[string]bool{
	"/":                true,
	"/login":           true,
	"/signup":          true,
	"/forgot-password": true,
}

// PageGateway serves the static frontend and gates page navigation on the
// session cookie. Requests for assets (anything with a file extension) pass
// straight through; page paths that are not public redirect anonymous
// visitors to the login page.
type PageGateway struct {
	sessions *session.Manager
	files    http.Handler
}

func NewPageGateway(sm *session.Manager, webDir string) *PageGateway {
	return &PageGateway{
		sessions: sm,
		files:    http.FileServer(http.Dir(webDir)),
	}
}

func (g *PageGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := path.Clean(r.URL.Path)

	if strings.Contains(path.Base(p), ".") {
		g.files.ServeHTTP(w, r)
		return
	}

	if !publicPages[p] && g.sessions.FromRequest(r) == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	g.files.ServeHTTP(w, r)
}
