package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/avdwal/rioview/internal/common"
)

//go:embed web/templates/*.html
var templateFS embed.FS

//go:embed web/static
var staticFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templateFS, "web/templates/home.html"))

// handleHome serves the explorer UI at the root path.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTemplate.Execute(w, map[string]string{
		"Version": common.GetVersion(),
	}); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render home template")
	}
}

// staticHandler serves the embedded static assets under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "web/static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
