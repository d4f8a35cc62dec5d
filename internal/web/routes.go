package web

import (
	"net/http"
	"time"

	"github.com/bobmcallan/propdesk/internal/common"
)

// registerRoutes sets up all console routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Marketing site (public)
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/features", s.handleStaticPage("features", "nav.features"))
	mux.HandleFunc("/pricing", s.handleStaticPage("pricing", "nav.pricing"))
	mux.HandleFunc("/about", s.handleStaticPage("about", "nav.about"))
	mux.HandleFunc("/privacy", s.handleStaticPage("privacy", "app.name"))
	mux.HandleFunc("/terms", s.handleStaticPage("terms", "app.name"))
	mux.HandleFunc("/demo", s.handleDemo)
	mux.HandleFunc("/contact", s.handleContact)
	mux.HandleFunc("/lang/", s.handleLangSwitch)

	// Auth
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/logout", s.requireSession(s.handleLogout))

	// Console (protected)
	mux.HandleFunc("/dashboard", s.requireSession(s.handleDashboard))
	mux.HandleFunc("/dashboard/chart.png", s.requireSession(s.handleDashboardChart))

	mux.HandleFunc("/users", s.requireSession(s.handleUsers))
	mux.HandleFunc("/users/create", s.requireSession(s.handleUserCreate))
	mux.HandleFunc("/users/update", s.requireSession(s.handleUserUpdate))
	mux.HandleFunc("/users/delete", s.requireSession(s.handleUserDelete))

	mux.HandleFunc("/properties", s.requireSession(s.handleProperties))
	mux.HandleFunc("/properties/create", s.requireSession(s.handlePropertyCreate))
	mux.HandleFunc("/properties/update", s.requireSession(s.handlePropertyUpdate))
	mux.HandleFunc("/properties/delete", s.requireSession(s.handlePropertyDelete))
	mux.HandleFunc("/properties/import", s.requireSession(s.handlePropertyImport))
	mux.HandleFunc("/properties/export", s.requireSession(s.handlePropertyExport))

	mux.HandleFunc("/leads", s.requireSession(s.handleLeads))
	mux.HandleFunc("/leads/create", s.requireSession(s.handleLeadCreate))
	mux.HandleFunc("/leads/update", s.requireSession(s.handleLeadUpdate))
	mux.HandleFunc("/leads/delete", s.requireSession(s.handleLeadDelete))
	mux.HandleFunc("/leads/import", s.requireSession(s.handleLeadImport))

	mux.HandleFunc("/requests", s.requireSession(s.handleRequests))
	mux.HandleFunc("/requests/create", s.requireSession(s.handleRequestCreate))
	mux.HandleFunc("/requests/update", s.requireSession(s.handleRequestUpdate))
	mux.HandleFunc("/requests/delete", s.requireSession(s.handleRequestDelete))
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.app.Config.IsProduction() {
		http.Error(w, "Shutdown endpoint disabled in production", http.StatusForbidden)
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
