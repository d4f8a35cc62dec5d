package web

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/models"
)

// handleUsers renders the user administration table.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vd := s.newViewData(r, "users.title")

	users, err := s.app.CRM.ListUsers(r.Context())
	if err != nil {
		if crm.IsUnauthorized(err) {
			s.destroySession(w, r)
			return
		}
		s.logger.Error().Err(err).Msg("Users fetch failed")
		vd.Flash = &flashView{Message: vd.T("users.error_fetching"), IsError: true}
	}

	vd.Data = users
	s.render(w, r, http.StatusOK, "users", vd)
}

func userInputFromForm(r *http.Request) models.UserInput {
	return models.UserInput{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
		Role:     r.PostForm.Get("role"),
		Permissions: models.Permissions{
			View:   r.PostForm.Get("perm_view") == "on",
			Add:    r.PostForm.Get("perm_add") == "on",
			Edit:   r.PostForm.Get("perm_edit") == "on",
			Delete: r.PostForm.Get("perm_delete") == "on",
		},
		AssignedCities: splitCSV(r.PostForm.Get("assigned_cities")),
		AssignedAreas:  splitCSV(r.PostForm.Get("assigned_areas")),
	}
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if _, err := s.app.CRM.CreateUser(r.Context(), userInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "users.error_adding", "/users")
		return
	}

	setFlash(w, "users.added", false)
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	id := r.PostForm.Get("id")
	if id == "" {
		http.Error(w, "Missing id", http.StatusBadRequest)
		return
	}

	if _, err := s.app.CRM.UpdateUser(r.Context(), id, userInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "users.error_updating", "/users")
		return
	}

	setFlash(w, "users.updated", false)
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderConfirmDelete(w, r, "users.title", "users.confirm_delete", "/users")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	id := r.PostForm.Get("id")
	if id == "" {
		http.Error(w, "Missing id", http.StatusBadRequest)
		return
	}

	if err := s.app.CRM.DeleteUser(r.Context(), id); err != nil {
		s.failAndRedirect(w, r, err, "users.error_deleting", "/users")
		return
	}

	setFlash(w, "users.deleted", false)
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
