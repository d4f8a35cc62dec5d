package web

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/models"
)

// handleRequests renders the service request table.
func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vd := s.newViewData(r, "requests.title")

	requests, err := s.app.CRM.ListRequests(r.Context())
	if err != nil {
		if crm.IsUnauthorized(err) {
			s.destroySession(w, r)
			return
		}
		s.logger.Error().Err(err).Msg("Requests fetch failed")
		vd.Flash = &flashView{Message: vd.T("requests.error_fetching"), IsError: true}
	}

	vd.Data = requests
	s.render(w, r, http.StatusOK, "requests", vd)
}

func requestInputFromForm(r *http.Request) models.RequestInput {
	return models.RequestInput{
		PropertyID:  r.PostForm.Get("property_id"),
		ClientName:  strings.TrimSpace(r.PostForm.Get("client_name")),
		ClientPhone: strings.TrimSpace(r.PostForm.Get("client_phone")),
		ClientEmail: strings.TrimSpace(r.PostForm.Get("client_email")),
		RequestType: r.PostForm.Get("request_type"),
		Status:      r.PostForm.Get("status"),
	}
}

func (s *Server) handleRequestCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if _, err := s.app.CRM.CreateRequest(r.Context(), requestInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "requests.error_adding", "/requests")
		return
	}

	setFlash(w, "requests.added", false)
	http.Redirect(w, r, "/requests", http.StatusSeeOther)
}

func (s *Server) handleRequestUpdate(w http.ResponseWriter, r *http.Request) {
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

	if _, err := s.app.CRM.UpdateRequest(r.Context(), id, requestInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "requests.error_updating", "/requests")
		return
	}

	setFlash(w, "requests.updated", false)
	http.Redirect(w, r, "/requests", http.StatusSeeOther)
}

func (s *Server) handleRequestDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderConfirmDelete(w, r, "requests.title", "requests.confirm_delete", "/requests")
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

	if err := s.app.CRM.DeleteRequest(r.Context(), id); err != nil {
		s.failAndRedirect(w, r, err, "requests.error_deleting", "/requests")
		return
	}

	setFlash(w, "requests.deleted", false)
	http.Redirect(w, r, "/requests", http.StatusSeeOther)
}
