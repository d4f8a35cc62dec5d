package web

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/models"
)

// handleLeads renders the leads table. Brokers see every lead but may only
// edit the ones assigned to them; the template consults CanEditLead per row.
func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vd := s.newViewData(r, "leads.title")

	leads, err := s.app.CRM.ListLeads(r.Context())
	if err != nil {
		if crm.IsUnauthorized(err) {
			s.destroySession(w, r)
			return
		}
		s.logger.Error().Err(err).Msg("Leads fetch failed")
		vd.Flash = &flashView{Message: vd.T("leads.error_fetching"), IsError: true}
	}

	vd.Data = leads
	s.render(w, r, http.StatusOK, "leads", vd)
}

func leadInputFromForm(r *http.Request) models.LeadInput {
	return models.LeadInput{
		Name:       strings.TrimSpace(r.PostForm.Get("name")),
		Email:      strings.TrimSpace(r.PostForm.Get("email")),
		Phone:      strings.TrimSpace(r.PostForm.Get("phone")),
		Status:     r.PostForm.Get("status"),
		Source:     r.PostForm.Get("source"),
		AssignedTo: r.PostForm.Get("assigned_to"),
	}
}

func (s *Server) handleLeadCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if _, err := s.app.CRM.CreateLead(r.Context(), leadInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "leads.error_adding", "/leads")
		return
	}

	setFlash(w, "leads.added", false)
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}

func (s *Server) handleLeadUpdate(w http.ResponseWriter, r *http.Request) {
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

	if _, err := s.app.CRM.UpdateLead(r.Context(), id, leadInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "leads.error_updating", "/leads")
		return
	}

	setFlash(w, "leads.updated", false)
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}

func (s *Server) handleLeadDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderConfirmDelete(w, r, "leads.title", "leads.confirm_delete", "/leads")
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

	if err := s.app.CRM.DeleteLead(r.Context(), id); err != nil {
		s.failAndRedirect(w, r, err, "leads.error_deleting", "/leads")
		return
	}

	setFlash(w, "leads.deleted", false)
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}

// handleLeadImport streams an uploaded spreadsheet to the CRM bulk lead
// import endpoint.
func (s *Server) handleLeadImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, importMaxBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		setFlash(w, "leads.import_error", true)
		http.Redirect(w, r, "/leads", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if _, err := s.app.CRM.ImportLeads(r.Context(), header.Filename, file); err != nil {
		s.failAndRedirect(w, r, err, "leads.import_error", "/leads")
		return
	}

	setFlash(w, "leads.import_success", false)
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}
