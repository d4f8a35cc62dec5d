package web

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/i18n"
	"github.com/bobmcallan/propdesk/internal/models"
)

// handleLanding serves the marketing landing page. Registered on "/", so it
// also owns the not-found response for unmatched paths.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.render(w, r, http.StatusOK, "landing", s.newViewData(r, "app.name"))
}

// handleStaticPage returns a handler for a content-only marketing page.
func (s *Server) handleStaticPage(page, titleKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.render(w, r, http.StatusOK, page, s.newViewData(r, titleKey))
	}
}

// handleContact handles the landing page lead-capture form. Submissions are
// forwarded to the public leads endpoint with a fixed source tag; no
// authentication is involved.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	vd := s.newViewData(r, "app.name")
	vd.Form = r.PostForm

	input := models.LeadInput{
		Name:   strings.TrimSpace(r.PostForm.Get("name")),
		Email:  strings.TrimSpace(r.PostForm.Get("email")),
		Phone:  strings.TrimSpace(r.PostForm.Get("phone")),
		Source: "website",
	}

	if input.Name == "" {
		vd.Errors["name"] = vd.T("errors.required")
	}
	if input.Email == "" {
		vd.Errors["email"] = vd.T("errors.required")
	} else if !isValidEmail(input.Email) {
		vd.Errors["email"] = vd.T("errors.email_invalid")
	}
	if len(vd.Errors) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "landing", vd)
		return
	}

	if err := s.app.CRM.SubmitLead(r.Context(), input); err != nil {
		s.logger.Error().Err(err).Msg("Lead capture submit failed")
		vd.Flash = &flashView{Message: vd.T("landing.form_error"), IsError: true}
		s.render(w, r, http.StatusBadGateway, "landing", vd)
		return
	}

	// Fields reset after a successful submission.
	vd.Form = nil
	vd.Flash = &flashView{Message: vd.T("landing.form_success")}
	s.render(w, r, http.StatusOK, "landing", vd)
}

// handleDemo renders the demo request form and forwards submissions to the
// contacts endpoint.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	vd := s.newViewData(r, "demo.title")

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, http.StatusOK, "demo", vd)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		vd.Form = r.PostForm

		input := models.Contact{
			FirstName:   strings.TrimSpace(r.PostForm.Get("first_name")),
			LastName:    strings.TrimSpace(r.PostForm.Get("last_name")),
			Email:       strings.TrimSpace(r.PostForm.Get("email")),
			Phone:       strings.TrimSpace(r.PostForm.Get("phone")),
			CompanyName: strings.TrimSpace(r.PostForm.Get("company_name")),
			CompanySize: r.PostForm.Get("company_size"),
			Country:     strings.TrimSpace(r.PostForm.Get("country")),
		}

		required := map[string]string{
			"first_name":   input.FirstName,
			"last_name":    input.LastName,
			"email":        input.Email,
			"phone":        input.Phone,
			"company_name": input.CompanyName,
		}
		for field, value := range required {
			if value == "" {
				vd.Errors[field] = vd.T("errors.required")
			}
		}
		if input.Email != "" && !isValidEmail(input.Email) {
			vd.Errors["email"] = vd.T("errors.email_invalid")
		}
		if len(vd.Errors) > 0 {
			s.render(w, r, http.StatusUnprocessableEntity, "demo", vd)
			return
		}

		if err := s.app.CRM.SubmitContact(r.Context(), input); err != nil {
			s.logger.Error().Err(err).Msg("Demo request submit failed")
			vd.Flash = &flashView{Message: vd.T("demo.error"), IsError: true}
			s.render(w, r, http.StatusBadGateway, "demo", vd)
			return
		}

		vd.Form = nil
		vd.Flash = &flashView{Message: vd.T("demo.success")}
		s.render(w, r, http.StatusOK, "demo", vd)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLangSwitch handles GET /lang/{code}: it persists the locale choice
// in the anonymous cookie and, when a session exists, on the session itself,
// then bounces back to where the user was.
func (s *Server) handleLangSwitch(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimPrefix(r.URL.Path, "/lang/")
	if !i18n.IsSupported(code) {
		http.NotFound(w, r)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     localeCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   365 * 24 * 3600,
		HttpOnly: true,
	})

	if sess := common.SessionFromContext(r.Context()); sess != nil {
		if err := s.app.Sessions.SetLocale(sess.ID, code); err != nil {
			s.logger.Error().Err(err).Str("session", sess.ID).Msg("Locale persist failed")
		}
	}

	http.Redirect(w, r, safeReturnPath(r), http.StatusFound)
}

// safeReturnPath picks the post-switch redirect target: the "next" query
// parameter when it is a local path, otherwise the landing page. Absolute
// URLs are rejected to keep this from becoming an open redirect.
func safeReturnPath(r *http.Request) string {
	next := r.URL.Query().Get("next")
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
