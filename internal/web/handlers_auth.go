package web

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/models"
)

// handleLogin renders the login form and exchanges credentials for a CRM
// bearer token. A successful login creates a server-side session and issues
// the signed session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if common.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	vd := s.newViewData(r, "login.title")

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, http.StatusOK, "login", vd)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostForm.Get("email"))
		password := r.PostForm.Get("password")

		vd.Form = r.PostForm
		if email == "" {
			vd.Errors["email"] = vd.T("errors.required")
		}
		if password == "" {
			vd.Errors["password"] = vd.T("errors.required")
		}
		if len(vd.Errors) > 0 {
			s.render(w, r, http.StatusUnprocessableEntity, "login", vd)
			return
		}

		token, user, err := s.app.CRM.Login(r.Context(), email, password)
		if err != nil {
			s.logger.Info().Str("email", email).Err(err).Msg("Login rejected")
			vd.Flash = &flashView{Message: vd.T("login.invalid"), IsError: true}
			s.render(w, r, http.StatusUnauthorized, "login", vd)
			return
		}

		sess, err := s.app.Sessions.Create(token, user, common.ResolveLocale(r.Context()))
		if err != nil {
			s.logger.Error().Err(err).Msg("Session create failed")
			vd.Flash = &flashView{Message: vd.T("errors.server"), IsError: true}
			s.render(w, r, http.StatusInternalServerError, "login", vd)
			return
		}
		if err := s.setSessionCookie(w, sess.ID); err != nil {
			s.logger.Error().Err(err).Msg("Session cookie encode failed")
			s.app.Sessions.Delete(sess.ID)
			vd.Flash = &flashView{Message: vd.T("errors.server"), IsError: true}
			s.render(w, r, http.StatusInternalServerError, "login", vd)
			return
		}

		s.logger.Info().Str("user", user.Username).Str("role", user.Role).Msg("User logged in")
		http.Redirect(w, r, "/dashboard", http.StatusFound)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSignup renders the public signup form and creates a new account via
// the CRM API. The issued token logs the new account straight in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if common.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	vd := s.newViewData(r, "signup.title")

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, http.StatusOK, "signup", vd)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		vd.Form = r.PostForm

		input := models.SignupInput{
			Username:     strings.TrimSpace(r.PostForm.Get("username")),
			Email:        strings.TrimSpace(r.PostForm.Get("email")),
			Password:     r.PostForm.Get("password"),
			Type:         r.PostForm.Get("type"),
			Plan:         r.PostForm.Get("plan"),
			BillingCycle: r.PostForm.Get("billing_cycle"),
		}

		if input.Username == "" {
			vd.Errors["username"] = vd.T("errors.required")
		}
		if input.Email == "" {
			vd.Errors["email"] = vd.T("errors.required")
		} else if !isValidEmail(input.Email) {
			vd.Errors["email"] = vd.T("errors.email_invalid")
		}
		if input.Password == "" {
			vd.Errors["password"] = vd.T("errors.required")
		}
		if len(vd.Errors) > 0 {
			s.render(w, r, http.StatusUnprocessableEntity, "signup", vd)
			return
		}

		token, user, err := s.app.CRM.Signup(r.Context(), input)
		if err != nil {
			s.logger.Info().Str("email", input.Email).Err(err).Msg("Signup rejected")
			vd.Flash = &flashView{Message: vd.T("signup.error"), IsError: true}
			s.render(w, r, http.StatusUnprocessableEntity, "signup", vd)
			return
		}

		sess, err := s.app.Sessions.Create(token, user, common.ResolveLocale(r.Context()))
		if err != nil {
			s.logger.Error().Err(err).Msg("Session create failed")
			vd.Flash = &flashView{Message: vd.T("errors.server"), IsError: true}
			s.render(w, r, http.StatusInternalServerError, "signup", vd)
			return
		}
		if err := s.setSessionCookie(w, sess.ID); err != nil {
			s.logger.Error().Err(err).Msg("Session cookie encode failed")
			s.app.Sessions.Delete(sess.ID)
			vd.Flash = &flashView{Message: vd.T("errors.server"), IsError: true}
			s.render(w, r, http.StatusInternalServerError, "signup", vd)
			return
		}

		setFlash(w, "signup.success", false)
		http.Redirect(w, r, "/dashboard", http.StatusFound)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLogout drops the session and its cookie. Logout is local only: the
// CRM token is discarded, not revoked upstream.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.destroySession(w, r)
}
