package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/i18n"
	"github.com/bobmcallan/propdesk/internal/models"
	"github.com/bobmcallan/propdesk/internal/session"
)

func sessionCookieValue(sessionID string, cfg common.SessionsConfig) (string, error) {
	return session.EncodeCookie(sessionID, []byte(cfg.Secret), cfg.GetTTL())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

const (
	localeCookieName = "propdesk_locale"
	flashCookieName  = "propdesk_flash"
)

// flashView is a one-shot localized message surfaced on the next render.
type flashView struct {
	Message string
	IsError bool
}

// viewData is the explicit per-render context handed to every template:
// the session, the locale, the flash, and the page payload. Templates never
// reach into ambient state.
type viewData struct {
	Title      string
	Lang       string
	Dir        string
	ReturnPath string
	Session    *models.Session
	Flash      *flashView
	Data       interface{}
	Form       url.Values
	Errors     map[string]string

	translate func(id string, data map[string]interface{}) string
}

// T resolves a message key in the view's locale.
func (v *viewData) T(id string) string {
	return v.translate(id, nil)
}

// TArg resolves a message key with one template argument.
func (v *viewData) TArg(id, key, value string) string {
	return v.translate(id, map[string]interface{}{key: value})
}

// Can reports whether the session role holds a capability. Anonymous
// sessions hold none.
func (v *viewData) Can(cap string) bool {
	return v.Session.Role().Can(models.Capability(cap))
}

// CanEditLead reports whether the session may edit a lead assigned to the
// given user id.
func (v *viewData) CanEditLead(assignedTo string) bool {
	userID := ""
	if v.Session != nil && v.Session.User != nil {
		userID = v.Session.User.ID
	}
	return v.Session.Role().CanEditLead(userID, assignedTo)
}

// Field returns a submitted form value for re-rendering after a validation
// failure.
func (v *viewData) Field(name string) string {
	if v.Form == nil {
		return ""
	}
	return v.Form.Get(name)
}

// Err returns the inline validation message for a field, or "".
func (v *viewData) Err(name string) string {
	return v.Errors[name]
}

// newViewData builds the render context for the current request.
func (s *Server) newViewData(r *http.Request, titleKey string) *viewData {
	locale := common.ResolveLocale(r.Context())
	translate := s.app.I18n.Translator(locale)

	return &viewData{
		Title:      translate(titleKey, nil),
		Lang:       locale,
		Dir:        i18n.Dir(locale),
		ReturnPath: r.URL.Path,
		Session:    common.SessionFromContext(r.Context()),
		Errors:     map[string]string{},
		translate:  translate,
	}
}

// render writes a page template wrapped in the layout.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, vd *viewData) {
	if vd.Flash == nil {
		vd.Flash = s.popFlash(w, r, vd)
	}

	tmpl, ok := s.templates.pages[page]
	if !ok {
		s.logger.Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", vd); err != nil {
		s.logger.Error().Err(err).Str("page", page).Msg("Template render failed")
	}
}

// setFlash stores a message key in a one-shot cookie, surfaced localized on
// the next render.
func setFlash(w http.ResponseWriter, key string, isError bool) {
	value := key
	if isError {
		value = "!" + key
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// popFlash reads and clears the flash cookie.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request, vd *viewData) *flashView {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	clearCookie(w, flashCookieName)

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil || value == "" {
		return nil
	}

	isError := strings.HasPrefix(value, "!")
	key := strings.TrimPrefix(value, "!")
	return &flashView{Message: vd.translate(key, nil), IsError: isError}
}

// setSessionCookie issues the signed session cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, sessionID string) error {
	cfg := s.app.Config.Sessions
	value, err := sessionCookieValue(sessionID, cfg)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cfg.GetTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.app.Config.IsProduction(),
	})
	return nil
}

// destroySession removes the session and its cookie, then redirects to the
// login view. Used for logout and for upstream authorization failures.
func (s *Server) destroySession(w http.ResponseWriter, r *http.Request) {
	if sess := common.SessionFromContext(r.Context()); sess != nil {
		s.app.Sessions.Delete(sess.ID)
	}
	clearCookie(w, s.app.Config.Sessions.CookieName)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// confirmView is the payload for the delete confirmation page.
type confirmView struct {
	Action  string // form post target
	ID      string
	Message string // localized confirmation prompt
	Cancel  string // where "cancel" returns to
}

// renderConfirmDelete shows the confirmation prompt before a destructive
// action. The confirming form posts back to the same path.
func (s *Server) renderConfirmDelete(w http.ResponseWriter, r *http.Request, titleKey, messageKey, cancel string) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, cancel, http.StatusSeeOther)
		return
	}
	vd := s.newViewData(r, titleKey)
	vd.Data = confirmView{
		Action:  r.URL.Path,
		ID:      id,
		Message: vd.T(messageKey),
		Cancel:  cancel,
	}
	s.render(w, r, http.StatusOK, "confirm_delete", vd)
}

// failAndRedirect is the shared mutation failure path: an authorization
// failure from the upstream tears the session down, anything else becomes an
// error flash on the view the user came from.
func (s *Server) failAndRedirect(w http.ResponseWriter, r *http.Request, err error, flashKey, target string) {
	if crm.IsUnauthorized(err) {
		s.destroySession(w, r)
		return
	}
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Upstream call failed")
	setFlash(w, flashKey, true)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// isValidEmail performs a minimal shape check: something, an @, something,
// a dot, something. The remote API applies the authoritative validation.
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
