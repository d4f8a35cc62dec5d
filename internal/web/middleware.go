package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/i18n"
	"github.com/bobmcallan/propdesk/internal/interfaces"
	"github.com/bobmcallan/propdesk/internal/session"
)

// responseWriter wraps http.ResponseWriter to capture status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// recoveryMiddleware catches panics and returns 500.
func recoveryMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("panic", fmt.Sprintf("%v", rec)).
						Str("path", r.URL.Path).
						Msg("Panic recovered in HTTP handler")
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// correlationIDMiddleware extracts or generates a correlation ID.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get("X-Request-ID")
		if corrID == "" {
			corrID = uuid.New().String()[:8]
		}
		w.Header().Set("X-Correlation-ID", corrID)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			dur := time.Since(start)
			corrID := w.Header().Get("X-Correlation-ID")

			event := logger.Trace()
			if rw.statusCode >= 500 {
				event = logger.Error()
			} else if rw.statusCode >= 400 {
				event = logger.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Int("bytes", rw.bytesWritten).
				Dur("duration", dur).
				Str("correlation_id", corrID).
				Msg("HTTP request")
		})
	}
}

// localeMiddleware resolves the request locale from the anonymous locale
// cookie and stores it in the request context. An authenticated session's
// own preference, when present, wins over this at resolution time.
func localeMiddleware(config *common.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := config.Locale.Default
			if c, err := r.Cookie(localeCookieName); err == nil && i18n.IsSupported(c.Value) {
				locale = c.Value
			}
			next.ServeHTTP(w, r.WithContext(common.WithLocale(r.Context(), locale)))
		})
	}
}

// sessionMiddleware resolves the session cookie into a session object and
// injects it into the request context. A cookie whose session has not been
// restored since process start blocks here on the who-am-I call; a cookie
// that fails validation or restoration is cleared so the request proceeds
// anonymously.
func sessionMiddleware(config *common.Config, store interfaces.SessionStore) func(http.Handler) http.Handler {
	secret := []byte(config.Sessions.Secret)
	cookieName := config.Sessions.CookieName

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sessionID, err := session.DecodeCookie(cookie.Value, secret)
			if err != nil {
				clearCookie(w, cookieName)
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Restore(r.Context(), sessionID)
			if err != nil {
				clearCookie(w, cookieName)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(common.WithSession(r.Context(), sess)))
		})
	}
}

// requireSession is the authorization gate for protected routes: anonymous
// requests are redirected to the login view. No role-based blocking happens
// here: menu and action visibility is role-gated in the views, and the
// remote API independently enforces authorization on every call.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if common.SessionFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// applyMiddleware wraps a handler with the middleware stack.
func applyMiddleware(handler http.Handler, logger *common.Logger, config *common.Config, store interfaces.SessionStore) http.Handler {
	// Apply in reverse order (last applied = first executed)
	handler = loggingMiddleware(logger)(handler)
	handler = correlationIDMiddleware(handler)
	handler = sessionMiddleware(config, store)(handler)
	handler = localeMiddleware(config)(handler)
	handler = recoveryMiddleware(logger)(handler)
	return handler
}
