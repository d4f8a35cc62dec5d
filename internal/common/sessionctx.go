package common

import (
	"context"

	"github.com/bobmcallan/propdesk/internal/models"
)

type contextKey int

const (
	sessionContextKey contextKey = iota
	localeContextKey
)

// WithSession stores the resolved session in the request context. Handlers
// and the CRM client read it from there; nothing else holds a reference, so
// session state stays visible in the call graph instead of being ambient.
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext retrieves the session from context, or nil if anonymous.
func SessionFromContext(ctx context.Context) *models.Session {
	sess, _ := ctx.Value(sessionContextKey).(*models.Session)
	return sess
}

// ResolveToken returns the bearer token of the session in context, or ""
// when the request is anonymous. The CRM client attaches this to every
// outgoing call.
func ResolveToken(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil {
		return sess.Token
	}
	return ""
}

// WithLocale stores the resolved locale ("en" or "ar") in the request context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey, locale)
}

// ResolveLocale returns the locale for the request: the session's preference
// when present, then any locale stored in context, then "en".
func ResolveLocale(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil && sess.Locale != "" {
		return sess.Locale
	}
	if loc, _ := ctx.Value(localeContextKey).(string); loc != "" {
		return loc
	}
	return "en"
}
