package session

import (
	"context"
	"errors"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	credentialKey contextKey = "session_credential"
	subjectKey    contextKey = "session_subject"
)

// ErrNoCredential means a backend call was attempted without a session
// credential. Calls fail fast with it instead of reaching the network.
var ErrNoCredential = errors.New("no session credential in context")

// WithCredential stores the raw bearer credential in the context. The
// session is explicit injected state: it travels with the request context,
// never through a package-level singleton.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey, token)
}

// Credential returns the bearer credential for the session, or
// ErrNoCredential when the context carries none.
func Credential(ctx context.Context) (string, error) {
	token, ok := ctx.Value(credentialKey).(string)
	if !ok || token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// WithSubject stores the verified token subject (user identity) in the
// context. The subject keys per-user state such as the active draft.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// Subject returns the verified session subject, or an empty string.
func Subject(ctx context.Context) string {
	if subject, ok := ctx.Value(subjectKey).(string); ok {
		return subject
	}
	return ""
}
