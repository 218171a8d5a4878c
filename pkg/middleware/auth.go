package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
)

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(raw string, kind auth.TokenKind) (string, error)
}

type subjectKey struct{}

// Authenticate requires a bearer token of the given kind and stores its
// subject on the request context. Lookup of the subject is left to the
// handler.
func Authenticate(v TokenVerifier, kind auth.TokenKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				response.Unauthorized(w, "Authentication credentials were not provided")
				return
			}

			subject, err := v.Verify(raw, kind)
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					msg = "Token has expired"
				}
				response.Unauthorized(w, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

// WithSubject stores a verified token subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromCtx returns the subject stored by Authenticate.
func SubjectFromCtx(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok && s != ""
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
