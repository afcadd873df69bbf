package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"laptop-gallery/logging"
	"laptop-gallery/models"
	"laptop-gallery/repository"
	"laptop-gallery/utils"
)

// Key type for context
type contextKey string

const ClaimsContextKey = contextKey("claims")

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// UserLookup finds the stored user for an authenticated email.
type UserLookup interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

// Gate holds the checks guarding privileged routes. Authenticate must wrap
// RequireAdmin and RequireSelf.
type Gate struct {
	tokens  TokenVerifier
	users   UserLookup
	timeout time.Duration
}

func NewGate(tokens TokenVerifier, users UserLookup, timeout time.Duration) *Gate {
	return &Gate{tokens: tokens, users: users, timeout: timeout}
}

// WithClaims attaches verified claims to ctx.
func WithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*utils.Claims)
	return claims, ok && claims != nil
}

// Authenticate verifies the bearer token and attaches its claims to the
// request context.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.WriteMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		claims, err := g.tokens.Verify(parts[1])
		if err != nil {
			logging.FromContext(r.Context()).Debug("token rejected", "error", err)
			utils.WriteMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireAdmin lets the request through only when the authenticated
// user's stored role is admin.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			utils.WriteMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx, cancel := utils.StoreContext(r.Context(), g.timeout)
		defer cancel()
		user, err := g.users.ByEmail(ctx, claims.Email)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.WriteMessage(w, http.StatusForbidden, msgForbidden)
			return
		case err != nil:
			logging.FromContext(r.Context()).Error("admin lookup failed", "email", claims.Email, "error", err)
			utils.WriteMessage(w, http.StatusInternalServerError, "internal server error")
			return
		case !user.IsAdmin():
			utils.WriteMessage(w, http.StatusForbidden, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSelf only admits requests whose path variable param equals the
// authenticated email.
func (g *Gate) RequireSelf(param string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				utils.WriteMessage(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			if mux.Vars(r)[param] != claims.Email {
				utils.WriteMessage(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
