package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/pkordes/campground-booking/internal/domain"
)

// Claims is the access token payload. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the authenticated caller stored by Authenticate.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

var errMissingToken = errors.New("missing bearer token")

// Authenticate verifies the HS256 bearer token on every request and stores
// the caller's Principal in the request context. Requests without a valid
// token are rejected with 401. Tokens are issued elsewhere; this service only
// verifies them.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := principalFromRequest(r, parser, keyFunc)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func principalFromRequest(r *http.Request, parser *jwt.Parser, keyFunc jwt.Keyfunc) (domain.Principal, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.Principal{}, errMissingToken
	}

	var claims Claims
	if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, keyFunc); err != nil {
		return domain.Principal{}, err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Principal{}, err
	}
	role := claims.Role
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Principal{UserID: id, Role: role}, nil
}

// RequireRole rejects callers whose role is not one of roles with 403.
// It must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			if !slices.Contains(roles, p.Role) {
				writeError(w, http.StatusForbidden, "User role "+p.Role+" is not authorized to access this route")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
