package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userHolderKey
)

// userHolder lets the request logger, which runs before authentication,
// see the user ID that authentication resolves further down the chain.
type userHolder struct {
	id string
}

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey, h)
}

// supabaseAudience is the "aud" claim the hosted auth service puts on
// access tokens of signed-in users.
const supabaseAudience = "authenticated"

// supabaseClaims are the access-token claims the API relies on.
type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SupabaseAuth verifies access tokens issued by the hosted auth service.
// Tokens are HS256-signed with the project's JWT secret; the "sub" claim is
// the user's UUID.
type SupabaseAuth struct {
	secret []byte
	parser *jwt.Parser
}

// NewSupabaseAuth constructs a SupabaseAuth that checks signatures with secret.
func NewSupabaseAuth(secret string) *SupabaseAuth {
	return &SupabaseAuth{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithAudience(supabaseAudience),
			jwt.WithExpirationRequired(),
		),
	}
}

// Middleware rejects requests without a valid bearer token with 401 and
// stores the authenticated user ID in the request context otherwise.
func (a *SupabaseAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, "authorization token required")
			return
		}

		userID, err := a.verify(token)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		if h, ok := r.Context().Value(userHolderKey).(*userHolder); ok {
			h.id = userID.String()
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (a *SupabaseAuth) verify(token string) (uuid.UUID, error) {
	var claims supabaseClaims
	_, err := a.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if claims.Subject == "" {
		return uuid.Nil, errors.New("token has no subject")
	}
	return uuid.Parse(claims.Subject)
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, "unauthorized", message)
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the authenticated user ID stored by Middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
