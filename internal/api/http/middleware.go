package http

import (
	"context"
	"net/http"
	"strings"

	"porchlight-backend/internal/security"
)

type contextKey string

const userContextKey contextKey = "user_claims"

// AuthMiddleware validates the bearer token and stores the claims in the
// request context.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tokenManager security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tokenManager}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondWithError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil || claims.Type != security.TokenTypeAccess {
			respondWithError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID returns the authenticated user's id from the request context.
func callerID(r *http.Request) int32 {
	claims, _ := r.Context().Value(userContextKey).(*security.UserClaims)
	if claims == nil {
		return 0
	}
	return claims.UserID
}
