package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/service"
	"clinical-assistant/pkg/jwt"
	"clinical-assistant/pkg/response"
)

type contextKey string

const (
	SessionKey contextKey = "session"
	TokenIDKey contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService   *jwt.JWTService
	sessionStore service.SessionStore
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionStore service.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Authenticate accepts a bearer token only while its session is still in the store
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		session, err := m.sessionStore.Find(r.Context(), claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if session == nil || session.Username != claims.Username {
			response.Unauthorized(w, "Session has expired or been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, session)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext extracts the authenticated session from context
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	return session, ok && session != nil
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
