package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"tripsplit-go/internal/auth"
	"tripsplit-go/pkg/logger"
)

const accessTokenCookie = "accessToken"

type contextKey int

const userKey contextKey = iota

// User is the authenticated caller attached to the request context.
type User struct {
	ID    string
	Email string
	Name  string
}

type JWTAuth struct {
	tokens *auth.JWTManager
	log    logger.Logger
}

func NewJWTAuth(tokens *auth.JWTManager, log logger.Logger) *JWTAuth {
	return &JWTAuth{tokens: tokens, log: log}
}

// Middleware validates the access token from the accessToken cookie or the
// Authorization header and puts the caller identity into the context.
func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := tokenFromRequest(r)
		if !ok {
			unauthorized(w, "authorization token required")
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			a.log.BusinessError("auth: token rejected", err, "path", r.URL.Path)
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := WithUser(r.Context(), User{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1], true
	}
	return "", false
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"data":    struct{}{},
		"message": message,
	})
}
