package middleware

import (
	"Watchlist/internal/auth"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenVerifier проверяет токен сессии.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth пропускает запрос дальше только с валидным "Authorization: Bearer <token>".
// Данные пользователя из токена кладутся в контекст.
func RequireAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				sugar.Debugw("auth: token rejected", "error", err, "path", r.URL.Path)
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims кладёт данные сессии в контекст.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// GetClaimsFromContext достаёт данные сессии из контекста.
func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok && c != nil
}

// GetUserIDFromContext достаёт id пользователя из контекста.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	c, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return c.ID, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
