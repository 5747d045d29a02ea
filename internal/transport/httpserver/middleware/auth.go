package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"profile-app-go/internal/config"
	"profile-app-go/pkg/logger"
)

// JWTAuth verifies the bearer token on each request and resolves the caller
// to an email address. Downstream handlers only ever see the email.
type JWTAuth struct {
	secret    []byte
	skipAuth  bool
	mockEmail string
	log       logger.Logger
}

type contextKey int

const emailKey contextKey = iota

func NewJWTAuth(cfg config.AuthConfig, log logger.Logger) *JWTAuth {
	return &JWTAuth{
		secret:    []byte(cfg.JWTSecret),
		skipAuth:  cfg.SkipAuth,
		mockEmail: strings.TrimSpace(cfg.MockUserEmail),
		log:       log,
	}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockEmail == "" {
				writeAuthError(w, http.StatusInternalServerError, "auth mock user email not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), a.mockEmail)))
			return
		}

		if len(a.secret) == 0 {
			writeAuthError(w, http.StatusInternalServerError, "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		email, err := a.verify(token)
		if err != nil {
			a.log.BusinessError("auth: token rejected", err)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
	})
}

func (a *JWTAuth) verify(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return email, nil
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

func unauthorized(w http.ResponseWriter) {
	writeAuthError(w, http.StatusUnauthorized, "invalid token")
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
