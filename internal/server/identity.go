package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

const subjectKey contextKey = "subject"

// identityClaims carries the verified identity of a request. Tokens are
// issued by an external identity provider; this server only verifies them.
type identityClaims struct {
	jwt.RegisteredClaims
}

// verifyToken validates an HS256 bearer token against the shared secret and
// returns its subject.
func verifyToken(tokenString, secret string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("token string is empty")
	}
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// withIdentity verifies an optional Authorization header. Anonymous
// requests pass through; a present but invalid token is rejected.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || s.cfg.JWTSecret == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		subject, err := verifyToken(parts[1], s.cfg.JWTSecret)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestSubject returns the verified subject, or "" for anonymous
// requests.
func requestSubject(r *http.Request) string {
	subject, _ := r.Context().Value(subjectKey).(string)
	return subject
}
