package http

import (
	"clinic-booking/common/errs"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "request timeout")
	}
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AuthClaims carries the caller identity. Subject is the customer or staff id
// assigned by the identity provider.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

type claimsCtxKeyType struct{}

var claimsCtxKey = claimsCtxKeyType{}

func AuthMiddleware(secret []byte, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeErrorResponse(w, &errs.HttpError{Code: http.StatusUnauthorized, Message: "Missing bearer token"})
				return
			}

			claims := &AuthClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				writeErrorResponse(w, &errs.HttpError{Code: http.StatusUnauthorized, Message: "Invalid token"})
				return
			}

			if role != "" && claims.Role != role {
				writeErrorResponse(w, &errs.HttpError{Code: http.StatusForbidden, Message: "Forbidden"})
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsCtxKey, claims)))
		})
	}
}

func ClaimsFromCtx(ctx context.Context) *AuthClaims {
	claims, _ := ctx.Value(claimsCtxKey).(*AuthClaims)
	return claims
}
