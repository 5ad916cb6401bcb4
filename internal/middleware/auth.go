package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/eliteassociate/realty-service/internal/auth"
	"github.com/eliteassociate/realty-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserLoader fetches the live account for a verified token subject. A token
// for a deleted account must not pass the gate.
type UserLoader interface {
	GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error)
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// JWTAuth verifies the Bearer token, re-loads the account and stores the
// sanitized user in the request context.
func JWTAuth(verifier *auth.Issuer, users UserLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.Named("JWTAuth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				deny(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			userID, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					deny(w, http.StatusUnauthorized, "Token has expired")
					return
				}
				deny(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			oid, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			user, err := users.GetByID(ctx, oid)
			if err != nil {
				log.Warn("Token subject no longer resolves to an account", zap.String("userID", userID), zap.Error(err))
				deny(w, http.StatusUnauthorized, "Account not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserCtxKey, user.Sanitized())))
		})
	}
}

// AdminOnly rejects non-admin sessions. It must run after JWTAuth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, "Authorization token required")
			return
		}
		if !user.IsAdmin() {
			deny(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
