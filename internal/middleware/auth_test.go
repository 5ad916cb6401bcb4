package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eliteassociate/realty-service/internal/auth"
	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockUserLoader struct{ mock.Mock }

func (m *mockUserLoader) GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func authedHandler(t *testing.T, wantID primitive.ObjectID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantID, user.ID)
		assert.Empty(t, user.Password)
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	userID := primitive.NewObjectID()
	account := &entity.User{ID: userID, Email: "jane@example.com", Password: "hash", Role: entity.RoleClient}

	t.Run("ValidToken", func(t *testing.T) {
		loader := new(mockUserLoader)
		loader.On("GetByID", mock.Anything, userID).Return(account, nil).Once()
		token, err := issuer.Issue(userID.Hex())
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		JWTAuth(issuer, loader, zap.NewNop())(authedHandler(t, userID)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		loader := new(mockUserLoader)
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		rec := httptest.NewRecorder()

		JWTAuth(issuer, loader, zap.NewNop())(authedHandler(t, userID)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Authorization token required")
	})

	t.Run("MalformedToken", func(t *testing.T) {
		loader := new(mockUserLoader)
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		JWTAuth(issuer, loader, zap.NewNop())(authedHandler(t, userID)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		loader := new(mockUserLoader)
		expired, err := auth.NewIssuer("test-secret", -time.Minute).Issue(userID.Hex())
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		rec := httptest.NewRecorder()

		JWTAuth(issuer, loader, zap.NewNop())(authedHandler(t, userID)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})

	t.Run("DeletedAccount", func(t *testing.T) {
		loader := new(mockUserLoader)
		loader.On("GetByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound).Once()
		token, err := issuer.Issue(userID.Hex())
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		JWTAuth(issuer, loader, zap.NewNop())(authedHandler(t, userID)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("AdminPasses", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		ctx := context.WithValue(req.Context(), UserCtxKey, &entity.User{Role: entity.RoleAdmin})
		rec := httptest.NewRecorder()

		AdminOnly(next).ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ClientForbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		ctx := context.WithValue(req.Context(), UserCtxKey, &entity.User{Role: entity.RoleClient})
		rec := httptest.NewRecorder()

		AdminOnly(next).ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("NoSessionUnauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		rec := httptest.NewRecorder()

		AdminOnly(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
