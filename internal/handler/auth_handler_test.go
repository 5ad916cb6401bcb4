package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eliteassociate/realty-service/internal/auth"
	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/otp"
	"github.com/eliteassociate/realty-service/internal/repository"
	"github.com/eliteassociate/realty-service/internal/usecase"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Stub stores backing a real AuthUsecase, so the tests exercise the full
// handler-to-usecase path over HTTP.

type stubUserStore struct {
	usecase.UserStore
	byEmail   map[string]*entity.User
	createErr error
}

func (s *stubUserStore) Create(_ context.Context, user *entity.User) (primitive.ObjectID, error) {
	if s.createErr != nil {
		return primitive.NilObjectID, s.createErr
	}
	id := primitive.NewObjectID()
	user.ID = id
	return id, nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, found := s.byEmail[email]; found {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) SetOTP(context.Context, primitive.ObjectID, otp.Purpose, string, time.Time) error {
	return nil
}

func (s *stubUserStore) ClearOTP(context.Context, primitive.ObjectID, otp.Purpose) error {
	return nil
}

type stubProfileStore struct {
	usecase.ProfileStore
}

func (s *stubProfileStore) Create(_ context.Context, profile *entity.Profile) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	profile.ID = id
	return id, nil
}

type stubMailer struct{ err error }

func (s *stubMailer) SendOTP(string, string, string, otp.Purpose) error { return s.err }

func newAuthServer(users *stubUserStore, m *stubMailer) *AuthHandler {
	uc := usecase.NewAuthUsecase(users, &stubProfileStore{}, m, auth.NewIssuer("test-secret", time.Hour), zap.NewNop())
	return NewAuthHandler(uc, zap.NewNop())
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	return payload
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		h := newAuthServer(&stubUserStore{byEmail: map[string]*entity.User{}}, &stubMailer{})
		rec := postJSON(h.Signup, `{"fullName":"Jane Doe","email":"jane@example.com","phoneNo":"9876543210","password":"secret123"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, true, payload["success"])
		assert.NotNil(t, payload["user"])
		assert.NotNil(t, payload["profile"])
	})

	t.Run("MailFailureStillCreated", func(t *testing.T) {
		h := newAuthServer(&stubUserStore{byEmail: map[string]*entity.User{}}, &stubMailer{err: assert.AnError})
		rec := postJSON(h.Signup, `{"fullName":"Jane Doe","email":"jane@example.com","phoneNo":"9876543210","password":"secret123"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, true, payload["success"])
		assert.Contains(t, payload["message"], "could not be sent")
	})

	t.Run("DuplicateEmailConflict", func(t *testing.T) {
		h := newAuthServer(&stubUserStore{createErr: repository.ErrDuplicateEmail}, &stubMailer{})
		rec := postJSON(h.Signup, `{"fullName":"Jane Doe","email":"jane@example.com","phoneNo":"9876543210","password":"secret123"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, false, payload["success"])
	})

	t.Run("ValidationBadRequest", func(t *testing.T) {
		h := newAuthServer(&stubUserStore{byEmail: map[string]*entity.User{}}, &stubMailer{})
		rec := postJSON(h.Signup, `{"fullName":"Jane Doe","email":"nope","phoneNo":"9876543210","password":"secret123"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		h := newAuthServer(&stubUserStore{byEmail: map[string]*entity.User{}}, &stubMailer{})
		rec := postJSON(h.Signup, `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	account := &entity.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: string(hash),
		Role:     entity.RoleClient,
	}
	users := &stubUserStore{byEmail: map[string]*entity.User{"jane@example.com": account}}
	h := newAuthServer(users, &stubMailer{})

	t.Run("Success", func(t *testing.T) {
		rec := postJSON(h.Login, `{"email":"jane@example.com","password":"secret123"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		payload := decodeBody(t, rec)
		assert.NotEmpty(t, payload["token"])
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := postJSON(h.Login, `{"email":"jane@example.com","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("UnknownEmailSameStatus", func(t *testing.T) {
		rec := postJSON(h.Login, `{"email":"nobody@example.com","password":"secret123"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		payload := decodeBody(t, rec)
		wrong := postJSON(h.Login, `{"email":"jane@example.com","password":"wrong"}`)
		assert.Equal(t, decodeBody(t, wrong)["message"], payload["message"])
	})
}

func TestAuthHandler_OTPEndpoints(t *testing.T) {
	now := time.Now()
	account := &entity.User{
		ID:        primitive.NewObjectID(),
		Email:     "jane@example.com",
		VerifyOTP: &entity.OTPChallenge{Code: "123456", ExpiresAt: now.Add(otp.TTL)},
		ResetOTP:  &entity.OTPChallenge{Code: "999999", ExpiresAt: now.Add(-time.Minute)},
	}
	users := &stubUserStore{byEmail: map[string]*entity.User{"jane@example.com": account}}
	h := newAuthServer(users, &stubMailer{})

	t.Run("VerifyEmailSuccess", func(t *testing.T) {
		rec := postJSON(h.VerifyEmailOTP, `{"email":"jane@example.com","otp":"123456"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("VerifyEmailWrongCode", func(t *testing.T) {
		rec := postJSON(h.VerifyEmailOTP, `{"email":"jane@example.com","otp":"000000"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ExpiredResetCode", func(t *testing.T) {
		rec := postJSON(h.VerifyResetOTP, `{"email":"jane@example.com","otp":"999999"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})

	t.Run("UnknownEmailNotFound", func(t *testing.T) {
		rec := postJSON(h.ForgotPassword, `{"email":"nobody@example.com"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
