package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eliteassociate/realty-service/internal/otp"
	"github.com/eliteassociate/realty-service/internal/repository"
	"github.com/eliteassociate/realty-service/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// envelope is the response shape shared by every endpoint. Extra payload
// fields ride alongside success and message.
type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func ok(w http.ResponseWriter, status int, message string, extra envelope) {
	payload := envelope{"success": true, "message": message}
	for k, v := range extra {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}

// fail translates domain errors to HTTP statuses. Unexpected errors are
// logged and masked with a generic 500.
func fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, otp.ErrInvalidCode),
		errors.Is(err, otp.ErrExpired):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, usecase.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, repository.ErrPropertyNotFound),
		errors.Is(err, repository.ErrContactNotFound),
		errors.Is(err, repository.ErrMeetingNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicatePhoneNumber),
		errors.Is(err, usecase.ErrMeetingConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, usecase.ErrMailDelivery):
		status, message = http.StatusInternalServerError, err.Error()
	default:
		logger.Error("Unhandled error", zap.Error(err))
	}

	writeJSON(w, status, envelope{"success": false, "message": message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{"success": false, "message": message})
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "Invalid request body")
		return false
	}
	return true
}

// pathID parses the {id} chi URL parameter into an ObjectID.
func pathID(w http.ResponseWriter, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		badRequest(w, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
