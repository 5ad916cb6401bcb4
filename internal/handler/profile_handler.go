package handler

import (
	"net/http"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/middleware"
	"github.com/eliteassociate/realty-service/internal/usecase"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profiles *usecase.ProfileUsecase
	logger   *zap.Logger
}

func NewProfileHandler(profiles *usecase.ProfileUsecase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger.Named("ProfileHandler")}
}

func actor(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, found := middleware.UserFromContext(r.Context())
	if !found {
		writeJSON(w, http.StatusUnauthorized, envelope{"success": false, "message": "Authorization token required"})
		return nil, false
	}
	return user, true
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, found := actor(w, r)
	if !found {
		return
	}
	profile, err := h.profiles.Get(r.Context(), user)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Profile fetched successfully", envelope{"profile": profile})
}

type profileUpdateRequest struct {
	FullName string         `json:"fullName"`
	PhoneNo2 string         `json:"phoneNo2"`
	PanNo    string         `json:"panNo"`
	AdharNo  string         `json:"adharNo"`
	Address  entity.Address `json:"address"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, found := actor(w, r)
	if !found {
		return
	}
	var req profileUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	profile, err := h.profiles.Update(r.Context(), user, &entity.Profile{
		FullName: req.FullName,
		PhoneNo2: req.PhoneNo2,
		PanNo:    req.PanNo,
		AdharNo:  req.AdharNo,
		Address:  req.Address,
	})
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Profile updated successfully", envelope{"profile": profile})
}
