package handler

import (
	"net/http"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contacts *usecase.ContactUsecase
	meetings *usecase.MeetingUsecase
	logger   *zap.Logger
}

func NewContactHandler(contacts *usecase.ContactUsecase, meetings *usecase.MeetingUsecase, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, meetings: meetings, logger: logger.Named("ContactHandler")}
}

type contactRequest struct {
	FullName      string `json:"fullName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Description   string `json:"description"`
	PropertyID    string `json:"propertyId"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decode(w, r, &req) {
		return
	}

	contact := &entity.Contact{
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Description:   req.Description,
	}
	if req.PropertyID != "" {
		id, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			badRequest(w, "Invalid propertyId")
			return
		}
		contact.PropertyID = &id
	}

	created, err := h.contacts.Submit(r.Context(), contact)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusCreated, "Your inquiry has been submitted successfully", envelope{"contact": created})
}

type meetingRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Date       string `json:"date"`
	Place      string `json:"place"`
	PropertyID string `json:"propertyId"`
}

func (h *ContactHandler) ScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if !decode(w, r, &req) {
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		// Date-only input is accepted too.
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			badRequest(w, "Invalid date; use RFC3339 or YYYY-MM-DD")
			return
		}
	}

	meeting := &entity.Meeting{
		Name:  req.Name,
		Email: req.Email,
		Date:  date,
		Place: req.Place,
	}
	if req.PropertyID != "" {
		id, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			badRequest(w, "Invalid propertyId")
			return
		}
		meeting.PropertyID = &id
	}

	created, err := h.meetings.Schedule(r.Context(), meeting)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusCreated, "Meeting scheduled successfully", envelope{"meeting": created})
}
