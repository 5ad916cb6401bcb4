package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler serves the dashboard. Every route behind it is gated by the
// admin middleware; handlers only translate requests.
type AdminHandler struct {
	admin    *usecase.AdminUsecase
	contacts *usecase.ContactUsecase
	meetings *usecase.MeetingUsecase
	logger   *zap.Logger
}

func NewAdminHandler(admin *usecase.AdminUsecase, contacts *usecase.ContactUsecase, meetings *usecase.MeetingUsecase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, contacts: contacts, meetings: meetings, logger: logger.Named("AdminHandler")}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListClients(r.Context())
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Users fetched successfully", envelope{"users": users, "total": len(users)})
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	user, profile, err := h.admin.GetClient(r.Context(), id)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "User fetched successfully", envelope{"user": user, "profile": profile})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	if err := h.admin.DeleteClient(r.Context(), id); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "User and all associated data deleted successfully", nil)
}

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	items, total, err := h.contacts.List(r.Context(), page, limit)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Contacts fetched successfully", envelope{"contacts": items, "total": total})
}

func (h *AdminHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	contact, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Contact fetched successfully", envelope{"contact": contact})
}

func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Contact deleted successfully", nil)
}

// parseMeetingFilter reads status and date-window query parameters.
func parseMeetingFilter(r *http.Request) entity.MeetingFilter {
	q := r.URL.Query()
	filter := entity.MeetingFilter{
		Status: entity.MeetingStatus(q.Get("status")),
	}
	if v := q.Get("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = t
		}
	}
	if v := q.Get("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = t
		}
	}
	filter.Page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	return filter
}

func (h *AdminHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.meetings.List(r.Context(), parseMeetingFilter(r))
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Meetings fetched successfully", envelope{"meetings": items, "total": total})
}

func (h *AdminHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	meeting, err := h.meetings.Get(r.Context(), id)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Meeting fetched successfully", envelope{"meeting": meeting})
}

type meetingStatusRequest struct {
	Status string `json:"meetingStatus"`
}

func (h *AdminHandler) UpdateMeetingStatus(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	var req meetingStatusRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.meetings.UpdateStatus(r.Context(), id, entity.MeetingStatus(req.Status)); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Meeting status updated successfully", nil)
}

func (h *AdminHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	if err := h.meetings.Delete(r.Context(), id); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Meeting deleted successfully", nil)
}
