package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MeetingUsecase schedules site visits. Booking is open to the public;
// listing and status changes are admin operations enforced at the router.
type MeetingUsecase struct {
	meetings MeetingStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewMeetingUsecase(meetings MeetingStore, logger *zap.Logger) *MeetingUsecase {
	return &MeetingUsecase{
		meetings: meetings,
		logger:   logger.Named("MeetingUsecase"),
		now:      time.Now,
	}
}

// Schedule books a visit. The date must be in the future and the slot must
// be free: at most one scheduled meeting per place per calendar day.
func (u *MeetingUsecase) Schedule(ctx context.Context, m *entity.Meeting) (*entity.Meeting, error) {
	if err := validateFullName(m.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(m.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(m.Place) == "" {
		return nil, fmt.Errorf("%w: place is required", ErrValidation)
	}
	if !m.Date.After(u.now()) {
		return nil, fmt.Errorf("%w: meeting date must be in the future", ErrValidation)
	}

	conflict, err := u.meetings.HasScheduledConflict(ctx, m.Date, m.Place)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrMeetingConflict
	}

	m.Status = entity.MeetingScheduled
	id, err := u.meetings.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	u.logger.Info("Meeting scheduled", zap.String("meetingID", id.Hex()), zap.String("place", m.Place))
	return m, nil
}

func (u *MeetingUsecase) List(ctx context.Context, filter entity.MeetingFilter) ([]*entity.Meeting, int64, error) {
	if filter.Status != "" && !entity.ValidMeetingStatus(filter.Status) {
		return nil, 0, fmt.Errorf("%w: invalid meeting status %q", ErrValidation, filter.Status)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return u.meetings.List(ctx, filter)
}

func (u *MeetingUsecase) Get(ctx context.Context, id primitive.ObjectID) (*entity.Meeting, error) {
	return u.meetings.GetByID(ctx, id)
}

// UpdateStatus marks a meeting completed or cancelled (or back to
// scheduled).
func (u *MeetingUsecase) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.MeetingStatus) error {
	if !entity.ValidMeetingStatus(status) {
		return fmt.Errorf("%w: invalid meeting status %q", ErrValidation, status)
	}
	if _, err := u.meetings.GetByID(ctx, id); err != nil {
		return err
	}
	return u.meetings.UpdateStatus(ctx, id, status)
}

func (u *MeetingUsecase) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := u.meetings.GetByID(ctx, id); err != nil {
		return err
	}
	return u.meetings.Delete(ctx, id)
}
