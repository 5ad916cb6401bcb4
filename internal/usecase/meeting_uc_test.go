package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestMeetingUsecase_Schedule(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newFixture := func() (*MeetingUsecase, *MockMeetingStore) {
		store := new(MockMeetingStore)
		uc := NewMeetingUsecase(store, zap.NewNop())
		uc.now = func() time.Time { return now }
		return uc, store
	}

	request := func() *entity.Meeting {
		return &entity.Meeting{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Date:  now.Add(48 * time.Hour),
			Place: "Baner Office",
		}
	}

	t.Run("Success", func(t *testing.T) {
		uc, store := newFixture()
		id := primitive.NewObjectID()
		store.On("HasScheduledConflict", ctx, mock.Anything, "Baner Office").Return(false, nil).Once()
		store.On("Create", ctx, mock.AnythingOfType("*entity.Meeting")).Return(id, nil).Once()

		created, err := uc.Schedule(ctx, request())

		assert.NoError(t, err)
		assert.Equal(t, id, created.ID)
		assert.Equal(t, entity.MeetingScheduled, created.Status)
	})

	t.Run("PastDateRejected", func(t *testing.T) {
		uc, store := newFixture()
		m := request()
		m.Date = now.Add(-time.Hour)

		_, err := uc.Schedule(ctx, m)
		assert.ErrorIs(t, err, ErrValidation)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("SamePlaceSameDayConflicts", func(t *testing.T) {
		uc, store := newFixture()
		store.On("HasScheduledConflict", ctx, mock.Anything, "Baner Office").Return(true, nil).Once()

		_, err := uc.Schedule(ctx, request())
		assert.ErrorIs(t, err, ErrMeetingConflict)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestMeetingUsecase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := new(MockMeetingStore)
	uc := NewMeetingUsecase(store, zap.NewNop())
	id := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		store.On("GetByID", ctx, id).Return(&entity.Meeting{ID: id}, nil).Once()
		store.On("UpdateStatus", ctx, id, entity.MeetingCompleted).Return(nil).Once()

		assert.NoError(t, uc.UpdateStatus(ctx, id, entity.MeetingCompleted))
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		err := uc.UpdateStatus(ctx, id, "postponed")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestContactUsecase_Submit(t *testing.T) {
	ctx := context.Background()
	store := new(MockContactStore)
	properties := new(MockPropertyStore)
	uc := NewContactUsecase(store, properties, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		id := primitive.NewObjectID()
		store.On("Create", ctx, mock.AnythingOfType("*entity.Contact")).Return(id, nil).Once()

		created, err := uc.Submit(ctx, &entity.Contact{
			FullName:      "Jane Doe",
			ContactNumber: "9876543210",
			Email:         "jane@example.com",
			Description:   "Interested in the 2BHK listing",
		})

		assert.NoError(t, err)
		assert.Equal(t, id, created.ID)
	})

	t.Run("DanglingPropertyReference", func(t *testing.T) {
		// Fresh mocks so AssertNotCalled is not tripped by calls
		// recorded in earlier subtests on the shared fixture.
		store := new(MockContactStore)
		properties := new(MockPropertyStore)
		uc := NewContactUsecase(store, properties, zap.NewNop())
		propID := primitive.NewObjectID()
		properties.On("GetByID", ctx, propID).Return(nil, repository.ErrPropertyNotFound).Once()

		_, err := uc.Submit(ctx, &entity.Contact{
			FullName:      "Jane Doe",
			ContactNumber: "9876543210",
			Email:         "jane@example.com",
			Description:   "Is this still available?",
			PropertyID:    &propID,
		})
		assert.ErrorIs(t, err, repository.ErrPropertyNotFound)
		store.AssertNotCalled(t, "Create", ctx, mock.AnythingOfType("*entity.Contact"))
	})

	t.Run("MissingDescription", func(t *testing.T) {
		_, err := uc.Submit(ctx, &entity.Contact{
			FullName:      "Jane Doe",
			ContactNumber: "9876543210",
			Email:         "jane@example.com",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("ListClampsPagination", func(t *testing.T) {
		store.On("List", ctx, int64(1), int64(10)).Return([]*entity.Contact{}, int64(0), nil).Once()

		_, _, err := uc.List(ctx, -5, 5000)
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}
