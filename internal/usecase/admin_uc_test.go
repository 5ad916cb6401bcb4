package usecase

import (
	"context"
	"testing"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newAdminFixture() (*AdminUsecase, *MockUserStore, *MockProfileStore, *MockPropertyStore, *MockMediaStorage, *MockEventPublisher) {
	users := new(MockUserStore)
	profiles := new(MockProfileStore)
	properties := new(MockPropertyStore)
	storage := new(MockMediaStorage)
	events := new(MockEventPublisher)
	uc := NewAdminUsecase(users, profiles, properties, storage, events, zap.NewNop())
	return uc, users, profiles, properties, storage, events
}

func TestAdminUsecase_GetClient(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	account := &entity.User{ID: id, Email: "jane@example.com", Password: "hash", Role: entity.RoleClient}

	t.Run("WithProfile", func(t *testing.T) {
		uc, users, profiles, _, _, _ := newAdminFixture()
		users.On("GetByID", ctx, id).Return(account, nil).Once()
		profiles.On("GetByAuthID", ctx, id).Return(&entity.Profile{AuthID: id}, nil).Once()

		user, profile, err := uc.GetClient(ctx, id)

		assert.NoError(t, err)
		assert.Empty(t, user.Password)
		assert.NotNil(t, profile)
	})

	t.Run("MissingProfileIsNotAnError", func(t *testing.T) {
		uc, users, profiles, _, _, _ := newAdminFixture()
		users.On("GetByID", ctx, id).Return(account, nil).Once()
		profiles.On("GetByAuthID", ctx, id).Return(nil, repository.ErrProfileNotFound).Once()

		user, profile, err := uc.GetClient(ctx, id)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Nil(t, profile)
	})
}

func TestAdminUsecase_DeleteClient(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	account := &entity.User{ID: id, Role: entity.RoleClient}

	listings := []*entity.Property{
		{ID: primitive.NewObjectID(), PropertyPics: []string{"http://cdn/a.jpg"}, PropertyVideos: []string{"http://cdn/a.mp4"}},
	}

	t.Run("CascadeOrder", func(t *testing.T) {
		uc, users, profiles, properties, storage, events := newAdminFixture()
		users.On("GetByID", ctx, id).Return(account, nil).Once()
		properties.On("FindByUserID", ctx, id).Return(listings, nil).Once()
		storage.On("Delete", ctx, "http://cdn/a.jpg").Return(nil).Once()
		storage.On("Delete", ctx, "http://cdn/a.mp4").Return(nil).Once()
		profiles.On("DeleteByAuthID", ctx, id).Return(nil).Once()
		properties.On("DeleteByUserID", ctx, id).Return(nil).Once()
		users.On("Delete", ctx, id).Return(nil).Once()
		events.On("Publish", ctx, SubjectUserDeleted, mock.Anything).Return(nil).Once()

		assert.NoError(t, uc.DeleteClient(ctx, id))
		users.AssertExpectations(t)
		profiles.AssertExpectations(t)
		properties.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("MediaFailureDoesNotAbort", func(t *testing.T) {
		uc, users, profiles, properties, storage, events := newAdminFixture()
		users.On("GetByID", ctx, id).Return(account, nil).Once()
		properties.On("FindByUserID", ctx, id).Return(listings, nil).Once()
		storage.On("Delete", ctx, mock.Anything).Return(assert.AnError).Twice()
		profiles.On("DeleteByAuthID", ctx, id).Return(nil).Once()
		properties.On("DeleteByUserID", ctx, id).Return(nil).Once()
		users.On("Delete", ctx, id).Return(nil).Once()
		events.On("Publish", ctx, SubjectUserDeleted, mock.Anything).Return(nil).Once()

		assert.NoError(t, uc.DeleteClient(ctx, id))
		users.AssertExpectations(t)
	})

	t.Run("MissingProfileIsTolerated", func(t *testing.T) {
		uc, users, profiles, properties, _, events := newAdminFixture()
		users.On("GetByID", ctx, id).Return(account, nil).Once()
		properties.On("FindByUserID", ctx, id).Return([]*entity.Property{}, nil).Once()
		profiles.On("DeleteByAuthID", ctx, id).Return(repository.ErrProfileNotFound).Once()
		properties.On("DeleteByUserID", ctx, id).Return(nil).Once()
		users.On("Delete", ctx, id).Return(nil).Once()
		events.On("Publish", ctx, SubjectUserDeleted, mock.Anything).Return(nil).Once()

		assert.NoError(t, uc.DeleteClient(ctx, id))
	})

	t.Run("RefusesToDeleteAdmin", func(t *testing.T) {
		uc, users, _, properties, _, _ := newAdminFixture()
		adminAccount := &entity.User{ID: id, Role: entity.RoleAdmin}
		users.On("GetByID", ctx, id).Return(adminAccount, nil).Once()

		err := uc.DeleteClient(ctx, id)
		assert.ErrorIs(t, err, ErrForbidden)
		properties.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		uc, users, _, _, _, _ := newAdminFixture()
		users.On("GetByID", ctx, id).Return(nil, repository.ErrUserNotFound).Once()

		err := uc.DeleteClient(ctx, id)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}
