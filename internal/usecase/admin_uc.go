package usecase

import (
	"context"
	"errors"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AdminUsecase carries the dashboard operations: client management and the
// account cascade delete.
type AdminUsecase struct {
	users      UserStore
	profiles   ProfileStore
	properties PropertyStore
	storage    MediaStorage
	events     EventPublisher
	logger     *zap.Logger
}

func NewAdminUsecase(users UserStore, profiles ProfileStore, properties PropertyStore, storage MediaStorage, events EventPublisher, logger *zap.Logger) *AdminUsecase {
	return &AdminUsecase{
		users:      users,
		profiles:   profiles,
		properties: properties,
		storage:    storage,
		events:     events,
		logger:     logger.Named("AdminUsecase"),
	}
}

// ListClients returns every non-admin account, newest first.
func (u *AdminUsecase) ListClients(ctx context.Context) ([]*entity.User, error) {
	return u.users.ListClients(ctx)
}

// GetClient returns one account with its profile attached. A missing
// profile is not an error; the account alone is returned.
func (u *AdminUsecase) GetClient(ctx context.Context, userID primitive.ObjectID) (*entity.User, *entity.Profile, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	profile, err := u.profiles.GetByAuthID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Sanitized(), nil, nil
		}
		return nil, nil, err
	}
	return user.Sanitized(), profile, nil
}

// DeleteClient removes an account and everything it owns. Media objects go
// first and best-effort, then profile, listings and finally the account
// itself. Storage failures are logged and skipped; an orphaned object is
// preferable to a half-deleted account.
func (u *AdminUsecase) DeleteClient(ctx context.Context, userID primitive.ObjectID) error {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return ErrForbidden
	}

	listings, err := u.properties.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, p := range listings {
		for _, url := range append(append([]string{}, p.PropertyPics...), p.PropertyVideos...) {
			if err := u.storage.Delete(ctx, url); err != nil {
				u.logger.Warn("Failed to delete media object during account removal",
					zap.String("userID", userID.Hex()), zap.String("url", url), zap.Error(err))
			}
		}
	}

	if err := u.profiles.DeleteByAuthID(ctx, userID); err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return err
	}
	if err := u.properties.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		return err
	}

	if u.events != nil {
		if err := u.events.Publish(ctx, SubjectUserDeleted, map[string]string{"userId": userID.Hex()}); err != nil {
			u.logger.Warn("Event publish failed", zap.String("subject", SubjectUserDeleted), zap.Error(err))
		}
	}
	u.logger.Info("Client account deleted", zap.String("userID", userID.Hex()), zap.Int("listings", len(listings)))
	return nil
}
