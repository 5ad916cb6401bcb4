package usecase

import (
	"context"
	"errors"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/repository"
	"go.uber.org/zap"
)

// ProfileUsecase reads and updates the caller's own profile.
type ProfileUsecase struct {
	profiles ProfileStore
	logger   *zap.Logger
}

func NewProfileUsecase(profiles ProfileStore, logger *zap.Logger) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles, logger: logger.Named("ProfileUsecase")}
}

// Get returns the caller's profile. Accounts created before profiles were
// mandatory may lack one; a skeleton is created on the fly so the endpoint
// never 404s for a valid session.
func (u *ProfileUsecase) Get(ctx context.Context, actor *entity.User) (*entity.Profile, error) {
	profile, err := u.profiles.GetByAuthID(ctx, actor.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, err
	}

	profile = &entity.Profile{
		AuthID:   actor.ID,
		FullName: actor.FullName,
		Email:    actor.Email,
		PhoneNo:  actor.PhoneNo,
	}
	if _, err := u.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	u.logger.Info("Backfilled missing profile", zap.String("userID", actor.ID.Hex()))
	return profile, nil
}

// Update applies the caller's edits. Identity fields stay pinned to the
// account; KYC fields are validated when supplied.
func (u *ProfileUsecase) Update(ctx context.Context, actor *entity.User, updated *entity.Profile) (*entity.Profile, error) {
	if updated.FullName != "" {
		if err := validateFullName(updated.FullName); err != nil {
			return nil, err
		}
	}
	if updated.PhoneNo2 != "" {
		if err := validatePhone(updated.PhoneNo2); err != nil {
			return nil, err
		}
	}
	if updated.PanNo != "" {
		if err := validatePAN(updated.PanNo); err != nil {
			return nil, err
		}
	}
	if updated.AdharNo != "" {
		if err := validateAdhar(updated.AdharNo); err != nil {
			return nil, err
		}
	}
	if updated.Address.Pincode != "" {
		if err := validatePincode(updated.Address.Pincode); err != nil {
			return nil, err
		}
	}

	existing, err := u.Get(ctx, actor)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.AuthID = actor.ID
	updated.Email = actor.Email
	updated.PhoneNo = actor.PhoneNo
	if updated.FullName == "" {
		updated.FullName = existing.FullName
	}

	if err := u.profiles.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
