package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/eliteassociate/realty-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ContactUsecase handles public inquiries. Submission is open; reading and
// deleting are admin operations enforced at the router.
type ContactUsecase struct {
	contacts   ContactStore
	properties PropertyStore
	logger     *zap.Logger
}

func NewContactUsecase(contacts ContactStore, properties PropertyStore, logger *zap.Logger) *ContactUsecase {
	return &ContactUsecase{contacts: contacts, properties: properties, logger: logger.Named("ContactUsecase")}
}

func (u *ContactUsecase) Submit(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	if err := validateFullName(c.FullName); err != nil {
		return nil, err
	}
	if err := validateEmail(c.Email); err != nil {
		return nil, err
	}
	if err := validatePhone(c.ContactNumber); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	// An inquiry may reference a listing; reject dangling references.
	if c.PropertyID != nil {
		if _, err := u.properties.GetByID(ctx, *c.PropertyID); err != nil {
			return nil, err
		}
	}

	id, err := u.contacts.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	u.logger.Info("Contact inquiry received", zap.String("contactID", id.Hex()))
	return c, nil
}

func (u *ContactUsecase) List(ctx context.Context, page, limit int64) ([]*entity.Contact, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return u.contacts.List(ctx, page, limit)
}

func (u *ContactUsecase) Get(ctx context.Context, id primitive.ObjectID) (*entity.Contact, error) {
	return u.contacts.GetByID(ctx, id)
}

func (u *ContactUsecase) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := u.contacts.GetByID(ctx, id); err != nil {
		return err
	}
	return u.contacts.Delete(ctx, id)
}
