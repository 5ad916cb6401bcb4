package usecase

import (
	"context"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/otp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage interfaces the usecases depend on. The mongo repositories satisfy
// them; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error
	SetOTP(ctx context.Context, userID primitive.ObjectID, purpose otp.Purpose, code string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, userID primitive.ObjectID, purpose otp.Purpose) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
	ListClients(ctx context.Context) ([]*entity.User, error)
	EnsureAdmin(ctx context.Context, email, rawPassword string) error
}

type ProfileStore interface {
	Create(ctx context.Context, profile *entity.Profile) (primitive.ObjectID, error)
	GetByAuthID(ctx context.Context, authID primitive.ObjectID) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	DeleteByAuthID(ctx context.Context, authID primitive.ObjectID) error
}

type PropertyStore interface {
	Create(ctx context.Context, property *entity.Property) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Property, error)
	FindByFilter(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, int64, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Property, error)
	Update(ctx context.Context, property *entity.Property) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.PropertyStatus) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	HardDelete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
	AddMediaURLs(ctx context.Context, id primitive.ObjectID, kind string, urls []string) error
	RemoveMediaURL(ctx context.Context, id primitive.ObjectID, kind string, url string) error
	Stats(ctx context.Context) (*entity.PropertyStats, error)
}

type ContactStore interface {
	Create(ctx context.Context, contact *entity.Contact) (primitive.ObjectID, error)
	List(ctx context.Context, page, limit int64) ([]*entity.Contact, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MeetingStore interface {
	Create(ctx context.Context, meeting *entity.Meeting) (primitive.ObjectID, error)
	HasScheduledConflict(ctx context.Context, date time.Time, place string) (bool, error)
	List(ctx context.Context, filter entity.MeetingFilter) ([]*entity.Meeting, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Meeting, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.MeetingStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MediaStorage is the object-storage collaborator for listing media.
type MediaStorage interface {
	Upload(ctx context.Context, folder, originalFileName, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// EventPublisher emits best-effort domain events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Subjects for the domain events published after writes.
const (
	SubjectPropertyCreated = "property.created"
	SubjectPropertyDeleted = "property.deleted"
	SubjectUserDeleted     = "user.deleted"
)

// PropertyCacher is the optional read cache for single-listing lookups.
type PropertyCacher interface {
	GetProperty(ctx context.Context, id string) (*entity.Property, error)
	SetProperty(ctx context.Context, property *entity.Property) error
	DeleteProperty(ctx context.Context, id string) error
}
