package usecase

import (
	"context"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/otp"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	id := args.Get(0).(primitive.ObjectID)
	if args.Error(1) == nil {
		// Mirror the real repository's side effect of assigning the new ID.
		user.ID = id
	}
	return id, args.Error(1)
}
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserStore) GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserStore) UpdatePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}
func (m *MockUserStore) SetOTP(ctx context.Context, userID primitive.ObjectID, purpose otp.Purpose, code string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, purpose, code, expiresAt)
	return args.Error(0)
}
func (m *MockUserStore) ClearOTP(ctx context.Context, userID primitive.ObjectID, purpose otp.Purpose) error {
	args := m.Called(ctx, userID, purpose)
	return args.Error(0)
}
func (m *MockUserStore) Delete(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserStore) ListClients(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}
func (m *MockUserStore) EnsureAdmin(ctx context.Context, email, rawPassword string) error {
	args := m.Called(ctx, email, rawPassword)
	return args.Error(0)
}

type MockProfileStore struct{ mock.Mock }

func (m *MockProfileStore) Create(ctx context.Context, profile *entity.Profile) (primitive.ObjectID, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockProfileStore) GetByAuthID(ctx context.Context, authID primitive.ObjectID) (*entity.Profile, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}
func (m *MockProfileStore) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileStore) DeleteByAuthID(ctx context.Context, authID primitive.ObjectID) error {
	args := m.Called(ctx, authID)
	return args.Error(0)
}

type MockPropertyStore struct{ mock.Mock }

func (m *MockPropertyStore) Create(ctx context.Context, property *entity.Property) (primitive.ObjectID, error) {
	args := m.Called(ctx, property)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockPropertyStore) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}
func (m *MockPropertyStore) FindByFilter(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Property), args.Get(1).(int64), args.Error(2)
}
func (m *MockPropertyStore) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}
func (m *MockPropertyStore) Update(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.PropertyStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockPropertyStore) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPropertyStore) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPropertyStore) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockPropertyStore) AddMediaURLs(ctx context.Context, id primitive.ObjectID, kind string, urls []string) error {
	args := m.Called(ctx, id, kind, urls)
	return args.Error(0)
}
func (m *MockPropertyStore) RemoveMediaURL(ctx context.Context, id primitive.ObjectID, kind string, url string) error {
	args := m.Called(ctx, id, kind, url)
	return args.Error(0)
}
func (m *MockPropertyStore) Stats(ctx context.Context) (*entity.PropertyStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PropertyStats), args.Error(1)
}

type MockContactStore struct{ mock.Mock }

func (m *MockContactStore) Create(ctx context.Context, contact *entity.Contact) (primitive.ObjectID, error) {
	args := m.Called(ctx, contact)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockContactStore) List(ctx context.Context, page, limit int64) ([]*entity.Contact, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Contact), args.Get(1).(int64), args.Error(2)
}
func (m *MockContactStore) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}
func (m *MockContactStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMeetingStore struct{ mock.Mock }

func (m *MockMeetingStore) Create(ctx context.Context, meeting *entity.Meeting) (primitive.ObjectID, error) {
	args := m.Called(ctx, meeting)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockMeetingStore) HasScheduledConflict(ctx context.Context, date time.Time, place string) (bool, error) {
	args := m.Called(ctx, date, place)
	return args.Bool(0), args.Error(1)
}
func (m *MockMeetingStore) List(ctx context.Context, filter entity.MeetingFilter) ([]*entity.Meeting, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Meeting), args.Get(1).(int64), args.Error(2)
}
func (m *MockMeetingStore) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Meeting), args.Error(1)
}
func (m *MockMeetingStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.MeetingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockMeetingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMediaStorage struct{ mock.Mock }

func (m *MockMediaStorage) Upload(ctx context.Context, folder, originalFileName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, folder, originalFileName, contentType, data)
	return args.String(0), args.Error(1)
}
func (m *MockMediaStorage) Delete(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendOTP(toEmail, toName, code string, purpose otp.Purpose) error {
	args := m.Called(toEmail, toName, code, purpose)
	return args.Error(0)
}

type MockPropertyCacher struct{ mock.Mock }

func (m *MockPropertyCacher) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}
func (m *MockPropertyCacher) SetProperty(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyCacher) DeleteProperty(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
