package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/otp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicatePhoneNumber = errors.New("phone number already exists")
	ErrUserNotFound         = errors.New("user not found")
)

type mongoUser struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	FullName           string             `bson:"full_name"`
	Email              string             `bson:"email"`
	PhoneNo            string             `bson:"phone_no"`
	Password           string             `bson:"password"`
	Role               string             `bson:"role"`
	VerifyOTPCode      string             `bson:"verify_otp_code,omitempty"`
	VerifyOTPExpiresAt *time.Time         `bson:"verify_otp_expires_at,omitempty"`
	ResetOTPCode       string             `bson:"reset_otp_code,omitempty"`
	ResetOTPExpiresAt  *time.Time         `bson:"reset_otp_expires_at,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toEntity() *entity.User {
	u := &entity.User{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		PhoneNo:   m.PhoneNo,
		Password:  m.Password,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.VerifyOTPCode != "" && m.VerifyOTPExpiresAt != nil {
		u.VerifyOTP = &entity.OTPChallenge{Code: m.VerifyOTPCode, ExpiresAt: *m.VerifyOTPExpiresAt}
	}
	if m.ResetOTPCode != "" && m.ResetOTPExpiresAt != nil {
		u.ResetOTP = &entity.OTPChallenge{Code: m.ResetOTPCode, ExpiresAt: *m.ResetOTPExpiresAt}
	}
	return u
}

type UserRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure indexes (idempotent operation)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone_no", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for users collection (may already exist)", zap.Error(err))
	}

	return &UserRepository{
		db:     db,
		logger: logger.Named("UserRepository"),
	}
}

func duplicateKeyError(err error) error {
	var writeException mongo.WriteException
	if errors.As(err, &writeException) {
		for _, writeError := range writeException.WriteErrors {
			if writeError.Code == 11000 {
				if strings.Contains(writeError.Message, "email_1") {
					return ErrDuplicateEmail
				}
				if strings.Contains(writeError.Message, "phone_no_1") {
					return ErrDuplicatePhoneNumber
				}
			}
		}
	}
	return nil
}

// Create hashes the raw password and inserts the user. Email is stored
// lowercased so lookups are case-insensitive.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	r.logger.Info("Attempting to create user", zap.String("email", user.Email))
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		r.logger.Error("Failed to hash password during user creation", zap.String("email", user.Email), zap.Error(err))
		return primitive.NilObjectID, err
	}

	now := time.Now()
	dbUser := &mongoUser{
		ID:        primitive.NewObjectID(),
		FullName:  user.FullName,
		Email:     strings.ToLower(strings.TrimSpace(user.Email)),
		PhoneNo:   user.PhoneNo,
		Password:  string(hashedPassword),
		Role:      user.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.db.Collection("users").InsertOne(ctx, dbUser); err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			r.logger.Warn("Duplicate unique field during user creation", zap.String("email", user.Email), zap.Error(dup))
			return primitive.NilObjectID, dup
		}
		r.logger.Error("Database error during user creation", zap.String("email", user.Email), zap.Error(err))
		return primitive.NilObjectID, err
	}
	user.ID = dbUser.ID
	user.Email = dbUser.Email
	user.CreatedAt = now
	user.UpdatedAt = now
	r.logger.Info("User created successfully", zap.String("userID", dbUser.ID.Hex()))
	return dbUser.ID, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var dbUser mongoUser
	err := r.db.Collection("users").FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("Database error fetching user by email", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return dbUser.toEntity(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	var dbUser mongoUser
	err := r.db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("Database error fetching user by ID", zap.String("userID", userID.Hex()), zap.Error(err))
		return nil, err
	}
	return dbUser.toEntity(), nil
}

// UpdatePassword rehashes and overwrites the stored hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error {
	r.logger.Info("Updating password", zap.String("userID", userID.Hex()))
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		r.logger.Error("Failed to hash new password", zap.String("userID", userID.Hex()), zap.Error(err))
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"password":   string(hashedPassword),
			"updated_at": time.Now(),
		},
	}
	result, err := r.db.Collection("users").UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Error("DB error updating password", zap.String("userID", userID.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func otpFields(purpose otp.Purpose) (codeField, expiryField string) {
	if purpose == otp.PurposePasswordReset {
		return "reset_otp_code", "reset_otp_expires_at"
	}
	return "verify_otp_code", "verify_otp_expires_at"
}

// SetOTP stores a challenge for the given purpose, overwriting any prior
// one. Code and expiry are written in a single update.
func (r *UserRepository) SetOTP(ctx context.Context, userID primitive.ObjectID, purpose otp.Purpose, code string, expiresAt time.Time) error {
	codeField, expiryField := otpFields(purpose)
	update := bson.M{
		"$set": bson.M{
			codeField:    code,
			expiryField:  expiresAt,
			"updated_at": time.Now(),
		},
	}
	result, err := r.db.Collection("users").UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Error("DB error saving OTP challenge", zap.String("userID", userID.Hex()), zap.String("purpose", string(purpose)), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearOTP removes the challenge for the given purpose. Both fields go in
// the same update.
func (r *UserRepository) ClearOTP(ctx context.Context, userID primitive.ObjectID, purpose otp.Purpose) error {
	codeField, expiryField := otpFields(purpose)
	update := bson.M{
		"$set":   bson.M{"updated_at": time.Now()},
		"$unset": bson.M{codeField: "", expiryField: ""},
	}
	result, err := r.db.Collection("users").UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Error("DB error clearing OTP challenge", zap.String("userID", userID.Hex()), zap.String("purpose", string(purpose)), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	r.logger.Info("Deleting user", zap.String("userID", userID.Hex()))
	result, err := r.db.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		r.logger.Error("DB error deleting user", zap.String("userID", userID.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListClients returns client-role users, newest first, without passwords.
func (r *UserRepository) ListClients(ctx context.Context) ([]*entity.User, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection("users").Find(ctx, bson.M{"role": entity.RoleClient}, findOptions)
	if err != nil {
		r.logger.Error("DB error listing users", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var dbUsers []*mongoUser
	if err = cursor.All(ctx, &dbUsers); err != nil {
		r.logger.Error("Error decoding listed users", zap.Error(err))
		return nil, err
	}

	users := make([]*entity.User, 0, len(dbUsers))
	for _, dbUser := range dbUsers {
		users = append(users, dbUser.toEntity().Sanitized())
	}
	return users, nil
}

// EnsureAdmin upserts the configured admin identity. Repeated calls leave
// exactly one admin record; an existing account with that email is promoted.
func (r *UserRepository) EnsureAdmin(ctx context.Context, email, rawPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := r.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == entity.RoleAdmin {
			return nil
		}
		update := bson.M{"$set": bson.M{"role": entity.RoleAdmin, "updated_at": time.Now()}}
		_, err = r.db.Collection("users").UpdateOne(ctx, bson.M{"_id": existing.ID}, update)
		return err
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	_, err = r.Create(ctx, &entity.User{
		FullName: "Admin User",
		Email:    email,
		PhoneNo:  "0000000000",
		Password: rawPassword,
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, ErrDuplicateEmail) {
		// Lost a race with a concurrent seed; the record exists.
		return nil
	}
	return err
}
