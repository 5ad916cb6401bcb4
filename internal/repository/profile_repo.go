package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var ErrProfileNotFound = errors.New("profile not found")

type mongoProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AuthID    primitive.ObjectID `bson:"auth_id"`
	FullName  string             `bson:"full_name,omitempty"`
	Email     string             `bson:"email,omitempty"`
	PhoneNo   string             `bson:"phone_no,omitempty"`
	PhoneNo2  string             `bson:"phone_no_2,omitempty"`
	PanNo     string             `bson:"pan_no,omitempty"`
	AdharNo   string             `bson:"adhar_no,omitempty"`
	Address   entity.Address     `bson:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoProfile) toEntity() *entity.Profile {
	return &entity.Profile{
		ID:        m.ID,
		AuthID:    m.AuthID,
		FullName:  m.FullName,
		Email:     m.Email,
		PhoneNo:   m.PhoneNo,
		PhoneNo2:  m.PhoneNo2,
		PanNo:     m.PanNo,
		AdharNo:   m.AdharNo,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type ProfileRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewProfileRepository(db *mongo.Database, logger *zap.Logger) *ProfileRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "auth_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("profiles").Indexes().CreateOne(ctx, index); err != nil {
		logger.Warn("Failed to create index for profiles collection (may already exist)", zap.Error(err))
	}

	return &ProfileRepository{
		db:     db,
		logger: logger.Named("ProfileRepository"),
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) (primitive.ObjectID, error) {
	now := time.Now()
	dbProfile := &mongoProfile{
		ID:        primitive.NewObjectID(),
		AuthID:    profile.AuthID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		PhoneNo:   profile.PhoneNo,
		PhoneNo2:  profile.PhoneNo2,
		PanNo:     profile.PanNo,
		AdharNo:   profile.AdharNo,
		Address:   profile.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.db.Collection("profiles").InsertOne(ctx, dbProfile); err != nil {
		r.logger.Error("Database error during profile creation", zap.String("authID", profile.AuthID.Hex()), zap.Error(err))
		return primitive.NilObjectID, err
	}
	profile.ID = dbProfile.ID
	profile.CreatedAt = now
	profile.UpdatedAt = now
	return dbProfile.ID, nil
}

func (r *ProfileRepository) GetByAuthID(ctx context.Context, authID primitive.ObjectID) (*entity.Profile, error) {
	var dbProfile mongoProfile
	err := r.db.Collection("profiles").FindOne(ctx, bson.M{"auth_id": authID}).Decode(&dbProfile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		r.logger.Error("Database error fetching profile", zap.String("authID", authID.Hex()), zap.Error(err))
		return nil, err
	}
	return dbProfile.toEntity(), nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	profile.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"full_name":  profile.FullName,
			"phone_no_2": profile.PhoneNo2,
			"pan_no":     profile.PanNo,
			"adhar_no":   profile.AdharNo,
			"address":    profile.Address,
			"updated_at": profile.UpdatedAt,
		},
	}
	result, err := r.db.Collection("profiles").UpdateOne(ctx, bson.M{"_id": profile.ID}, update)
	if err != nil {
		r.logger.Error("DB error updating profile", zap.String("profileID", profile.ID.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) DeleteByAuthID(ctx context.Context, authID primitive.ObjectID) error {
	result, err := r.db.Collection("profiles").DeleteOne(ctx, bson.M{"auth_id": authID})
	if err != nil {
		r.logger.Error("DB error deleting profile", zap.String("authID", authID.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}
