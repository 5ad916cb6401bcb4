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

var ErrContactNotFound = errors.New("contact inquiry not found")

type mongoContact struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	FullName      string              `bson:"full_name"`
	ContactNumber string              `bson:"contact_number"`
	Email         string              `bson:"email"`
	Description   string              `bson:"description"`
	PropertyID    *primitive.ObjectID `bson:"property_id,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
}

func (m *mongoContact) toEntity() *entity.Contact {
	return &entity.Contact{
		ID:            m.ID,
		FullName:      m.FullName,
		ContactNumber: m.ContactNumber,
		Email:         m.Email,
		Description:   m.Description,
		PropertyID:    m.PropertyID,
		CreatedAt:     m.CreatedAt,
	}
}

type ContactRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewContactRepository(db *mongo.Database, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{
		db:     db,
		logger: logger.Named("ContactRepository"),
	}
}

func (r *ContactRepository) Create(ctx context.Context, contact *entity.Contact) (primitive.ObjectID, error) {
	dbContact := &mongoContact{
		ID:            primitive.NewObjectID(),
		FullName:      contact.FullName,
		ContactNumber: contact.ContactNumber,
		Email:         contact.Email,
		Description:   contact.Description,
		PropertyID:    contact.PropertyID,
		CreatedAt:     time.Now(),
	}
	if _, err := r.db.Collection("contacts").InsertOne(ctx, dbContact); err != nil {
		r.logger.Error("Database error during contact creation", zap.Error(err))
		return primitive.NilObjectID, err
	}
	contact.ID = dbContact.ID
	contact.CreatedAt = dbContact.CreatedAt
	return dbContact.ID, nil
}

// List returns one page of inquiries, newest first, plus the total count.
func (r *ContactRepository) List(ctx context.Context, page, limit int64) ([]*entity.Contact, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.M{"created_at": -1})

	cursor, err := r.db.Collection("contacts").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("DB error listing contacts", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var dbContacts []*mongoContact
	if err = cursor.All(ctx, &dbContacts); err != nil {
		return nil, 0, err
	}

	total, err := r.db.Collection("contacts").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	contacts := make([]*entity.Contact, 0, len(dbContacts))
	for _, dbContact := range dbContacts {
		contacts = append(contacts, dbContact.toEntity())
	}
	return contacts, total, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Contact, error) {
	var dbContact mongoContact
	err := r.db.Collection("contacts").FindOne(ctx, bson.M{"_id": id}).Decode(&dbContact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		r.logger.Error("Database error fetching contact", zap.String("contactID", id.Hex()), zap.Error(err))
		return nil, err
	}
	return dbContact.toEntity(), nil
}

func (r *ContactRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.Collection("contacts").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("DB error deleting contact", zap.String("contactID", id.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrContactNotFound
	}
	return nil
}
