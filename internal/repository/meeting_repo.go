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

var ErrMeetingNotFound = errors.New("scheduled meeting not found")

type mongoMeeting struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Name       string               `bson:"name"`
	Email      string               `bson:"email"`
	Date       time.Time            `bson:"date"`
	Place      string               `bson:"place"`
	PropertyID *primitive.ObjectID  `bson:"property_id,omitempty"`
	Status     entity.MeetingStatus `bson:"meeting_status"`
	CreatedAt  time.Time            `bson:"created_at"`
}

func (m *mongoMeeting) toEntity() *entity.Meeting {
	return &entity.Meeting{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Date:       m.Date,
		Place:      m.Place,
		PropertyID: m.PropertyID,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}

type MeetingRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewMeetingRepository(db *mongo.Database, logger *zap.Logger) *MeetingRepository {
	return &MeetingRepository{
		db:     db,
		logger: logger.Named("MeetingRepository"),
	}
}

func (r *MeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) (primitive.ObjectID, error) {
	dbMeeting := &mongoMeeting{
		ID:         primitive.NewObjectID(),
		Name:       meeting.Name,
		Email:      meeting.Email,
		Date:       meeting.Date,
		Place:      meeting.Place,
		PropertyID: meeting.PropertyID,
		Status:     entity.MeetingScheduled,
		CreatedAt:  time.Now(),
	}
	if _, err := r.db.Collection("meetings").InsertOne(ctx, dbMeeting); err != nil {
		r.logger.Error("Database error during meeting creation", zap.Error(err))
		return primitive.NilObjectID, err
	}
	meeting.ID = dbMeeting.ID
	meeting.Status = dbMeeting.Status
	meeting.CreatedAt = dbMeeting.CreatedAt
	return dbMeeting.ID, nil
}

// HasScheduledConflict reports whether a scheduled meeting already exists at
// the same place on the same calendar day.
func (r *MeetingRepository) HasScheduledConflict(ctx context.Context, date time.Time, place string) (bool, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	filter := bson.M{
		"date":           bson.M{"$gte": dayStart, "$lte": dayEnd},
		"place":          place,
		"meeting_status": entity.MeetingScheduled,
	}
	count, err := r.db.Collection("meetings").CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("DB error checking meeting conflict", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// List returns one page of meetings matching the filter, date ascending,
// plus the total count.
func (r *MeetingRepository) List(ctx context.Context, filter entity.MeetingFilter) ([]*entity.Meeting, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["meeting_status"] = filter.Status
	}
	if !filter.StartDate.IsZero() || !filter.EndDate.IsZero() {
		dateRange := bson.M{}
		if !filter.StartDate.IsZero() {
			dateRange["$gte"] = filter.StartDate
		}
		if !filter.EndDate.IsZero() {
			dateRange["$lte"] = filter.EndDate
		}
		query["date"] = dateRange
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.M{"date": 1})

	cursor, err := r.db.Collection("meetings").Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("DB error listing meetings", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var dbMeetings []*mongoMeeting
	if err = cursor.All(ctx, &dbMeetings); err != nil {
		return nil, 0, err
	}

	total, err := r.db.Collection("meetings").CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	meetings := make([]*entity.Meeting, 0, len(dbMeetings))
	for _, dbMeeting := range dbMeetings {
		meetings = append(meetings, dbMeeting.toEntity())
	}
	return meetings, total, nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Meeting, error) {
	var dbMeeting mongoMeeting
	err := r.db.Collection("meetings").FindOne(ctx, bson.M{"_id": id}).Decode(&dbMeeting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMeetingNotFound
		}
		r.logger.Error("Database error fetching meeting", zap.String("meetingID", id.Hex()), zap.Error(err))
		return nil, err
	}
	return dbMeeting.toEntity(), nil
}

func (r *MeetingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.MeetingStatus) error {
	update := bson.M{"$set": bson.M{"meeting_status": status}}
	result, err := r.db.Collection("meetings").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("DB error updating meeting status", zap.String("meetingID", id.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrMeetingNotFound
	}
	return nil
}

func (r *MeetingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.Collection("meetings").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("DB error deleting meeting", zap.String("meetingID", id.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrMeetingNotFound
	}
	return nil
}
