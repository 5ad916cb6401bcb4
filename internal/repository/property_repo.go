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

var ErrPropertyNotFound = errors.New("property not found")

type mongoProperty struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty"`
	UserID          primitive.ObjectID    `bson:"user_id"`
	PropertyType    string                `bson:"property_type"`
	PriceTag        string                `bson:"price_tag,omitempty"`
	Price           float64               `bson:"price,omitempty"`
	PropertyDetails string                `bson:"property_details,omitempty"`
	PropertyPics    []string              `bson:"property_pics"`
	PropertyVideos  []string              `bson:"property_videos"`
	ContactInfo     string                `bson:"contact_info,omitempty"`
	IsFurnished     bool                  `bson:"is_furnished"`
	HasParking      bool                  `bson:"has_parking"`
	Category        string                `bson:"property_category,omitempty"`
	BHK             int                   `bson:"bhk,omitempty"`
	Floor           int                   `bson:"floor,omitempty"`
	PropertyAge     int                   `bson:"property_age,omitempty"`
	Facing          string                `bson:"facing,omitempty"`
	BuildArea       float64               `bson:"build_area,omitempty"`
	CarpetArea      float64               `bson:"carpet_area,omitempty"`
	Locality        string                `bson:"locality,omitempty"`
	City            string                `bson:"city"`
	State           string                `bson:"state,omitempty"`
	Pincode         string                `bson:"pincode,omitempty"`
	Landmark        string                `bson:"landmark,omitempty"`
	Amenities       []string              `bson:"amenities"`
	NearbyPlaces    []string              `bson:"nearby_places"`
	Status          entity.PropertyStatus `bson:"property_status"`
	IsActive        bool                  `bson:"is_active"`
	CreatedAt       time.Time             `bson:"created_at"`
	UpdatedAt       time.Time             `bson:"updated_at"`
}

func (m *mongoProperty) toEntity() *entity.Property {
	return &entity.Property{
		ID:              m.ID,
		UserID:          m.UserID,
		PropertyType:    m.PropertyType,
		PriceTag:        m.PriceTag,
		Price:           m.Price,
		PropertyDetails: m.PropertyDetails,
		PropertyPics:    m.PropertyPics,
		PropertyVideos:  m.PropertyVideos,
		ContactInfo:     m.ContactInfo,
		IsFurnished:     m.IsFurnished,
		HasParking:      m.HasParking,
		Category:        m.Category,
		BHK:             m.BHK,
		Floor:           m.Floor,
		PropertyAge:     m.PropertyAge,
		Facing:          m.Facing,
		BuildArea:       m.BuildArea,
		CarpetArea:      m.CarpetArea,
		Locality:        m.Locality,
		City:            m.City,
		State:           m.State,
		Pincode:         m.Pincode,
		Landmark:        m.Landmark,
		Amenities:       m.Amenities,
		NearbyPlaces:    m.NearbyPlaces,
		Status:          m.Status,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromPropertyEntity(e *entity.Property) *mongoProperty {
	return &mongoProperty{
		ID:              e.ID,
		UserID:          e.UserID,
		PropertyType:    e.PropertyType,
		PriceTag:        e.PriceTag,
		Price:           e.Price,
		PropertyDetails: e.PropertyDetails,
		PropertyPics:    e.PropertyPics,
		PropertyVideos:  e.PropertyVideos,
		ContactInfo:     e.ContactInfo,
		IsFurnished:     e.IsFurnished,
		HasParking:      e.HasParking,
		Category:        e.Category,
		BHK:             e.BHK,
		Floor:           e.Floor,
		PropertyAge:     e.PropertyAge,
		Facing:          e.Facing,
		BuildArea:       e.BuildArea,
		CarpetArea:      e.CarpetArea,
		Locality:        e.Locality,
		City:            e.City,
		State:           e.State,
		Pincode:         e.Pincode,
		Landmark:        e.Landmark,
		Amenities:       e.Amenities,
		NearbyPlaces:    e.NearbyPlaces,
		Status:          e.Status,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

type PropertyRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewPropertyRepository(db *mongo.Database, logger *zap.Logger) *PropertyRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection("properties").Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for properties collection (may already exist)", zap.Error(err))
	}

	return &PropertyRepository{
		db:     db,
		logger: logger.Named("PropertyRepository"),
	}
}

func (r *PropertyRepository) Create(ctx context.Context, property *entity.Property) (primitive.ObjectID, error) {
	now := time.Now()
	property.ID = primitive.NewObjectID()
	property.CreatedAt = now
	property.UpdatedAt = now
	if property.PropertyPics == nil {
		property.PropertyPics = []string{}
	}
	if property.PropertyVideos == nil {
		property.PropertyVideos = []string{}
	}
	if property.Amenities == nil {
		property.Amenities = []string{}
	}
	if property.NearbyPlaces == nil {
		property.NearbyPlaces = []string{}
	}

	if _, err := r.db.Collection("properties").InsertOne(ctx, fromPropertyEntity(property)); err != nil {
		r.logger.Error("Database error during property creation", zap.String("userID", property.UserID.Hex()), zap.Error(err))
		return primitive.NilObjectID, err
	}
	return property.ID, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Property, error) {
	var dbProperty mongoProperty
	err := r.db.Collection("properties").FindOne(ctx, bson.M{"_id": id}).Decode(&dbProperty)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		r.logger.Error("Database error fetching property", zap.String("propertyID", id.Hex()), zap.Error(err))
		return nil, err
	}
	return dbProperty.toEntity(), nil
}

func filterQuery(filter entity.PropertyFilter) bson.M {
	query := bson.M{}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}
	if filter.Location != "" {
		locationRegex := bson.M{"$regex": filter.Location, "$options": "i"}
		query["$or"] = []bson.M{
			{"city": locationRegex},
			{"state": locationRegex},
			{"locality": locationRegex},
		}
	}
	if filter.City != "" {
		query["city"] = bson.M{"$regex": filter.City, "$options": "i"}
	}
	if filter.State != "" {
		query["state"] = bson.M{"$regex": filter.State, "$options": "i"}
	}
	if filter.PropertyType != "" {
		query["property_type"] = filter.PropertyType
	}
	if filter.Category != "" {
		query["property_category"] = filter.Category
	}
	if filter.BHK > 0 {
		query["bhk"] = filter.BHK
	}
	if filter.IsFurnished != nil {
		query["is_furnished"] = *filter.IsFurnished
	}
	if filter.HasParking != nil {
		query["has_parking"] = *filter.HasParking
	}
	if filter.Facing != "" {
		query["facing"] = filter.Facing
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}
	return query
}

// FindByFilter returns one page of matching properties, newest first, along
// with the total match count for pagination.
func (r *PropertyRepository) FindByFilter(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, int64, error) {
	query := filterQuery(filter)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"created_at": -1})

	cursor, err := r.db.Collection("properties").Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("DB error filtering properties", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var dbProperties []*mongoProperty
	if err = cursor.All(ctx, &dbProperties); err != nil {
		r.logger.Error("Error decoding filtered properties", zap.Error(err))
		return nil, 0, err
	}

	total, err := r.db.Collection("properties").CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("DB error counting properties", zap.Error(err))
		return nil, 0, err
	}

	properties := make([]*entity.Property, 0, len(dbProperties))
	for _, dbProperty := range dbProperties {
		properties = append(properties, dbProperty.toEntity())
	}
	return properties, total, nil
}

func (r *PropertyRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Property, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.db.Collection("properties").Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		r.logger.Error("DB error listing user properties", zap.String("userID", userID.Hex()), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var dbProperties []*mongoProperty
	if err = cursor.All(ctx, &dbProperties); err != nil {
		return nil, err
	}
	properties := make([]*entity.Property, 0, len(dbProperties))
	for _, dbProperty := range dbProperties {
		properties = append(properties, dbProperty.toEntity())
	}
	return properties, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	property.UpdatedAt = time.Now()
	dbProperty := fromPropertyEntity(property)
	result, err := r.db.Collection("properties").UpdateOne(ctx, bson.M{"_id": dbProperty.ID}, bson.M{"$set": dbProperty})
	if err != nil {
		r.logger.Error("DB error updating property", zap.String("propertyID", property.ID.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.PropertyStatus) error {
	update := bson.M{"$set": bson.M{"property_status": status, "updated_at": time.Now()}}
	result, err := r.db.Collection("properties").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("DB error updating property status", zap.String("propertyID", id.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// Deactivate soft-deletes a listing.
func (r *PropertyRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}
	result, err := r.db.Collection("properties").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("DB error deactivating property", zap.String("propertyID", id.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.Collection("properties").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("DB error deleting property", zap.String("propertyID", id.Hex()), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.db.Collection("properties").DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		r.logger.Error("DB error deleting user properties", zap.String("userID", userID.Hex()), zap.Error(err))
	}
	return err
}

func mediaField(kind string) string {
	if kind == "video" {
		return "property_videos"
	}
	return "property_pics"
}

// AddMediaURLs appends uploaded media URLs to a listing.
func (r *PropertyRepository) AddMediaURLs(ctx context.Context, id primitive.ObjectID, kind string, urls []string) error {
	update := bson.M{
		"$push": bson.M{mediaField(kind): bson.M{"$each": urls}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.db.Collection("properties").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("DB error adding media URLs", zap.String("propertyID", id.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// RemoveMediaURL pulls a single media URL from a listing.
func (r *PropertyRepository) RemoveMediaURL(ctx context.Context, id primitive.ObjectID, kind string, url string) error {
	update := bson.M{
		"$pull": bson.M{mediaField(kind): url},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.db.Collection("properties").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("DB error removing media URL", zap.String("propertyID", id.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// Stats aggregates the public/admin dashboard counters over active listings.
func (r *PropertyRepository) Stats(ctx context.Context) (*entity.PropertyStats, error) {
	coll := r.db.Collection("properties")

	total, err := coll.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	active, err := coll.CountDocuments(ctx, bson.M{"is_active": true, "property_status": entity.StatusAvailable})
	if err != nil {
		return nil, err
	}
	sold, err := coll.CountDocuments(ctx, bson.M{"is_active": true, "property_status": entity.StatusSold})
	if err != nil {
		return nil, err
	}
	rented, err := coll.CountDocuments(ctx, bson.M{"is_active": true, "property_status": entity.StatusRented})
	if err != nil {
		return nil, err
	}

	byCategoryCursor, err := coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"is_active": true}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$property_category", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		r.logger.Error("DB error aggregating properties by category", zap.Error(err))
		return nil, err
	}
	var categoryRows []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err = byCategoryCursor.All(ctx, &categoryRows); err != nil {
		return nil, err
	}
	byCategory := make(map[string]int64, len(categoryRows))
	for _, row := range categoryRows {
		byCategory[row.Category] = row.Count
	}

	byCityCursor, err := coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"is_active": true}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$city", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
		bson.D{{Key: "$limit", Value: 10}},
	})
	if err != nil {
		r.logger.Error("DB error aggregating properties by city", zap.Error(err))
		return nil, err
	}
	var topCities []entity.CityCount
	if err = byCityCursor.All(ctx, &topCities); err != nil {
		return nil, err
	}

	return &entity.PropertyStats{
		TotalProperties:  total,
		ActiveProperties: active,
		SoldProperties:   sold,
		RentedProperties: rented,
		ByCategory:       byCategory,
		TopCities:        topCities,
	}, nil
}
