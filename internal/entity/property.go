package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyStatus string

const (
	StatusAvailable         PropertyStatus = "available"
	StatusSold              PropertyStatus = "sold"
	StatusRented            PropertyStatus = "rented"
	StatusUnderConstruction PropertyStatus = "under_construction"
)

func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented, StatusUnderConstruction:
		return true
	}
	return false
}

const (
	PropertyTypeOwner = "owner"
	PropertyTypeLease = "lease"
)

var PropertyCategories = []string{
	"rental", "sale", "commercial_sale", "pg", "hostel", "flatmates", "land", "plot",
}

var Facings = []string{
	"east", "west", "north", "south", "north-east", "north-west", "south-east", "south-west",
}

// Property is a listing post. Media fields hold public object-storage URLs.
type Property struct {
	ID              primitive.ObjectID `json:"id"`
	UserID          primitive.ObjectID `json:"userId"`
	PropertyType    string             `json:"propertyType"`
	PriceTag        string             `json:"priceTag,omitempty"`
	Price           float64            `json:"price"`
	PropertyDetails string             `json:"propertyDetails,omitempty"`
	PropertyPics    []string           `json:"propertyPics"`
	PropertyVideos  []string           `json:"propertyVideos"`
	ContactInfo     string             `json:"contactInfo,omitempty"`
	IsFurnished     bool               `json:"isFurnished"`
	HasParking      bool               `json:"hasParking"`
	Category        string             `json:"propertyCategory,omitempty"`
	BHK             int                `json:"bhk,omitempty"`
	Floor           int                `json:"floor,omitempty"`
	PropertyAge     int                `json:"propertyAge,omitempty"`
	Facing          string             `json:"facing,omitempty"`
	BuildArea       float64            `json:"buildArea,omitempty"`
	CarpetArea      float64            `json:"carpetArea,omitempty"`
	Locality        string             `json:"locality,omitempty"`
	City            string             `json:"city"`
	State           string             `json:"state,omitempty"`
	Pincode         string             `json:"pincode,omitempty"`
	Landmark        string             `json:"landmark,omitempty"`
	Amenities       []string           `json:"amenities"`
	NearbyPlaces    []string           `json:"nearbyPlaces"`
	Status          PropertyStatus     `json:"propertyStatus"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// PropertyFilter drives public search and the admin listing view.
type PropertyFilter struct {
	Location     string
	City         string
	State        string
	PropertyType string
	Category     string
	BHK          int
	MinPrice     float64
	MaxPrice     float64
	IsFurnished  *bool
	HasParking   *bool
	Facing       string
	IsActive     *bool
	Page         int64
	Limit        int64
}

// PropertyStats is the aggregate dashboard payload.
type PropertyStats struct {
	TotalProperties  int64            `json:"totalProperties"`
	ActiveProperties int64            `json:"activeProperties"`
	SoldProperties   int64            `json:"soldProperties"`
	RentedProperties int64            `json:"rentedProperties"`
	ByCategory       map[string]int64 `json:"propertiesByCategory"`
	TopCities        []CityCount      `json:"propertiesByCity"`
}

type CityCount struct {
	City  string `json:"city" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
