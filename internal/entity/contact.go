package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a public inquiry, optionally tied to a property.
type Contact struct {
	ID            primitive.ObjectID  `json:"id"`
	FullName      string              `json:"fullName"`
	ContactNumber string              `json:"contactNumber"`
	Email         string              `json:"email"`
	Description   string              `json:"description"`
	PropertyID    *primitive.ObjectID `json:"propertyId,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}
