package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is the optional postal address block of a profile.
type Address struct {
	AddressLine string `json:"addressLine,omitempty" bson:"address_line,omitempty"`
	City        string `json:"city,omitempty" bson:"city,omitempty"`
	State       string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode     string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// Profile carries the KYC-style details attached to a user. Everything
// beyond the signup fields is optional.
type Profile struct {
	ID        primitive.ObjectID `json:"id"`
	AuthID    primitive.ObjectID `json:"authId"`
	FullName  string             `json:"fullName,omitempty"`
	Email     string             `json:"email,omitempty"`
	PhoneNo   string             `json:"phoneNo,omitempty"`
	PhoneNo2  string             `json:"phoneNo2,omitempty"`
	PanNo     string             `json:"panNo,omitempty"`
	AdharNo   string             `json:"adharNo,omitempty"`
	Address   Address            `json:"address"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
