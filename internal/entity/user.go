package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User is the identity record. Password always holds the bcrypt hash,
// never the raw password, and is stripped before serialization.
type User struct {
	ID        primitive.ObjectID `json:"id"`
	FullName  string             `json:"fullName"`
	Email     string             `json:"email"`
	PhoneNo   string             `json:"phoneNo"`
	Password  string             `json:"-"`
	Role      string             `json:"role"`
	VerifyOTP *OTPChallenge      `json:"-"`
	ResetOTP  *OTPChallenge      `json:"-"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// OTPChallenge is an outstanding one-time code. Code and ExpiresAt are
// always set and cleared together.
type OTPChallenge struct {
	Code      string
	ExpiresAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sanitized returns a copy safe for embedding in responses and contexts.
func (u *User) Sanitized() *User {
	c := *u
	c.Password = ""
	c.VerifyOTP = nil
	c.ResetOTP = nil
	return &c
}
