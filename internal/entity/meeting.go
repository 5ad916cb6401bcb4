package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

func ValidMeetingStatus(s MeetingStatus) bool {
	switch s {
	case MeetingScheduled, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// Meeting is a site-visit appointment, optionally tied to a property.
type Meeting struct {
	ID         primitive.ObjectID  `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Date       time.Time           `json:"date"`
	Place      string              `json:"place"`
	PropertyID *primitive.ObjectID `json:"propertyId,omitempty"`
	Status     MeetingStatus       `json:"meetingStatus"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// MeetingFilter drives the admin meeting listing.
type MeetingFilter struct {
	Status    MeetingStatus
	StartDate time.Time
	EndDate   time.Time
	Page      int64
	Limit     int64
}
