package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Active reports whether the status still blocks a new request for the pair.
// Rejected requests are terminal but may be superseded by a fresh send.
func (s RequestStatus) Active() bool {
	return s == RequestPending || s == RequestAccepted
}

// FriendRequest is a relationship proposal between two distinct users.
// At most one active (pending or accepted) request exists per unordered pair.
type FriendRequest struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Sender    primitive.ObjectID `json:"sender" bson:"sender"`
	Recipient primitive.ObjectID `json:"recipient" bson:"recipient"`
	Status    RequestStatus      `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RequestView is a request joined with the counterparties' public profiles.
type RequestView struct {
	ID        primitive.ObjectID `json:"id"`
	Sender    Profile            `json:"sender"`
	Recipient Profile            `json:"recipient"`
	Status    RequestStatus      `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
