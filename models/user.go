package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var Validate = validator.New()

// User is an account in the language-exchange network.
// Friends is a set: unique, unordered, only ever grown via $addToSet.
type User struct {
	ID               primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FullName         string               `json:"fullName" bson:"fullName" validate:"required"`
	Email            string               `json:"email" bson:"email" validate:"required,email"`
	Password         string               `json:"-" bson:"password" validate:"required,min=6"`
	Bio              string               `json:"bio" bson:"bio"`
	ProfilePic       string               `json:"profilePic" bson:"profilePic"`
	NativeLanguage   string               `json:"nativeLanguage" bson:"nativeLanguage"`
	LearningLanguage string               `json:"learningLanguage" bson:"learningLanguage"`
	Location         string               `json:"location" bson:"location"`
	IsOnboarded      bool                 `json:"isOnboarded" bson:"isOnboarded"`
	Friends          []primitive.ObjectID `json:"friends" bson:"friends"`
	CreatedAt        time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasFriend reports whether id is already in the user's friend set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, fid := range u.Friends {
		if fid == id {
			return true
		}
	}
	return false
}

// Profile is the public projection embedded in friend and request listings.
type Profile struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	FullName         string             `json:"fullName" bson:"fullName"`
	ProfilePic       string             `json:"profilePic" bson:"profilePic"`
	NativeLanguage   string             `json:"nativeLanguage" bson:"nativeLanguage"`
	LearningLanguage string             `json:"learningLanguage" bson:"learningLanguage"`
}

// PublicProfile returns the user's public projection.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:               u.ID,
		FullName:         u.FullName,
		ProfilePic:       u.ProfilePic,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}

// RecommendedUser annotates a profile with discovery state for the caller.
type RecommendedUser struct {
	Profile     `bson:",inline"`
	Bio         string `json:"bio" bson:"bio"`
	Location    string `json:"location" bson:"location"`
	RequestSent bool   `json:"requestSent" bson:"-"`
}
