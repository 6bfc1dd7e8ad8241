package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHasFriend(t *testing.T) {
	friend := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	user := User{
		ID:      primitive.NewObjectID(),
		Friends: []primitive.ObjectID{friend},
	}

	assert.True(t, user.HasFriend(friend))
	assert.False(t, user.HasFriend(stranger))

	empty := User{ID: primitive.NewObjectID()}
	assert.False(t, empty.HasFriend(friend))
}

func TestPublicProfile(t *testing.T) {
	user := User{
		ID:               primitive.NewObjectID(),
		FullName:         "Mina Park",
		Email:            "mina@example.com",
		Password:         "hash",
		ProfilePic:       "https://example.com/p.png",
		NativeLanguage:   "korean",
		LearningLanguage: "spanish",
		Bio:              "hello",
	}

	profile := user.PublicProfile()
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "Mina Park", profile.FullName)
	assert.Equal(t, "korean", profile.NativeLanguage)
	assert.Equal(t, "spanish", profile.LearningLanguage)
	assert.Equal(t, user.ProfilePic, profile.ProfilePic)
}
