package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"language-exchange-backend/models"
)

func TestStreamServiceDisabled(t *testing.T) {
	ss, err := NewStreamService("", "")
	require.NoError(t, err)
	assert.False(t, ss.Enabled())

	// Upsert on a disabled provider is a silent no-op.
	user := &models.User{ID: primitive.NewObjectID(), FullName: "Test"}
	ss.UpsertUser(context.Background(), user)

	_, err = ss.CreateToken(user.ID.Hex())
	assert.Error(t, err)
}

func TestStreamServiceCreateToken(t *testing.T) {
	ss, err := NewStreamService("dummy-key", "dummy-secret")
	require.NoError(t, err)
	require.True(t, ss.Enabled())

	token, err := ss.CreateToken(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	// Tokens are JWTs minted locally with the API secret.
	assert.Len(t, strings.Split(token, "."), 3)
}
