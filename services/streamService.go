package services

import (
	"context"
	"time"

	stream "github.com/GetStream/stream-chat-go/v6"
	"github.com/sirupsen/logrus"

	"language-exchange-backend/models"
	"language-exchange-backend/utils"
)

// StreamService mirrors users to the Stream chat/video provider and mints
// per-user chat tokens. Mirroring is best effort: failures are logged and
// never fail the caller's own operation.
type StreamService struct {
	client *stream.Client
}

// NewStreamService builds the provider client. With empty credentials the
// service runs disabled: upserts become no-ops and token minting errors.
func NewStreamService(apiKey, apiSecret string) (*StreamService, error) {
	if apiKey == "" || apiSecret == "" {
		logrus.Warn("STREAM_API_KEY/STREAM_API_SECRET not set, chat provider disabled")
		return &StreamService{}, nil
	}
	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &StreamService{client: client}, nil
}

// Enabled reports whether the provider client is configured.
func (ss *StreamService) Enabled() bool {
	return ss != nil && ss.client != nil
}

// UpsertUser mirrors {id, name, image} to the provider. Best effort.
func (ss *StreamService) UpsertUser(ctx context.Context, user *models.User) {
	if !ss.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := ss.client.UpsertUser(ctx, &stream.User{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Image: user.ProfilePic,
	})
	if err != nil {
		logrus.WithField("user", user.ID.Hex()).WithError(err).Warn("stream user sync failed")
		return
	}
	logrus.WithField("user", user.ID.Hex()).Debug("stream user synced")
}

// CreateToken mints a chat token for the given user id.
func (ss *StreamService) CreateToken(userID string) (string, error) {
	if !ss.Enabled() {
		return "", utils.ErrInternal("Chat provider is not configured")
	}
	token, err := ss.client.CreateToken(userID, time.Time{})
	if err != nil {
		return "", err
	}
	return token, nil
}
