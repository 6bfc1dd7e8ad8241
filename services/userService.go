package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"language-exchange-backend/models"
	"language-exchange-backend/utils"
)

// UserService handles accounts: registration, login, onboarding, discovery
// and the friend-list view.
type UserService struct {
	DB            *mongo.Database
	Stream        *StreamService
	JWTSecret     string
	JWTExpiration time.Duration
}

func NewUserService(db *mongo.Database, streamService *StreamService, jwtSecret string, jwtExpiration time.Duration) *UserService {
	return &UserService{
		DB:            db,
		Stream:        streamService,
		JWTSecret:     jwtSecret,
		JWTExpiration: jwtExpiration,
	}
}

func (us *UserService) users() *mongo.Collection {
	return us.DB.Collection("users")
}

// Register creates a new account with a bcrypt-hashed password and a default
// avatar, then mirrors it to the chat provider (best effort).
func (us *UserService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, utils.ErrValidation("All fields are required")
	}
	if len(password) < 6 {
		return nil, utils.ErrValidation("Password must be at least 6 characters long")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := models.Validate.Var(email, "email"); err != nil {
		return nil, utils.ErrValidation("Invalid email format")
	}

	var existing models.User
	err := us.users().FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return nil, utils.NewAppError(http.StatusBadRequest, "EMAIL_EXISTS", "Email already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		Email:      email,
		Password:   hashed,
		ProfilePic: utils.RandomAvatar(fullName),
		Friends:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := us.users().InsertOne(ctx, user); err != nil {
		// The unique index closes the race between the lookup and the insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewAppError(http.StatusBadRequest, "EMAIL_EXISTS", "Email already exists")
		}
		return nil, err
	}

	us.Stream.UpsertUser(ctx, &user)
	return &user, nil
}

// Authenticate verifies email and password. Both misses report the same
// generic failure.
func (us *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, utils.ErrValidation("Email and password are required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := us.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewAppError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(password, user.Password) {
		return nil, utils.NewAppError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	}
	return &user, nil
}

// GenerateJWT mints the session token carried by the auth cookie.
func (us *UserService) GenerateJWT(userID primitive.ObjectID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"exp":     time.Now().Add(us.JWTExpiration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(us.JWTSecret))
}

// GetUserByID loads a single user.
func (us *UserService) GetUserByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := us.users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// OnboardInput is the profile payload required to finish onboarding.
type OnboardInput struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profilePic"`
}

// Onboard completes the user's profile and marks the account onboarded, then
// mirrors the updated profile to the chat provider (best effort).
func (us *UserService) Onboard(ctx context.Context, userID primitive.ObjectID, input OnboardInput) (*models.User, error) {
	if input.FullName == "" || input.Bio == "" || input.NativeLanguage == "" ||
		input.LearningLanguage == "" || input.Location == "" {
		return nil, utils.ErrValidation("All fields are required")
	}

	set := bson.M{
		"fullName":         input.FullName,
		"bio":              input.Bio,
		"nativeLanguage":   input.NativeLanguage,
		"learningLanguage": input.LearningLanguage,
		"location":         input.Location,
		"isOnboarded":      true,
		"updatedAt":        time.Now().UTC(),
	}
	if input.ProfilePic != "" {
		set["profilePic"] = input.ProfilePic
	}

	var user models.User
	err := us.users().FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	us.Stream.UpsertUser(ctx, &user)
	return &user, nil
}

// GetRecommendedUsers returns onboarded users the caller is not connected to
// yet, excluding the caller and existing friends, with requestSent flagged
// for recipients of the caller's outstanding pending requests.
func (us *UserService) GetRecommendedUsers(ctx context.Context, current *models.User) ([]models.RecommendedUser, error) {
	exclude := append([]primitive.ObjectID{current.ID}, current.Friends...)
	filter := bson.M{
		"_id":         bson.M{"$nin": exclude},
		"isOnboarded": true,
	}

	cursor, err := us.users().Find(ctx, filter, options.Find().SetLimit(10))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logrus.WithError(err).Warn("failed to close cursor")
		}
	}()

	var candidates []models.RecommendedUser
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}

	pendingTo, err := us.pendingRecipients(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].RequestSent = pendingTo[candidates[i].ID]
	}
	if candidates == nil {
		candidates = []models.RecommendedUser{}
	}
	return candidates, nil
}

// pendingRecipients collects the recipients of the user's pending requests.
func (us *UserService) pendingRecipients(ctx context.Context, userID primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	cursor, err := us.DB.Collection("friendrequests").Find(ctx, bson.M{
		"sender": userID,
		"status": models.RequestPending,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.FriendRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	recipients := make(map[primitive.ObjectID]bool, len(requests))
	for _, fr := range requests {
		recipients[fr.Recipient] = true
	}
	return recipients, nil
}

// GetFriends returns profile projections of the caller's friend set.
// Dangling ids (deleted accounts) are skipped silently.
func (us *UserService) GetFriends(ctx context.Context, current *models.User) ([]models.Profile, error) {
	friends := []models.Profile{}
	if len(current.Friends) == 0 {
		return friends, nil
	}

	cursor, err := us.users().Find(ctx, bson.M{"_id": bson.M{"$in": current.Friends}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// UpdateAvatar stores a new profile-picture URL and mirrors it to the chat
// provider (best effort).
func (us *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, avatarURL string) (*models.User, error) {
	var user models.User
	err := us.users().FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"profilePic": avatarURL, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	us.Stream.UpsertUser(ctx, &user)
	return &user, nil
}
