package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"language-exchange-backend/models"
	"language-exchange-backend/utils"
)

// FriendService owns the friend-request lifecycle and keeps both users'
// friend sets symmetric when a request is accepted.
type FriendService struct {
	DB *mongo.Database
}

func NewFriendService(db *mongo.Database) *FriendService {
	return &FriendService{DB: db}
}

func (fs *FriendService) requests() *mongo.Collection {
	return fs.DB.Collection("friendrequests")
}

func (fs *FriendService) users() *mongo.Collection {
	return fs.DB.Collection("users")
}

// guardSend checks the send rules in order: self-request, recipient
// existence, already-friends, duplicate active request. existing may be a
// request in either direction; a rejected one does not block.
func guardSend(senderID, recipientID primitive.ObjectID, recipient *models.User, existing *models.FriendRequest) error {
	if senderID == recipientID {
		return utils.NewAppError(http.StatusBadRequest, "SELF_REQUEST", "You cannot send a friend request to yourself")
	}
	if recipient == nil {
		return utils.NewAppError(http.StatusNotFound, "RECIPIENT_NOT_FOUND", "Recipient not found")
	}
	if recipient.HasFriend(senderID) {
		return utils.NewAppError(http.StatusBadRequest, "ALREADY_FRIENDS", "You are already friends with this user")
	}
	if existing != nil && existing.Status.Active() {
		return utils.NewAppError(http.StatusConflict, "REQUEST_EXISTS", "A friend request already exists between you and this user")
	}
	return nil
}

// guardRespond checks that the actor may accept or reject the request: only
// the recipient, and only while it is still pending.
func guardRespond(fr *models.FriendRequest, actorID primitive.ObjectID) error {
	if fr.Recipient != actorID {
		return utils.ErrForbidden("You can only respond to requests sent to you")
	}
	if fr.Status != models.RequestPending {
		return utils.ErrInvalidState("This friend request is no longer pending")
	}
	return nil
}

// needsLinkRepair reports whether an accept retry should replay the friend
// link: the request is already accepted and its recipient is asking again,
// which happens when a previous accept flipped the status but failed before
// both friend sets were updated.
func needsLinkRepair(fr *models.FriendRequest, actorID primitive.ObjectID) bool {
	return fr.Status == models.RequestAccepted && fr.Recipient == actorID
}

// guardCancel checks that the actor may cancel the request: only the sender,
// and only while it is still pending.
func guardCancel(fr *models.FriendRequest, actorID primitive.ObjectID) error {
	if fr.Sender != actorID {
		return utils.ErrForbidden("You can only cancel requests you sent")
	}
	if fr.Status != models.RequestPending {
		return utils.ErrInvalidState("Only pending friend requests can be cancelled")
	}
	return nil
}

// SendFriendRequest creates a pending request from sender to recipient.
// A rejected request between the pair is superseded: deleted and replaced by
// the fresh pending record.
func (fs *FriendService) SendFriendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) (*models.FriendRequest, error) {
	var recipient *models.User
	if senderID != recipientID {
		var doc models.User
		err := fs.users().FindOne(ctx, bson.M{"_id": recipientID}).Decode(&doc)
		if err == nil {
			recipient = &doc
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	var existing *models.FriendRequest
	{
		var doc models.FriendRequest
		err := fs.requests().FindOne(ctx, bson.M{
			"$or": []bson.M{
				{"sender": senderID, "recipient": recipientID},
				{"sender": recipientID, "recipient": senderID},
			},
		}).Decode(&doc)
		if err == nil {
			existing = &doc
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	if err := guardSend(senderID, recipientID, recipient, existing); err != nil {
		return nil, err
	}

	// The only existing record left is a rejected one; supersede it.
	if existing != nil {
		if _, err := fs.requests().DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	request := models.FriendRequest{
		ID:        primitive.NewObjectID(),
		Sender:    senderID,
		Recipient: recipientID,
		Status:    models.RequestPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := fs.requests().InsertOne(ctx, request); err != nil {
		return nil, err
	}
	return &request, nil
}

// AcceptFriendRequest flips a pending request to accepted and inserts each
// user into the other's friend set as one atomic unit. When the deployment
// does not support transactions (standalone server), it falls back to a
// compare-and-set on the pending status followed by the idempotent link.
func (fs *FriendService) AcceptFriendRequest(ctx context.Context, requestID, actorID primitive.ObjectID) (*models.FriendRequest, error) {
	fr, err := fs.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if needsLinkRepair(fr, actorID) {
		// A previous accept may have flipped the status and then died
		// before both friend sets were updated. Replay the idempotent
		// link instead of rejecting the retry.
		if err := fs.linkFriends(ctx, fr.Sender, fr.Recipient); err != nil {
			return nil, utils.ErrInternal("Failed to update friend lists")
		}
		return fr, nil
	}
	if err := guardRespond(fr, actorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session, err := fs.DB.Client().StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		_, txErr := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			if err := fs.markAccepted(sc, fr.ID, now); err != nil {
				return nil, err
			}
			return nil, fs.linkFriends(sc, fr.Sender, fr.Recipient)
		})
		if txErr == nil {
			fr.Status = models.RequestAccepted
			fr.UpdatedAt = now
			return fr, nil
		}
		if _, ok := utils.AsAppError(txErr); ok {
			return nil, txErr
		}
		if !transactionUnsupported(txErr) {
			return nil, txErr
		}
		logrus.Warn("transactions unavailable, accepting via compare-and-set")
	}

	// Fallback: CAS first so a racing accept/cancel/reject loses cleanly,
	// then the link, which is idempotent and safe to replay.
	if err := fs.markAccepted(ctx, fr.ID, now); err != nil {
		return nil, err
	}
	if err := fs.linkFriends(ctx, fr.Sender, fr.Recipient); err != nil {
		logrus.WithFields(logrus.Fields{
			"request":   fr.ID.Hex(),
			"sender":    fr.Sender.Hex(),
			"recipient": fr.Recipient.Hex(),
		}).WithError(err).Error("friend link failed after accept; retrying the accept repairs it")
		return nil, utils.ErrInternal("Failed to update friend lists")
	}
	fr.Status = models.RequestAccepted
	fr.UpdatedAt = now
	return fr, nil
}

// RejectFriendRequest flips a pending request to rejected. Rejection is
// terminal; the record stays so a later send can supersede it.
func (fs *FriendService) RejectFriendRequest(ctx context.Context, requestID, actorID primitive.ObjectID) (*models.FriendRequest, error) {
	fr, err := fs.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := guardRespond(fr, actorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := fs.requests().UpdateOne(ctx,
		bson.M{"_id": fr.ID, "status": models.RequestPending},
		bson.M{"$set": bson.M{"status": models.RequestRejected, "updatedAt": now}},
	)
	if err != nil {
		return nil, err
	}
	if res.ModifiedCount == 0 {
		return nil, utils.ErrInvalidState("This friend request is no longer pending")
	}
	fr.Status = models.RequestRejected
	fr.UpdatedAt = now
	return fr, nil
}

// CancelFriendRequest deletes a pending request. Only the sender may cancel.
func (fs *FriendService) CancelFriendRequest(ctx context.Context, requestID, actorID primitive.ObjectID) error {
	fr, err := fs.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := guardCancel(fr, actorID); err != nil {
		return err
	}

	res, err := fs.requests().DeleteOne(ctx, bson.M{"_id": fr.ID, "status": models.RequestPending})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrInvalidState("Only pending friend requests can be cancelled")
	}
	return nil
}

// ListIncoming returns pending requests addressed to the user, newest first,
// with the sender's profile populated.
func (fs *FriendService) ListIncoming(ctx context.Context, userID primitive.ObjectID) ([]models.RequestView, error) {
	filter := bson.M{"recipient": userID, "status": models.RequestPending}
	return fs.listRequests(ctx, filter, bson.D{{Key: "createdAt", Value: -1}})
}

// ListOutgoing returns pending requests the user sent, newest first, with the
// recipient's profile populated.
func (fs *FriendService) ListOutgoing(ctx context.Context, userID primitive.ObjectID) ([]models.RequestView, error) {
	filter := bson.M{"sender": userID, "status": models.RequestPending}
	return fs.listRequests(ctx, filter, bson.D{{Key: "createdAt", Value: -1}})
}

// ListAccepted returns accepted requests involving the user, most recently
// updated first. Entries whose counterparty no longer exists are dropped.
func (fs *FriendService) ListAccepted(ctx context.Context, userID primitive.ObjectID) ([]models.RequestView, error) {
	filter := bson.M{
		"status": models.RequestAccepted,
		"$or": []bson.M{
			{"sender": userID},
			{"recipient": userID},
		},
	}
	return fs.listRequests(ctx, filter, bson.D{{Key: "updatedAt", Value: -1}})
}

func (fs *FriendService) getRequest(ctx context.Context, requestID primitive.ObjectID) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	err := fs.requests().FindOne(ctx, bson.M{"_id": requestID}).Decode(&fr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Friend request not found")
	}
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

// markAccepted performs the compare-and-set transition pending -> accepted.
func (fs *FriendService) markAccepted(ctx context.Context, requestID primitive.ObjectID, now time.Time) error {
	res, err := fs.requests().UpdateOne(ctx,
		bson.M{"_id": requestID, "status": models.RequestPending},
		bson.M{"$set": bson.M{"status": models.RequestAccepted, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return utils.ErrInvalidState("This friend request is no longer pending")
	}
	return nil
}

// linkFriends inserts each user into the other's friend set. $addToSet keeps
// the set semantics, so the operation is idempotent and safe to retry. Each
// write touches a single document; no cross-document lock is needed.
func (fs *FriendService) linkFriends(ctx context.Context, a, b primitive.ObjectID) error {
	if _, err := fs.users().UpdateOne(ctx,
		bson.M{"_id": a},
		bson.M{"$addToSet": bson.M{"friends": b}},
	); err != nil {
		return err
	}
	_, err := fs.users().UpdateOne(ctx,
		bson.M{"_id": b},
		bson.M{"$addToSet": bson.M{"friends": a}},
	)
	return err
}

// listRequests loads requests matching the filter and joins both parties'
// profiles. Requests whose counterparties are gone are skipped.
func (fs *FriendService) listRequests(ctx context.Context, filter bson.M, sort bson.D) ([]models.RequestView, error) {
	cursor, err := fs.requests().Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logrus.WithError(err).Warn("failed to close cursor")
		}
	}()

	var requests []models.FriendRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}

	profiles, err := fs.loadProfiles(ctx, requests)
	if err != nil {
		return nil, err
	}

	views := make([]models.RequestView, 0, len(requests))
	for _, fr := range requests {
		sender, okS := profiles[fr.Sender]
		recipient, okR := profiles[fr.Recipient]
		if !okS || !okR {
			logrus.WithField("request", fr.ID.Hex()).Debug("skipping request with missing counterparty")
			continue
		}
		views = append(views, models.RequestView{
			ID:        fr.ID,
			Sender:    sender,
			Recipient: recipient,
			Status:    fr.Status,
			CreatedAt: fr.CreatedAt,
			UpdatedAt: fr.UpdatedAt,
		})
	}
	return views, nil
}

func (fs *FriendService) loadProfiles(ctx context.Context, requests []models.FriendRequest) (map[primitive.ObjectID]models.Profile, error) {
	ids := make([]primitive.ObjectID, 0, len(requests)*2)
	seen := make(map[primitive.ObjectID]bool)
	for _, fr := range requests {
		for _, id := range []primitive.ObjectID{fr.Sender, fr.Recipient} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	profiles := make(map[primitive.ObjectID]models.Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	cursor, err := fs.users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Profile
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, p := range found {
		profiles[p.ID] = p
	}
	return profiles, nil
}

// transactionUnsupported reports whether the error means the server cannot
// run multi-document transactions (standalone deployments).
func transactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 {
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers")
}
