package config

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB connects to MongoDB, verifies the connection and bootstraps the
// indexes. The caller owns the handle and disconnects it on shutdown.
func ConnectDB(cfg Config) (*mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logrus.WithField("database", cfg.DBName).Info("connected to MongoDB")
	db := client.Database(cfg.DBName)

	if err := ensureIndexes(db); err != nil {
		logrus.WithError(err).Warn("failed to create indexes")
	}

	return db, nil
}

// ensureIndexes creates the indexes the lookups depend on: unique emails and
// the friend-request access paths (incoming, outgoing, pair lookup).
func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("friendrequests").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipient", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("byRecipient_status"),
		},
		{
			Keys:    bson.D{{Key: "sender", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("bySender_status"),
		},
		{
			Keys:    bson.D{{Key: "sender", Value: 1}, {Key: "recipient", Value: 1}},
			Options: options.Index().SetName("byPair"),
		},
	})
	return err
}
