// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/quick-poll/models"
)

// CollectionName is the MongoDB collection holding the active poll.
const CollectionName = "polls"

// activeKey is the fixed _id of the single poll document.
const activeKey = "active"

type pollDocument struct {
	Key         string `bson:"_id"`
	models.Poll `bson:",inline"`
}

type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongo dials uri and verifies the connection before returning.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}
	return NewMongoStore(client, client.Database(database).Collection(CollectionName)), nil
}

func NewMongoStore(client *mongo.Client, collection *mongo.Collection) *MongoStore {
	return &MongoStore{client: client, collection: collection}
}

func (s *MongoStore) ReplaceAll(ctx context.Context, p *models.Poll) (*models.Poll, error) {
	doc := pollDocument{Key: activeKey, Poll: *p}

	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": activeKey}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to replace poll: %w", err)
	}

	stored := doc.Poll
	return &stored, nil
}

func (s *MongoStore) GetLatest(ctx context.Context) (*models.Poll, error) {
	var doc pollDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": activeKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find poll: %w", err)
	}
	return &doc.Poll, nil
}

func (s *MongoStore) RecordVote(ctx context.Context, pollID string, optionID int) (*models.Poll, error) {
	filter := bson.M{"_id": activeKey, "poll_id": pollID, "options.id": optionID}
	update := bson.M{"$inc": bson.M{"options.$.votes": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc pollDocument
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return &doc.Poll, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	// Nothing matched: either the poll is gone or the option is.
	n, err := s.collection.CountDocuments(ctx, bson.M{"_id": activeKey, "poll_id": pollID})
	if err != nil {
		return nil, fmt.Errorf("failed to count polls: %w", err)
	}
	if n == 0 {
		return nil, ErrPollNotFound
	}
	return nil, ErrOptionNotFound
}

func (s *MongoStore) Clear(ctx context.Context) error {
	if _, err := s.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear polls: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
