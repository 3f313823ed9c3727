// Package media is the storage collaborator for user uploads. The stores
// persist only the reference strings handed out here.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Object is one stored upload.
type Object struct {
	Key         string    `bson:"key"`
	Filename    string    `bson:"filename"`
	ContentType string    `bson:"content_type"`
	Data        []byte    `bson:"data"`
	CreatedAt   time.Time `bson:"created_at"`
}

// Store keeps uploads in MongoDB and hands out reference strings.
type Store struct {
	collection *mongo.Collection
}

// NewStore creates a media store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection("media")}
}

// Save stores the upload and returns its retrievable reference.
func (s *Store) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	obj := Object{
		Key:         uuid.NewString(),
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.collection.InsertOne(ctx, obj); err != nil {
		return "", fmt.Errorf("storing media object: %w", err)
	}
	return "/media/" + obj.Key, nil
}

// Get retrieves a stored upload by its key.
func (s *Store) Get(ctx context.Context, key string) (*Object, error) {
	var obj Object
	if err := s.collection.FindOne(ctx, bson.M{"key": key}).Decode(&obj); err != nil {
		return nil, fmt.Errorf("loading media object %s: %w", key, err)
	}
	return &obj, nil
}
