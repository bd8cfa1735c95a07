package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Agurato/filmdesk/internal/model"
)

type MongoDB struct {
	client *mongo.Client

	contentsColl *mongo.Collection
}

// NewMongoDB connects to the database and checks that it is reachable
func NewMongoDB(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("could not reach database: %w", err)
	}

	m := &MongoDB{
		client:       mongoClient,
		contentsColl: mongoClient.Database(dbName).Collection("contents"),
	}
	if _, err := m.contentsColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "addedAt", Value: -1}},
	}); err != nil {
		log.Warn().Err(err).Msg("Could not create addedAt index")
	}
	log.Info().Str("database", dbName).Msg("Database connected")

	return m, nil
}

// Close closes the MongoDB connection
func (m MongoDB) Close(ctx context.Context) {
	if err := m.client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Could not disconnect from database")
	}
}

// AddContent inserts a new content in the DB
func (m MongoDB) AddContent(ctx context.Context, content *model.ContentItem) error {
	_, err := m.contentsColl.InsertOne(ctx, content)
	return err
}

// UpdateContent overwrites the content with the same ID.
// The payload of the other kind is removed, and the creation date is kept.
// Nothing happens if no content has this ID.
func (m MongoDB) UpdateContent(ctx context.Context, content *model.ContentItem) error {
	set := bson.M{
		"tmdbId":       content.TMDBID,
		"title":        content.Title,
		"overview":     content.Overview,
		"posterPath":   content.PosterPath,
		"backdropPath": content.BackdropPath,
		"releaseDate":  content.ReleaseDate,
		"category":     content.Category,
		"type":         content.Type,
	}
	unset := bson.M{}
	if content.Series != nil {
		set["series"] = content.Series
		unset["movie"] = ""
	} else {
		set["movie"] = content.Movie
		unset["series"] = ""
	}

	res, err := m.contentsColl.UpdateOne(ctx, bson.M{"_id": content.ID}, bson.M{"$set": set, "$unset": unset})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		log.Warn().Str("contentID", content.ID.Hex()).Msg("No content to update")
	}
	return nil
}

// GetContents returns every content, most recently added first
func (m MongoDB) GetContents(ctx context.Context) ([]model.ContentItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}, {Key: "_id", Value: -1}})
	contentsCur, err := m.contentsColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving contents from DB: %w", err)
	}
	defer contentsCur.Close(ctx)

	contents := []model.ContentItem{}
	for contentsCur.Next(ctx) {
		var content model.ContentItem
		if err := contentsCur.Decode(&content); err != nil {
			return nil, fmt.Errorf("error while decoding content from DB: %w", err)
		}
		contents = append(contents, content)
	}
	if err := contentsCur.Err(); err != nil {
		return nil, fmt.Errorf("error while iterating contents from DB: %w", err)
	}
	return contents, nil
}

// GetContentFromID returns a content from its ID
func (m MongoDB) GetContentFromID(ctx context.Context, id primitive.ObjectID) (*model.ContentItem, error) {
	var content model.ContentItem
	err := m.contentsColl.FindOne(ctx, bson.M{"_id": id}).Decode(&content)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// DeleteContent deletes a content from the DB, if it exists
func (m MongoDB) DeleteContent(ctx context.Context, id primitive.ObjectID) error {
	del, err := m.contentsColl.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if del.DeletedCount == 0 {
		log.Debug().Str("contentID", id.Hex()).Msg("No content to delete")
	}
	return nil
}
