package business

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Agurato/filmdesk/internal/model"
)

type ContentStorer interface {
	AddContent(ctx context.Context, content *model.ContentItem) error
	UpdateContent(ctx context.Context, content *model.ContentItem) error
	GetContents(ctx context.Context) ([]model.ContentItem, error)
	GetContentFromID(ctx context.Context, id primitive.ObjectID) (*model.ContentItem, error)
	DeleteContent(ctx context.Context, id primitive.ObjectID) error
}

type ContentMetadataGetter interface {
	GetMetadata(tmdbID int, kind model.Kind) (*model.Metadata, error)
}

type ContentManager struct {
	ContentStorer
	ContentMetadataGetter
	now func() time.Time
}

// NewContentManager creates a new ContentManager
func NewContentManager(cs ContentStorer, cmg ContentMetadataGetter) *ContentManager {
	return &ContentManager{
		ContentStorer:         cs,
		ContentMetadataGetter: cmg,
		now:                   time.Now,
	}
}

// SaveContent fetches the metadata of the requested content and stores it.
// Without an ID, a new content is created. With an ID, the content is overwritten.
func (cm ContentManager) SaveContent(ctx context.Context, req *model.ContentRequest) (created bool, err error) {
	var contentID primitive.ObjectID
	if req.ID != "" {
		if contentID, err = primitive.ObjectIDFromHex(req.ID); err != nil {
			return false, fmt.Errorf("incorrect content ID '%s': %w", req.ID, err)
		}
	}

	tmdbID, err := strconv.Atoi(string(req.TMDBID))
	if err != nil {
		return false, fmt.Errorf("incorrect TMDB ID '%s': %w", req.TMDBID, err)
	}
	kind := req.Kind()
	meta, err := cm.ContentMetadataGetter.GetMetadata(tmdbID, kind)
	if err != nil {
		return false, fmt.Errorf("error getting metadata: %w", err)
	}

	content := &model.ContentItem{
		TMDBID:       meta.TMDBID,
		Title:        meta.Title,
		Overview:     meta.Overview,
		PosterPath:   meta.PosterPath,
		BackdropPath: meta.BackdropPath,
		ReleaseDate:  meta.ReleaseDate,
		Category:     req.Category,
		Type:         kind,
		Movie:        req.MovieLinks(),
		Series:       req.SeriesLinks(),
	}

	if req.ID != "" {
		content.ID = contentID
		if err := cm.ContentStorer.UpdateContent(ctx, content); err != nil {
			return false, fmt.Errorf("could not update content in database: %w", err)
		}
		log.Info().Str("contentID", contentID.Hex()).Str("title", content.Title).Msg("Content updated")
		return false, nil
	}

	content.ID = primitive.NewObjectID()
	content.AddedAt = cm.now()
	if err := cm.ContentStorer.AddContent(ctx, content); err != nil {
		return false, fmt.Errorf("could not add content to database: %w", err)
	}
	log.Info().Str("contentID", content.ID.Hex()).Str("title", content.Title).Msg("Content added")
	return true, nil
}

// GetContents returns every content, most recently added first
func (cm ContentManager) GetContents(ctx context.Context) ([]model.ContentItem, error) {
	return cm.ContentStorer.GetContents(ctx)
}

// GetContent returns a content from its hexadecimal ID
func (cm ContentManager) GetContent(ctx context.Context, contentHexID string) (*model.ContentItem, error) {
	contentID, err := primitive.ObjectIDFromHex(contentHexID)
	if err != nil {
		return nil, fmt.Errorf("incorrect content ID '%s': %w: %w", contentHexID, model.ErrNotFound, err)
	}
	content, err := cm.ContentStorer.GetContentFromID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("could not get content from ID '%s': %w", contentHexID, err)
	}
	return content, nil
}

// DeleteContent deletes a content from its hexadecimal ID.
// Deleting a content that does not exist is not an error.
func (cm ContentManager) DeleteContent(ctx context.Context, contentHexID string) error {
	contentID, err := primitive.ObjectIDFromHex(contentHexID)
	if err != nil {
		log.Debug().Str("contentID", contentHexID).Msg("Incorrect content ID, nothing to delete")
		return nil
	}
	if err := cm.ContentStorer.DeleteContent(ctx, contentID); err != nil {
		return fmt.Errorf("could not delete content '%s': %w", contentHexID, err)
	}
	return nil
}
