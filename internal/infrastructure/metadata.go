package infrastructure

import (
	"fmt"
	"strconv"

	tmdb "github.com/cyruzin/golang-tmdb"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Agurato/filmdesk/internal/model"
)

type MetadataWrapper struct {
	client *tmdb.Client
}

// NewMetadataWrapper initializes a MetadataWrapper
func NewMetadataWrapper(tmdbAPIKey string) (*MetadataWrapper, error) {
	client, err := tmdb.Init(tmdbAPIKey)
	if err != nil {
		return nil, err
	}
	return &MetadataWrapper{
		client: client,
	}, nil
}

const (
	posterSize   = tmdb.W500
	backdropSize = tmdb.Original
)

// GetMetadata fetches the details of a movie or a TV show from TMDB
func (mw MetadataWrapper) GetMetadata(tmdbID int, kind model.Kind) (*model.Metadata, error) {
	if kind == model.KindSeries {
		details, err := mw.client.GetTVDetails(tmdbID, nil)
		if err != nil {
			return nil, fmt.Errorf("could not fetch TV show %d from TMDB: %w", tmdbID, err)
		}
		log.Debug().Int("tmdbID", tmdbID).Str("name", details.Name).Msg("Fetched TV show details")
		return newMetadata(details.ID, details.Name, details.Overview, details.PosterPath, details.BackdropPath, details.FirstAirDate), nil
	}

	details, err := mw.client.GetMovieDetails(tmdbID, nil)
	if err != nil {
		return nil, fmt.Errorf("could not fetch movie %d from TMDB: %w", tmdbID, err)
	}
	log.Debug().Int("tmdbID", tmdbID).Str("title", details.Title).Msg("Fetched movie details")
	return newMetadata(details.ID, details.Title, details.Overview, details.PosterPath, details.BackdropPath, details.ReleaseDate), nil
}

// newMetadata maps TMDB fields to a Metadata, turning image paths into full URLs
func newMetadata(id int64, title, overview, posterPath, backdropPath, releaseDate string) *model.Metadata {
	return &model.Metadata{
		TMDBID:       strconv.FormatInt(id, 10),
		Title:        title,
		Overview:     overview,
		PosterPath:   imageURL(posterPath, posterSize),
		BackdropPath: imageURL(backdropPath, backdropSize),
		ReleaseDate:  releaseDate,
	}
}

func imageURL(key, size string) string {
	return lo.Ternary(key == "", "", tmdb.GetImageURL(key, size))
}
