package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind discriminates between the two shapes of a ContentItem
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind returns KindSeries for "series" and KindMovie for anything else
func ParseKind(s string) Kind {
	if Kind(s) == KindSeries {
		return KindSeries
	}
	return KindMovie
}

// ContentItem is a catalog entry. Exactly one of Movie and Series is set, matching Type.
type ContentItem struct {
	ID           primitive.ObjectID `bson:"_id"`
	TMDBID       string             `bson:"tmdbId"`
	Title        string             `bson:"title"`
	Overview     string             `bson:"overview"`
	PosterPath   string             `bson:"posterPath"`
	BackdropPath string             `bson:"backdropPath"`
	ReleaseDate  string             `bson:"releaseDate"`
	Category     string             `bson:"category"`
	Type         Kind               `bson:"type"`
	Movie        *MovieLinks        `bson:"movie,omitempty"`
	Series       *SeriesLinks       `bson:"series,omitempty"`
	AddedAt      time.Time          `bson:"addedAt"`
}

// MovieLinks holds the playback and download links of a movie
type MovieLinks struct {
	StreamLink   string `bson:"streamLink" json:"streamLink"`
	Download480  string `bson:"download480" json:"download480"`
	Download720  string `bson:"download720" json:"download720"`
	Download1080 string `bson:"download1080" json:"download1080"`
}

// SeriesLinks holds the batch links and the episodes of a series
type SeriesLinks struct {
	BatchLink1 string    `bson:"batchLink1" json:"batchLink1"`
	BatchLink2 string    `bson:"batchLink2" json:"batchLink2"`
	BatchLink3 string    `bson:"batchLink3" json:"batchLink3"`
	BatchLink4 string    `bson:"batchLink4" json:"batchLink4"`
	Episodes   []Episode `bson:"episodes" json:"episodes"`
}

// Episode is a single episode of a series
type Episode struct {
	Season       string `bson:"season" json:"season"`
	Episode      string `bson:"episode" json:"episode"`
	StreamLink   string `bson:"streamLink" json:"streamLink"`
	DownloadLink string `bson:"downloadLink" json:"downloadLink"`
}

// contentItemJSON is the flat shape served to the admin front-end.
// Fields of a nil embedded pointer are left out.
type contentItemJSON struct {
	ID           primitive.ObjectID `json:"_id"`
	TMDBID       string             `json:"tmdbId"`
	Title        string             `json:"title"`
	Overview     string             `json:"overview"`
	PosterPath   string             `json:"posterPath"`
	BackdropPath string             `json:"backdropPath"`
	ReleaseDate  string             `json:"releaseDate"`
	Category     string             `json:"category"`
	Type         Kind               `json:"type"`
	*MovieLinks
	*SeriesLinks
	AddedAt time.Time `json:"addedAt"`
}

// MarshalJSON flattens the kind payload into the item
func (ci ContentItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(contentItemJSON{
		ID:           ci.ID,
		TMDBID:       ci.TMDBID,
		Title:        ci.Title,
		Overview:     ci.Overview,
		PosterPath:   ci.PosterPath,
		BackdropPath: ci.BackdropPath,
		ReleaseDate:  ci.ReleaseDate,
		Category:     ci.Category,
		Type:         ci.Type,
		MovieLinks:   ci.Movie,
		SeriesLinks:  ci.Series,
		AddedAt:      ci.AddedAt,
	})
}

// Metadata is the part of a ContentItem fetched from the metadata provider
type Metadata struct {
	TMDBID       string
	Title        string
	Overview     string
	PosterPath   string
	BackdropPath string
	ReleaseDate  string
}
