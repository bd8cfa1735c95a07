package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ExternalID is an identifier from the metadata provider.
// The admin front-end sends it either as a string or as a number.
type ExternalID string

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (eid *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*eid = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*eid = ExternalID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("external id must be a string or a number: %w", err)
		}
		*eid = ExternalID(n.String())
	}
	return nil
}

// ContentRequest is the body of an add/edit request, as posted by the admin front-end.
// An empty ID creates a new item, otherwise the item with this ID is overwritten.
type ContentRequest struct {
	ID       string     `json:"id"`
	TMDBID   ExternalID `json:"tmdbId"`
	Type     string     `json:"type"`
	Category string     `json:"category"`

	// Series
	Episodes []Episode `json:"episodes"`
	B1       string    `json:"b1"`
	B2       string    `json:"b2"`
	B3       string    `json:"b3"`
	B4       string    `json:"b4"`

	// Movie
	StreamLink string `json:"streamLink"`
	D480       string `json:"d480"`
	D720       string `json:"d720"`
	D1080      string `json:"d1080"`
}

// Kind returns the kind of content requested
func (cr ContentRequest) Kind() Kind {
	return ParseKind(cr.Type)
}

// MovieLinks returns the movie payload of the request, nil for a series
func (cr ContentRequest) MovieLinks() *MovieLinks {
	if cr.Kind() != KindMovie {
		return nil
	}
	return &MovieLinks{
		StreamLink:   cr.StreamLink,
		Download480:  cr.D480,
		Download720:  cr.D720,
		Download1080: cr.D1080,
	}
}

// SeriesLinks returns the series payload of the request, nil for a movie
func (cr ContentRequest) SeriesLinks() *SeriesLinks {
	if cr.Kind() != KindSeries {
		return nil
	}
	return &SeriesLinks{
		BatchLink1: cr.B1,
		BatchLink2: cr.B2,
		BatchLink3: cr.B3,
		BatchLink4: cr.B4,
		Episodes:   lo.Ternary(cr.Episodes == nil, []Episode{}, cr.Episodes),
	}
}
