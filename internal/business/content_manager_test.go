package business

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Agurato/filmdesk/internal/model"
)

// memStore is an in-memory ContentStorer following the MongoDB update semantics
type memStore struct {
	contents []model.ContentItem
	err      error
}

func (ms *memStore) AddContent(_ context.Context, content *model.ContentItem) error {
	if ms.err != nil {
		return ms.err
	}
	ms.contents = append(ms.contents, *content)
	return nil
}

func (ms *memStore) UpdateContent(_ context.Context, content *model.ContentItem) error {
	if ms.err != nil {
		return ms.err
	}
	for i, c := range ms.contents {
		if c.ID == content.ID {
			updated := *content
			updated.AddedAt = c.AddedAt
			ms.contents[i] = updated
		}
	}
	return nil
}

func (ms *memStore) GetContents(_ context.Context) ([]model.ContentItem, error) {
	if ms.err != nil {
		return nil, ms.err
	}
	contents := append([]model.ContentItem{}, ms.contents...)
	sort.SliceStable(contents, func(i, j int) bool {
		return contents[i].AddedAt.After(contents[j].AddedAt)
	})
	return contents, nil
}

func (ms *memStore) GetContentFromID(_ context.Context, id primitive.ObjectID) (*model.ContentItem, error) {
	if ms.err != nil {
		return nil, ms.err
	}
	content, ok := lo.Find(ms.contents, func(c model.ContentItem) bool { return c.ID == id })
	if !ok {
		return nil, model.ErrNotFound
	}
	return &content, nil
}

func (ms *memStore) DeleteContent(_ context.Context, id primitive.ObjectID) error {
	if ms.err != nil {
		return ms.err
	}
	ms.contents = lo.Reject(ms.contents, func(c model.ContentItem, _ int) bool { return c.ID == id })
	return nil
}

type fakeMetadata struct {
	calls []string
	err   error
}

func (fm *fakeMetadata) GetMetadata(tmdbID int, kind model.Kind) (*model.Metadata, error) {
	fm.calls = append(fm.calls, string(kind))
	if fm.err != nil {
		return nil, fm.err
	}
	if kind == model.KindSeries {
		return &model.Metadata{TMDBID: "1399", Title: "Game of Thrones", ReleaseDate: "2011-04-17"}, nil
	}
	return &model.Metadata{
		TMDBID:      "603",
		Title:       "The Matrix",
		Overview:    "Neo",
		PosterPath:  "https://image.tmdb.org/t/p/w500/poster.jpg",
		ReleaseDate: "1999-03-30",
	}, nil
}

func newTestManager() (*ContentManager, *memStore, *fakeMetadata) {
	store := &memStore{}
	meta := &fakeMetadata{}
	cm := NewContentManager(store, meta)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cm.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return cm, store, meta
}

func TestSaveContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Movie", func(t *testing.T) {
		cm, store, meta := newTestManager()
		created, err := cm.SaveContent(ctx, &model.ContentRequest{
			TMDBID:     "603",
			Type:       "movie",
			Category:   "Action",
			StreamLink: "http://x/s",
			B1:         "ignored",
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, []string{"movie"}, meta.calls)

		require.Len(t, store.contents, 1)
		content := store.contents[0]
		assert.False(t, content.ID.IsZero())
		assert.False(t, content.AddedAt.IsZero())
		assert.Equal(t, model.KindMovie, content.Type)
		assert.Equal(t, "603", content.TMDBID)
		assert.Equal(t, "The Matrix", content.Title)
		assert.Equal(t, "Neo", content.Overview)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", content.PosterPath)
		assert.Equal(t, "Action", content.Category)
		assert.Equal(t, "http://x/s", content.Movie.StreamLink)
		assert.Nil(t, content.Series)
	})

	t.Run("Series", func(t *testing.T) {
		cm, store, meta := newTestManager()
		episodes := []model.Episode{
			{Season: "2", Episode: "1", StreamLink: "s21", DownloadLink: "d21"},
			{Season: "1", Episode: "3", StreamLink: "s13", DownloadLink: "d13"},
			{Season: "1", Episode: "3", StreamLink: "dup", DownloadLink: "dup"},
		}
		created, err := cm.SaveContent(ctx, &model.ContentRequest{
			TMDBID:   "1399",
			Type:     "series",
			Episodes: episodes,
			D480:     "ignored",
			B2:       "b2",
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, []string{"series"}, meta.calls)

		require.Len(t, store.contents, 1)
		content := store.contents[0]
		assert.Equal(t, model.KindSeries, content.Type)
		assert.Nil(t, content.Movie)
		assert.Equal(t, episodes, content.Series.Episodes)
		assert.Equal(t, "b2", content.Series.BatchLink2)
	})

	t.Run("UpdateOverwritesPayload", func(t *testing.T) {
		cm, store, _ := newTestManager()
		_, err := cm.SaveContent(ctx, &model.ContentRequest{
			TMDBID:   "1399",
			Type:     "series",
			Category: "Drama",
			Episodes: []model.Episode{{Season: "1", Episode: "1"}},
			B1:       "b1",
		})
		require.NoError(t, err)
		original := store.contents[0]

		created, err := cm.SaveContent(ctx, &model.ContentRequest{
			ID:       original.ID.Hex(),
			TMDBID:   "603",
			Type:     "movie",
			Category: "Action",
			D1080:    "http://x/1080",
		})
		require.NoError(t, err)
		assert.False(t, created)

		require.Len(t, store.contents, 1)
		content := store.contents[0]
		assert.Equal(t, original.ID, content.ID)
		assert.Equal(t, original.AddedAt, content.AddedAt)
		assert.Equal(t, model.KindMovie, content.Type)
		assert.Equal(t, "Action", content.Category)
		assert.Equal(t, "The Matrix", content.Title)
		assert.Nil(t, content.Series)
		assert.Equal(t, &model.MovieLinks{Download1080: "http://x/1080"}, content.Movie)
	})

	t.Run("UpdateMissingIsNoOp", func(t *testing.T) {
		cm, store, _ := newTestManager()
		created, err := cm.SaveContent(ctx, &model.ContentRequest{
			ID:     primitive.NewObjectID().Hex(),
			TMDBID: "603",
		})
		assert.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, store.contents)
	})

	t.Run("Errors", func(t *testing.T) {
		cm, store, meta := newTestManager()

		_, err := cm.SaveContent(ctx, &model.ContentRequest{ID: "not-an-id", TMDBID: "603"})
		assert.Error(t, err)

		_, err = cm.SaveContent(ctx, &model.ContentRequest{TMDBID: "abc"})
		assert.Error(t, err)
		assert.Empty(t, meta.calls)

		meta.err = errors.New("404 not found")
		_, err = cm.SaveContent(ctx, &model.ContentRequest{TMDBID: "603"})
		assert.ErrorIs(t, err, meta.err)
		assert.Empty(t, store.contents)

		meta.err = nil
		store.err = errors.New("connection refused")
		_, err = cm.SaveContent(ctx, &model.ContentRequest{TMDBID: "603"})
		assert.ErrorIs(t, err, store.err)
	})
}

func TestGetContents(t *testing.T) {
	ctx := context.Background()
	cm, _, _ := newTestManager()

	contents, err := cm.GetContents(ctx)
	require.NoError(t, err)
	assert.Empty(t, contents)

	for _, kind := range []string{"movie", "series", "movie", "series"} {
		_, err := cm.SaveContent(ctx, &model.ContentRequest{TMDBID: "1", Type: kind})
		require.NoError(t, err)
	}
	contents, err = cm.GetContents(ctx)
	require.NoError(t, err)
	require.Len(t, contents, 4)
	for i := 1; i < len(contents); i++ {
		assert.True(t, contents[i-1].AddedAt.After(contents[i].AddedAt))
	}
	assert.Equal(t, model.KindSeries, contents[0].Type)
}

func TestGetContent(t *testing.T) {
	ctx := context.Background()
	cm, store, _ := newTestManager()
	_, err := cm.SaveContent(ctx, &model.ContentRequest{TMDBID: "603"})
	require.NoError(t, err)

	content, err := cm.GetContent(ctx, store.contents[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", content.Title)

	_, err = cm.GetContent(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = cm.GetContent(ctx, "not-an-id")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = cm.GetContent(ctx, "")
	assert.ErrorIs(t, err, model.ErrNotFound)

	store.err = errors.New("connection refused")
	_, err = cm.GetContent(ctx, primitive.NewObjectID().Hex())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteContent(t *testing.T) {
	ctx := context.Background()
	cm, store, _ := newTestManager()
	_, err := cm.SaveContent(ctx, &model.ContentRequest{TMDBID: "603"})
	require.NoError(t, err)
	id := store.contents[0].ID.Hex()

	assert.NoError(t, cm.DeleteContent(ctx, id))
	assert.Empty(t, store.contents)

	assert.NoError(t, cm.DeleteContent(ctx, id))
	assert.NoError(t, cm.DeleteContent(ctx, "not-an-id"))

	store.err = errors.New("connection refused")
	assert.Error(t, cm.DeleteContent(ctx, id))
}
