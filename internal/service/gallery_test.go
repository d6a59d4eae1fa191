package service

import (
	"context"
	"testing"

	"video-order-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVideoStore struct {
	videos     []models.Video
	categories []string
}

func (s *stubVideoStore) ListVideos(_ context.Context, category string) ([]models.Video, error) {
	if category == "" {
		return s.videos, nil
	}
	var out []models.Video
	for _, v := range s.videos {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubVideoStore) ListVideoCategories(_ context.Context) ([]string, error) {
	return s.categories, nil
}

func TestListVideosFromCatalog(t *testing.T) {
	g := NewGalleryService(&stubVideoStore{
		videos: []models.Video{
			{ID: 1, Title: "Desert Drive", Category: "Travel"},
			{ID: 2, Title: "Reef Dive", Category: "Water Sports"},
		},
	})

	all, err := g.ListVideos(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	travel, err := g.ListVideos(context.Background(), "Travel")
	require.NoError(t, err)
	require.Len(t, travel, 1)
	assert.Equal(t, "Desert Drive", travel[0].Title)
}

func TestListVideosFallsBackToSamples(t *testing.T) {
	g := NewGalleryService(&stubVideoStore{})

	all, err := g.ListVideos(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, len(sampleVideos))

	adventure, err := g.ListVideos(context.Background(), "Adventure")
	require.NoError(t, err)
	require.NotEmpty(t, adventure)
	for _, v := range adventure {
		assert.Equal(t, "Adventure", v.Category)
	}
}

func TestCategories(t *testing.T) {
	g := NewGalleryService(&stubVideoStore{categories: []string{"Travel"}})
	cats, err := g.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Travel"}, cats)

	g = NewGalleryService(&stubVideoStore{})
	cats, err = g.Categories(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cats, "Adventure")
	assert.Contains(t, cats, "Science Fiction")
}
