package service

import (
	"context"

	"video-order-service/internal/models"
	"video-order-service/internal/util"

	"go.uber.org/zap"
)

// videoStore is the slice of the store the gallery needs.
type videoStore interface {
	ListVideos(ctx context.Context, category string) ([]models.Video, error)
	ListVideoCategories(ctx context.Context) ([]string, error)
}

// GalleryService serves the sample-video gallery with category filtering.
type GalleryService struct {
	store  videoStore
	logger *zap.Logger
}

// NewGalleryService creates a new gallery service
func NewGalleryService(store videoStore) *GalleryService {
	return &GalleryService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ListVideos returns gallery videos, filtered by category when given.
// An empty catalog falls back to the built-in samples.
func (g *GalleryService) ListVideos(ctx context.Context, category string) ([]models.Video, error) {
	videos, err := g.store.ListVideos(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(videos) > 0 {
		return videos, nil
	}

	g.logger.Debug("Gallery catalog empty, serving samples",
		zap.String("category", category))

	if category == "" {
		return sampleVideos, nil
	}
	var filtered []models.Video
	for _, v := range sampleVideos {
		if v.Category == category {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// Categories returns the distinct gallery categories.
func (g *GalleryService) Categories(ctx context.Context) ([]string, error) {
	categories, err := g.store.ListVideoCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, v := range sampleVideos {
		if !seen[v.Category] {
			seen[v.Category] = true
			out = append(out, v.Category)
		}
	}
	return out, nil
}

var sampleVideos = []models.Video{
	{
		ID:           1,
		Title:        "Mountain Climbing Adventure",
		Description:  "Experience the thrill of scaling a mountain peak with stunning views.",
		ThumbnailURL: "https://images.unsplash.com/photo-1522163182402-834f871fd851?w=800&q=80",
		VideoURL:     "https://example.com/videos/mountain-climbing.mp4",
		Category:     "Adventure",
	},
	{
		ID:           2,
		Title:        "Scuba Diving with Dolphins",
		Description:  "Swim alongside dolphins in crystal clear waters.",
		ThumbnailURL: "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=800&q=80",
		VideoURL:     "https://example.com/videos/scuba-diving.mp4",
		Category:     "Water Sports",
	},
	{
		ID:           3,
		Title:        "Skydiving Experience",
		Description:  "Feel the adrenaline rush of free-falling from 15,000 feet.",
		ThumbnailURL: "https://images.unsplash.com/photo-1521673252667-e05da380b252?w=800&q=80",
		VideoURL:     "https://example.com/videos/skydiving.mp4",
		Category:     "Extreme Sports",
	},
	{
		ID:           4,
		Title:        "Concert Performance",
		Description:  "Rock out on stage in front of thousands of fans.",
		ThumbnailURL: "https://images.unsplash.com/photo-1501386761578-eac5c94b800a?w=800&q=80",
		VideoURL:     "https://example.com/videos/concert.mp4",
		Category:     "Entertainment",
	},
	{
		ID:           5,
		Title:        "Safari Adventure",
		Description:  "Get up close with wild animals in their natural habitat.",
		ThumbnailURL: "https://images.unsplash.com/photo-1516426122078-c23e76319801?w=800&q=80",
		VideoURL:     "https://example.com/videos/safari.mp4",
		Category:     "Travel",
	},
	{
		ID:           6,
		Title:        "Space Exploration",
		Description:  "Experience what it's like to be an astronaut in outer space.",
		ThumbnailURL: "https://images.unsplash.com/photo-1446776811953-b23d57bd21aa?w=800&q=80",
		VideoURL:     "https://example.com/videos/space.mp4",
		Category:     "Science Fiction",
	},
}
