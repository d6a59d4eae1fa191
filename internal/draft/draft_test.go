package draft

import (
	"errors"
	"testing"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/models"
	"video-order-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	d := s.Draft()

	assert.Equal(t, 15, d.DurationSeconds)
	assert.Equal(t, models.StyleRealistic, d.Style)
	assert.Empty(t, d.ReferenceImages)
	assert.Equal(t, int64(5), d.Price)
}

func TestDescriptionLengthBoundary(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.SetDescription("123456789")) // 9 chars
	assert.False(t, s.IsStep1Valid())

	require.NoError(t, s.SetDescription("1234567890")) // 10 chars
	assert.True(t, s.IsStep1Valid())

	// characters, not bytes
	require.NoError(t, s.SetDescription("ééééééééé")) // 9 chars, 18 bytes
	assert.False(t, s.IsStep1Valid())

	require.NoError(t, s.SetDescription("éééééééééé")) // 10 chars, 20 bytes
	assert.True(t, s.IsStep1Valid())
}

func TestSetDurationDomain(t *testing.T) {
	s := NewStore()

	for _, d := range []int{10, 15, 20, 25, 30, 35, 40, 45} {
		assert.NoError(t, s.SetDuration(d))
	}

	for _, d := range []int{0, 5, 12, 50, -10} {
		err := s.SetDuration(d)
		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve, "duration %d", d)
		assert.Equal(t, "duration_seconds", ve.Field)
	}

	// last valid value stays in place
	assert.Equal(t, 45, s.Draft().DurationSeconds)
}

func TestSetStyle(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.SetStyle(models.StyleCinematic))
	assert.Equal(t, models.StyleCinematic, s.Draft().Style)

	err := s.SetStyle(models.Style("impressionist"))
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, models.StyleCinematic, s.Draft().Style)
}

func TestNotesNeverRequired(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetDescription("surfing big waves in Hawaii"))
	assert.True(t, s.IsStep1Valid())

	require.NoError(t, s.SetNotes("golden hour lighting"))
	assert.True(t, s.IsStep1Valid())
}

func TestPriceNeverStale(t *testing.T) {
	s := NewStore()

	uploads := []models.Upload{
		{Name: "a.png", Size: 100},
		{Name: "b.png", Size: 200},
		{Name: "c.png", Size: 300},
	}

	added, err := s.AddImages(uploads)
	require.NoError(t, err)
	require.Len(t, added, 3)
	assert.Equal(t, int64(7), s.Price()) // 3 images > 2

	require.NoError(t, s.RemoveImage(0))
	assert.Equal(t, int64(5), s.Price()) // back to 2 images

	require.NoError(t, s.SetDuration(35))
	assert.Equal(t, int64(10), s.Price())

	// invariant: price always matches Compute over the snapshot
	for i := 0; i < 4; i++ {
		_, err := s.AddImages([]models.Upload{{Name: "x.png", Size: 1}})
		require.NoError(t, err)
		d := s.Draft()
		assert.Equal(t, pricing.Compute(d.DurationSeconds, len(d.ReferenceImages)), s.Price())
	}
}

func TestAddImagesAppends(t *testing.T) {
	s := NewStore()

	_, err := s.AddImages([]models.Upload{{Name: "first.png"}})
	require.NoError(t, err)
	_, err = s.AddImages([]models.Upload{{Name: "second.png"}})
	require.NoError(t, err)

	d := s.Draft()
	require.Len(t, d.ReferenceImages, 2)
	assert.Equal(t, "first.png", d.ReferenceImages[0].Name)
	assert.Equal(t, "second.png", d.ReferenceImages[1].Name)
	assert.NotEqual(t, d.ReferenceImages[0].ID, d.ReferenceImages[1].ID)
}

func TestRemoveImageOutOfRange(t *testing.T) {
	s := NewStore()
	_, err := s.AddImages([]models.Upload{{Name: "only.png"}})
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 99} {
		err := s.RemoveImage(idx)
		assert.True(t, errors.Is(err, apperrors.ErrOutOfRange), "index %d", idx)
		assert.Len(t, s.Draft().ReferenceImages, 1, "sequence unchanged for index %d", idx)
	}

	require.NoError(t, s.RemoveImage(0))
	assert.Empty(t, s.Draft().ReferenceImages)
}

func TestFrozenDraftRejectsWrites(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetDescription("me skydiving over the alps"))
	s.Freeze()

	assert.ErrorIs(t, s.SetDescription("other"), apperrors.ErrDraftFrozen)
	assert.ErrorIs(t, s.SetDuration(20), apperrors.ErrDraftFrozen)
	assert.ErrorIs(t, s.SetStyle(models.StyleAnimated), apperrors.ErrDraftFrozen)
	assert.ErrorIs(t, s.SetNotes("x"), apperrors.ErrDraftFrozen)
	_, err := s.AddImages([]models.Upload{{Name: "late.png"}})
	assert.ErrorIs(t, err, apperrors.ErrDraftFrozen)
	assert.ErrorIs(t, s.RemoveImage(0), apperrors.ErrDraftFrozen)

	// reads still work
	assert.Equal(t, "me skydiving over the alps", s.Draft().ActivityDescription)
}

func TestDraftSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	_, err := s.AddImages([]models.Upload{{Name: "a.png"}})
	require.NoError(t, err)

	snap := s.Draft()
	snap.ReferenceImages[0].Name = "mutated"

	assert.Equal(t, "a.png", s.Draft().ReferenceImages[0].Name)
}
