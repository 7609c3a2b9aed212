package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitby/unitcheck/internal/domain"
)

var testKey = domain.ItemKey{CategoryID: "kitchen", Index: 3}

func TestRecordPhotoAssignsIncreasingSeq(t *testing.T) {
	s := NewStore()

	p1 := s.RecordPhoto(testKey, []byte{1})
	p2 := s.RecordPhoto(testKey, []byte{2})
	p3 := s.RecordPhoto(domain.ItemKey{CategoryID: "entry", Index: 0}, []byte{3})

	assert.Less(t, p1.Seq, p2.Seq)
	assert.Less(t, p2.Seq, p3.Seq)
	assert.Equal(t, 2, s.PhotoCount(testKey))
	assert.Equal(t, 3, s.TotalPhotos())
}

func TestDeletePhotoPreservesOrder(t *testing.T) {
	s := NewStore()
	s.RecordPhoto(testKey, []byte{1})
	s.RecordPhoto(testKey, []byte{2})
	s.RecordPhoto(testKey, []byte{3})

	require.NoError(t, s.DeletePhoto(testKey, 1))

	photos := s.Photos(testKey)
	require.Len(t, photos, 2)
	assert.Equal(t, []byte{1}, photos[0].Data)
	assert.Equal(t, []byte{3}, photos[1].Data)
}

func TestDeletePhotoStaleIndex(t *testing.T) {
	s := NewStore()
	s.RecordPhoto(testKey, []byte{1})

	assert.ErrorIs(t, s.DeletePhoto(testKey, 1), domain.ErrPhotoIndex)
	assert.ErrorIs(t, s.DeletePhoto(testKey, -1), domain.ErrPhotoIndex)
	assert.ErrorIs(t, s.DeletePhoto(domain.ItemKey{CategoryID: "none", Index: 0}, 0), domain.ErrPhotoIndex)
	assert.Equal(t, 1, s.PhotoCount(testKey))
}

func TestToggleSkipIsIdempotentPair(t *testing.T) {
	s := NewStore()
	s.RecordPhoto(testKey, []byte{1})

	assert.True(t, s.ToggleSkip(testKey))
	assert.True(t, s.IsSkipped(testKey))
	assert.False(t, s.ToggleSkip(testKey))
	assert.False(t, s.IsSkipped(testKey))

	// Photos untouched by either toggle.
	assert.Equal(t, 1, s.PhotoCount(testKey))
}

func TestIsCompleteMatrix(t *testing.T) {
	s := NewStore()

	assert.False(t, s.IsComplete(testKey))

	s.RecordPhoto(testKey, []byte{1})
	assert.True(t, s.IsComplete(testKey))

	s.ToggleSkip(testKey)
	assert.True(t, s.IsComplete(testKey)) // photos and skipped may coexist

	require.NoError(t, s.DeletePhoto(testKey, 0))
	assert.True(t, s.IsComplete(testKey)) // deleting photos does not clear skip

	s.ToggleSkip(testKey)
	assert.False(t, s.IsComplete(testKey))
}

func TestUntouchedAndClearedAreIndistinguishable(t *testing.T) {
	s := NewStore()

	s.RecordPhoto(testKey, []byte{1})
	s.ToggleSkip(testKey)
	require.NoError(t, s.DeletePhoto(testKey, 0))
	s.ToggleSkip(testKey)

	// Entry is pruned once it carries no content.
	assert.Empty(t, s.items)
	assert.False(t, s.IsSkipped(testKey))
	assert.False(t, s.IsComplete(testKey))
	assert.Nil(t, s.Photos(testKey))
}

func TestRemoveBySeq(t *testing.T) {
	s := NewStore()
	p1 := s.RecordPhoto(testKey, []byte{1})
	p2 := s.RecordPhoto(testKey, []byte{2})
	p3 := s.RecordPhoto(testKey, []byte{3})

	s.RemoveBySeq(testKey, []int64{p1.Seq, p3.Seq, 999})

	photos := s.Photos(testKey)
	require.Len(t, photos, 1)
	assert.Equal(t, p2.Seq, photos[0].Seq)

	// Removing the rest prunes the entry.
	s.RemoveBySeq(testKey, []int64{p2.Seq})
	assert.Empty(t, s.items)
}
