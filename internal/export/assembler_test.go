package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitby/unitcheck/internal/domain"
	"github.com/mwhitby/unitcheck/internal/state"
)

func twoCategories() *domain.ChecklistInstance {
	return &domain.ChecklistInstance{Categories: []domain.Category{
		{ID: "entry", BaseID: "entry", Title: "Entry", Items: []string{"Flooring"}},
		{ID: "kitchen", BaseID: "kitchen", Title: "Kitchen", Items: []string{"Sink/Faucet"}},
	}}
}

func TestAssembleNamesAndOrder(t *testing.T) {
	instance := twoCategories()
	items := state.NewStore()

	// Capture out of checklist order; export order must not care.
	items.RecordPhoto(domain.ItemKey{CategoryID: "kitchen", Index: 0}, []byte("k1"))
	items.RecordPhoto(domain.ItemKey{CategoryID: "entry", Index: 0}, []byte("e1"))
	items.RecordPhoto(domain.ItemKey{CategoryID: "kitchen", Index: 0}, []byte("k2"))

	files, err := Assemble(instance, items)
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "1_Entry_Flooring_1.jpg", files[0].Name)
	assert.Equal(t, "2_Kitchen_Sink-Faucet_1.jpg", files[1].Name)
	assert.Equal(t, "3_Kitchen_Sink-Faucet_2.jpg", files[2].Name)

	assert.Equal(t, []byte("e1"), files[0].Data)
	assert.Equal(t, []byte("k1"), files[1].Data)
	assert.Equal(t, []byte("k2"), files[2].Data)
}

func TestAssembleFilenamesGloballyUnique(t *testing.T) {
	instance := twoCategories()
	items := state.NewStore()
	for i := 0; i < 5; i++ {
		items.RecordPhoto(domain.ItemKey{CategoryID: "entry", Index: 0}, []byte{byte(i)})
		items.RecordPhoto(domain.ItemKey{CategoryID: "kitchen", Index: 0}, []byte{byte(i)})
	}

	files, err := Assemble(instance, items)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, f := range files {
		assert.False(t, seen[f.Name], "duplicate filename %s", f.Name)
		seen[f.Name] = true
		// Counter prefix is strictly increasing across the export.
		var counter int
		_, err := fmt.Sscanf(f.Name, "%d_", &counter)
		require.NoError(t, err)
		assert.Equal(t, i+1, counter)
	}
}

func TestAssembleIgnoresPhotolessItems(t *testing.T) {
	instance := twoCategories()
	items := state.NewStore()
	items.ToggleSkip(domain.ItemKey{CategoryID: "entry", Index: 0})
	items.RecordPhoto(domain.ItemKey{CategoryID: "kitchen", Index: 0}, []byte("k"))

	files, err := Assemble(instance, items)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "1_Kitchen_Sink-Faucet_1.jpg", files[0].Name)
}

func TestAssembleExportsPhotosOfSkippedItems(t *testing.T) {
	instance := twoCategories()
	items := state.NewStore()

	// Skip-with-photos-kept: the marker must not exclude the photos.
	key := domain.ItemKey{CategoryID: "entry", Index: 0}
	items.RecordPhoto(key, []byte("e1"))
	items.ToggleSkip(key)
	require.True(t, items.IsSkipped(key))

	files, err := Assemble(instance, items)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "1_Entry_Flooring_1.jpg", files[0].Name)
	assert.Equal(t, []byte("e1"), files[0].Data)
}

func TestAssembleEmptyExportBlocked(t *testing.T) {
	items := state.NewStore()
	items.ToggleSkip(domain.ItemKey{CategoryID: "entry", Index: 0})

	_, err := Assemble(twoCategories(), items)
	assert.ErrorIs(t, err, domain.ErrEmptyExport)
}

func TestSanitizeReplacesHostileCharacters(t *testing.T) {
	assert.Equal(t, "a-b-c-d-e-f-g-h-i-j", sanitize(`a/b\c:d*e?f"g<h>i|j`))
	assert.Equal(t, "plain name", sanitize("plain name"))
}

func TestArchiveName(t *testing.T) {
	name := ArchiveName(domain.InspectionMetadata{
		UnitNumber: "A101",
		Type:       domain.MoveOut,
		Date:       "2026-08-29",
	})
	assert.Equal(t, "Unit_A101_MoveOut_2026-08-29.zip", name)
}
