package checklist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitby/unitcheck/internal/domain"
)

func TestBuildMultipliesBedroomsAndBathrooms(t *testing.T) {
	tests := []struct {
		bedrooms  int
		bathrooms int
	}{
		{0, 1},
		{1, 1},
		{2, 3},
		{4, 2},
		{0, 0}, // bathrooms clamp to 1
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%db_%dba", tt.bedrooms, tt.bathrooms), func(t *testing.T) {
			instance, err := Build(Catalog(), domain.UnitConfiguration{
				Bedrooms:  tt.bedrooms,
				Bathrooms: tt.bathrooms,
			})
			require.NoError(t, err)

			wantBathrooms := tt.bathrooms
			if wantBathrooms < 1 {
				wantBathrooms = 1
			}

			var bedrooms, bathrooms []domain.Category
			for _, c := range instance.Categories {
				switch c.BaseID {
				case "bedroom":
					bedrooms = append(bedrooms, c)
				case "bathroom":
					bathrooms = append(bathrooms, c)
				}
			}
			require.Len(t, bedrooms, tt.bedrooms)
			require.Len(t, bathrooms, wantBathrooms)

			for i, c := range bedrooms {
				assert.Equal(t, fmt.Sprintf("bedroom%d", i+1), c.ID)
				assert.Equal(t, fmt.Sprintf("Bedroom %d", i+1), c.Title)
			}
			for i, c := range bathrooms {
				assert.Equal(t, fmt.Sprintf("bathroom%d", i+1), c.ID)
				assert.Equal(t, fmt.Sprintf("Bathroom %d", i+1), c.Title)
			}
		})
	}
}

func TestBuildKeepsCatalogOrder(t *testing.T) {
	instance, err := Build(Catalog(), domain.UnitConfiguration{Bedrooms: 2, Bathrooms: 2})
	require.NoError(t, err)

	var ids []string
	for _, c := range instance.Categories {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{
		"entry", "living", "kitchen",
		"bedroom1", "bedroom2",
		"bathroom1", "bathroom2",
		"miscellaneous",
	}, ids)
}

func TestBuildNonMultipliedCategoriesAppearOnce(t *testing.T) {
	instance, err := Build(Catalog(), domain.UnitConfiguration{Bedrooms: 3, Bathrooms: 2})
	require.NoError(t, err)

	seen := map[string]int{}
	for _, c := range instance.Categories {
		seen[c.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "category %s duplicated", id)
	}
	assert.Equal(t, 1, seen["kitchen"])
	assert.Equal(t, "Kitchen", mustCategory(t, instance, "kitchen").Title)
}

func TestBuildCopiesTemplateItems(t *testing.T) {
	templates := Catalog()
	instance, err := Build(templates, domain.UnitConfiguration{Bedrooms: 1, Bathrooms: 1})
	require.NoError(t, err)

	bedroom := mustCategory(t, instance, "bedroom1")
	assert.Equal(t, templates[3].Items, bedroom.Items)

	// Mutating the instance must not leak into the catalog.
	bedroom.Items[0] = "changed"
	assert.Equal(t, "Door/Hardware", Catalog()[3].Items[0])
}

func TestBuildRejectsNegativeCounts(t *testing.T) {
	_, err := Build(Catalog(), domain.UnitConfiguration{Bedrooms: -1, Bathrooms: 1})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = Build(Catalog(), domain.UnitConfiguration{Bedrooms: 1, Bathrooms: -1})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestChecklistContains(t *testing.T) {
	instance, err := Build(Catalog(), domain.UnitConfiguration{Bedrooms: 1, Bathrooms: 1})
	require.NoError(t, err)

	assert.True(t, instance.Contains(domain.ItemKey{CategoryID: "kitchen", Index: 0}))
	assert.False(t, instance.Contains(domain.ItemKey{CategoryID: "kitchen", Index: 99}))
	assert.False(t, instance.Contains(domain.ItemKey{CategoryID: "garage", Index: 0}))
	assert.False(t, instance.Contains(domain.ItemKey{CategoryID: "bedroom2", Index: 0}))
}

func mustCategory(t *testing.T, instance *domain.ChecklistInstance, id string) domain.Category {
	t.Helper()
	c, ok := instance.Category(id)
	require.True(t, ok, "category %s not found", id)
	return c
}
