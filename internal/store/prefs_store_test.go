package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitby/unitcheck/internal/db"
	"github.com/mwhitby/unitcheck/internal/domain"
)

func newTestStore(t *testing.T) *PrefsStore {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })
	return NewPrefsStore(d)
}

func TestLoadPreferencesAbsent(t *testing.T) {
	s := newTestStore(t)

	prefs, ok, err := s.LoadPreferences(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, prefs)
}

func TestCustomizationRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prefs := domain.EnabledPreferences{}
	prefs.Set("kitchen", "Dishwasher", false)
	prefs.Set("kitchen", "Microwave", true)
	prefs.Set("miscellaneous", "Fireplace", false)

	require.NoError(t, s.SaveCustomization(ctx, prefs, domain.NumberingNumeric))

	loaded, ok, err := s.LoadPreferences(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, loaded.Enabled("kitchen", "Dishwasher"))
	assert.True(t, loaded.Enabled("kitchen", "Microwave"))
	assert.False(t, loaded.Enabled("miscellaneous", "Fireplace"))

	// Untouched entries still fail open.
	assert.True(t, loaded.Enabled("kitchen", "Cabinets"))
	assert.True(t, loaded.Enabled("entry", "Flooring"))

	numbering, err := s.LoadUnitNumbering(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NumberingNumeric, numbering)
}

func TestSaveCustomizationOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := domain.EnabledPreferences{}
	first.Set("entry", "Flooring", false)
	require.NoError(t, s.SaveCustomization(ctx, first, domain.NumberingNumeric))

	second := domain.EnabledPreferences{}
	second.Set("entry", "Flooring", true)
	require.NoError(t, s.SaveCustomization(ctx, second, domain.NumberingAlphanumeric))

	loaded, ok, err := s.LoadPreferences(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, loaded.Enabled("entry", "Flooring"))

	numbering, err := s.LoadUnitNumbering(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NumberingAlphanumeric, numbering)
}

func TestSaveCustomizationFailureLeavesBothSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prefs := domain.EnabledPreferences{}
	prefs.Set("entry", "Flooring", false)
	require.NoError(t, s.SaveCustomization(ctx, prefs, domain.NumberingNumeric))

	// A save that cannot run must not leave one of the two settings
	// updated without the other.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	changed := domain.EnabledPreferences{}
	changed.Set("entry", "Flooring", true)
	err := s.SaveCustomization(cancelled, changed, domain.NumberingAlphanumeric)
	require.Error(t, err)

	loaded, ok, err := s.LoadPreferences(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, loaded.Enabled("entry", "Flooring"))

	numbering, err := s.LoadUnitNumbering(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NumberingNumeric, numbering)
}

func TestUnitNumberingDefaultsToAlphanumeric(t *testing.T) {
	s := newTestStore(t)

	numbering, err := s.LoadUnitNumbering(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NumberingAlphanumeric, numbering)
}
