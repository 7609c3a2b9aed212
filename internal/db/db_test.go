package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTestingAppliesMigrations(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	err = db.Ping()
	assert.NoError(t, err)

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='settings'").Scan(&tableName)
	assert.NoError(t, err)
	assert.Equal(t, "settings", tableName)
}

func TestOpenForTestingIsolatesDatabases(t *testing.T) {
	first, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, first.Close()) })

	second, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	_, err = first.Exec("INSERT INTO settings (key, value) VALUES ('k', 'v')")
	require.NoError(t, err)

	var count int
	err = second.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	// A second run must be a no-change no-op.
	err = runMigrations(db)
	assert.NoError(t, err)
}
