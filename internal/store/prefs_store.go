package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mwhitby/unitcheck/internal/domain"
)

const (
	enabledItemsKey  = "enabled_items"
	unitNumberingKey = "unit_numbering"
)

// PrefsStore persists the user's checklist customization in the settings
// table. Preferences are the only state that outlives an inspection.
type PrefsStore struct {
	db *sql.DB
}

func NewPrefsStore(db *sql.DB) *PrefsStore {
	return &PrefsStore{db: db}
}

// LoadPreferences returns the saved customization, or ok=false when the
// user never saved one. Callers fall back to all-enabled.
func (s *PrefsStore) LoadPreferences(ctx context.Context) (domain.EnabledPreferences, bool, error) {
	raw, ok, err := s.load(ctx, enabledItemsKey)
	if err != nil || !ok {
		return nil, false, err
	}

	var prefs domain.EnabledPreferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, false, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return prefs, true, nil
}

// SaveCustomization writes the preferences and the numbering style in one
// transaction, so a failure leaves both settings at their previous values.
func (s *PrefsStore) SaveCustomization(ctx context.Context, prefs domain.EnabledPreferences, numbering domain.UnitNumbering) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveTx(ctx, tx, enabledItemsKey, string(raw)); err != nil {
		return err
	}
	if err := saveTx(ctx, tx, unitNumberingKey, string(numbering)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit customization: %w", err)
	}
	return nil
}

// LoadUnitNumbering returns the saved unit-number input style, defaulting
// to alphanumeric.
func (s *PrefsStore) LoadUnitNumbering(ctx context.Context) (domain.UnitNumbering, error) {
	raw, ok, err := s.load(ctx, unitNumberingKey)
	if err != nil {
		return "", err
	}
	if !ok || domain.UnitNumbering(raw) != domain.NumberingNumeric {
		return domain.NumberingAlphanumeric, nil
	}
	return domain.NumberingNumeric, nil
}

func (s *PrefsStore) load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE key = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return value, true, nil
}

func saveTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}
