package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

// Get returns the stored snapshot in catalog order.
// It returns common.ErrCatalogUnavailable when nothing has been stored.
func (s *SQLiteStorage) Get(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var loadedAt time.Time
	err = tx.QueryRowContext(ctx, `SELECT loaded_at FROM catalog_meta WHERE id = 1`).Scan(&loadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no catalog stored", common.ErrCatalogUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog metadata: %w", err)
	}

	items, err := getItemsTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	entries, err := getClassificationsTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	rules, err := getRulesTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	snapshot := model.NewSnapshot(items, entries, rules)
	snapshot.LoadedAt = loadedAt
	return snapshot, nil
}

// Replace swaps the stored snapshot for a new one in a single transaction.
func (s *SQLiteStorage) Replace(ctx context.Context, snapshot *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = clearTx(ctx, tx); err != nil {
		return err
	}
	if err = saveItemsTx(ctx, tx, snapshot.Items); err != nil {
		return err
	}
	if err = saveClassificationsTx(ctx, tx, snapshot.Classifications); err != nil {
		return err
	}
	if err = saveRulesTx(ctx, tx, snapshot.Rules); err != nil {
		return err
	}

	loadedAt := snapshot.LoadedAt
	if loadedAt.IsZero() {
		loadedAt = time.Now()
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (id, loaded_at, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)`,
		loadedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save catalog metadata: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	slog.Info("Stored catalog",
		"items", len(snapshot.Items),
		"classifications", len(snapshot.Classifications),
		"rules", len(snapshot.Rules))
	return nil
}

// Clear removes the stored snapshot.
func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := clearTx(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}

func clearTx(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"catalog_meta", "catalog_items", "classification_entries", "duty_rules"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func saveItemsTx(ctx context.Context, tx *sql.Tx, items []model.CatalogItem) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_items (position, name, unit, notes, keywords, default_price)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, item := range items {
		keywords, err := encodeKeywords(item.Keywords)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, i, item.Name, item.Unit, item.Notes, keywords, item.DefaultPrice); err != nil {
			return fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}
	return nil
}

func saveClassificationsTx(ctx context.Context, tx *sql.Tx, entries []model.ClassificationEntry) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classification_entries (position, name, code, keywords)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare classification insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, entry := range entries {
		keywords, err := encodeKeywords(entry.Keywords)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, i, entry.Name, entry.Code, keywords); err != nil {
			return fmt.Errorf("failed to insert classification %d: %w", i, err)
		}
	}
	return nil
}

func saveRulesTx(ctx context.Context, tx *sql.Tx, rules []model.DutyRule) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO duty_rules (position, product_key, kind, rate)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rule insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rule := range rules {
		var rate sql.NullFloat64
		if rule.Rate != nil {
			rate = sql.NullFloat64{Float64: *rule.Rate, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, rule.ProductKey, string(rule.Kind), rate); err != nil {
			return fmt.Errorf("failed to insert rule %d: %w", i, err)
		}
	}
	return nil
}

func getItemsTx(ctx context.Context, tx *sql.Tx) ([]model.CatalogItem, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT name, unit, notes, keywords, default_price
		FROM catalog_items
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.CatalogItem
	for rows.Next() {
		var item model.CatalogItem
		var keywords sql.NullString
		if err := rows.Scan(&item.Name, &item.Unit, &item.Notes, &keywords, &item.DefaultPrice); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if item.Keywords, err = decodeKeywords(keywords); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func getClassificationsTx(ctx context.Context, tx *sql.Tx) ([]model.ClassificationEntry, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT name, code, keywords
		FROM classification_entries
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.ClassificationEntry
	for rows.Next() {
		var entry model.ClassificationEntry
		var keywords sql.NullString
		if err := rows.Scan(&entry.Name, &entry.Code, &keywords); err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		if entry.Keywords, err = decodeKeywords(keywords); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func getRulesTx(ctx context.Context, tx *sql.Tx) ([]model.DutyRule, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT product_key, kind, rate
		FROM duty_rules
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.DutyRule
	for rows.Next() {
		var rule model.DutyRule
		var kind string
		var rate sql.NullFloat64
		if err := rows.Scan(&rule.ProductKey, &kind, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rule.Kind = model.RuleKind(kind)
		if rate.Valid {
			rule.Rate = model.Float(rate.Float64)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func encodeKeywords(keywords []string) (sql.NullString, error) {
	if len(keywords) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode keywords: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeKeywords(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(raw.String), &keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	return keywords, nil
}
