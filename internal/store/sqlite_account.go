package store

import (
	"context"
	"errors"
	"fmt"

	sqlite "github.com/mattn/go-sqlite3"

	"github.com/hance08/tally/internal/model"
)

func (s *SQLiteStore) UpsertAccount(ctx context.Context, acc model.Account) error {
	r := newAccountRecord(acc)
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO accounts (id, type, name, notes, enabled)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            type = excluded.type,
            name = excluded.name,
            notes = excluded.notes,
            enabled = excluded.enabled;
    `, r.ID, r.Type, r.Name, r.Notes, r.Enabled)
	if err != nil {
		return fmt.Errorf("failed to write account %s: %w", acc.ID, mapConstraint(err))
	}
	return nil
}

func (s *SQLiteStore) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, type, name, notes, enabled
        FROM accounts
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []model.Account
	for rows.Next() {
		var r accountRecord
		if err := rows.Scan(&r.ID, &r.Type, &r.Name, &r.Notes, &r.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		acc, err := r.toModel()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// mapConstraint translates sqlite constraint failures into store errors.
func mapConstraint(err error) error {
	var sqliteErr sqlite.Error
	if !errors.As(err, &sqliteErr) || !errors.Is(sqliteErr.Code, sqlite.ErrConstraint) {
		return err
	}
	switch sqliteErr.ExtendedCode {
	case sqlite.ErrConstraintPrimaryKey, sqlite.ErrConstraintUnique:
		return fmt.Errorf("%w: %v", ErrRecordExists, err)
	default:
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
}
