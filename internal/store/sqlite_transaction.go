package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hance08/tally/internal/model"
)

func (s *SQLiteStore) InsertTransaction(ctx context.Context, tx model.Transaction) error {
	r := newTransactionRecord(tx)
	stmt, err := s.db.PrepareContext(ctx, `
        INSERT INTO transactions (id, amount, type, new_amount, external_party, acc_1, acc_2, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?);
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction SQL: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	if _, err := stmt.ExecContext(ctx, r.ID, r.Amount, r.Type, r.NewAmount, r.ExternalParty, r.Acc1, r.Acc2, r.Notes); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", tx.ID, mapConstraint(err))
	}
	return nil
}

func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, amount, type, new_amount, external_party, acc_1, acc_2, notes
        FROM transactions
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var txs []model.Transaction
	for rows.Next() {
		var (
			r                   transactionRecord
			newAmount, extParty sql.NullString
		)
		err := rows.Scan(&r.ID, &r.Amount, &r.Type, &newAmount, &extParty, &r.Acc1, &r.Acc2, &r.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if newAmount.Valid {
			r.NewAmount = &newAmount.String
		}
		if extParty.Valid {
			r.ExternalParty = &extParty.String
		}
		tx, err := r.toModel()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
