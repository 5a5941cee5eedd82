package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/tally/internal/model"
)

// AppendCommand adds a command to the log. The command column holds the
// externally tagged payload; the id has its own column.
func (s *SQLiteStore) AppendCommand(ctx context.Context, cmd model.Command) error {
	payload, err := model.EncodePayload(cmd.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode command %s: %w", cmd.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO commands (id, command) VALUES (?, ?)`, string(cmd.ID), string(payload))
	if err != nil {
		err = mapConstraint(err)
		if errors.Is(err, ErrRecordExists) {
			return fmt.Errorf("command %s: %w", cmd.ID, ErrCommandExists)
		}
		return fmt.Errorf("failed to append command %s: %w", cmd.ID, err)
	}
	return nil
}

func (s *SQLiteStore) LoadCommands(ctx context.Context) ([]model.Command, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, command FROM commands ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var cmds []model.Command
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}
		p, err := model.DecodePayload([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("command %s: %w: %v", id, ErrCorrupt, err)
		}
		cmds = append(cmds, model.Command{ID: model.CommandID(id), Payload: p})
	}
	return cmds, rows.Err()
}

func (s *SQLiteStore) ContainsCommand(ctx context.Context, id model.CommandID) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM commands WHERE id = ?`, string(id)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check command %s: %w", id, err)
	}
	return n > 0, nil
}
