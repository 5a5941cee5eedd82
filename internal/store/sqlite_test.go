package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteCommitRollsBackAsAUnit(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	acc := account("Bank", model.Physical)
	c, _ := receivedCommit(t, acc.ID, model.NewAccountID(), "10 EUR")
	c.Accounts = []model.Account{acc}

	err := s.Commit(ctx, c)
	require.ErrorIs(t, err, ErrConstraintViolation)

	ok, err := s.ContainsCommand(ctx, c.Command.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	accounts, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	txs, err := s.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSQLiteRejectsDuplicateTransaction(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	phys := account("Bank", model.Physical)
	virt := account("Budget", model.Virtual)
	require.NoError(t, s.Commit(ctx, createCommit(phys)))
	require.NoError(t, s.Commit(ctx, createCommit(virt)))
	c, tx := receivedCommit(t, phys.ID, virt.ID, "1 EUR")
	require.NoError(t, s.Commit(ctx, c))

	again := Commit{Command: model.NewCommand(model.AddTransaction{Transaction: tx}), Transactions: []model.Transaction{tx}}
	require.ErrorIs(t, s.Commit(ctx, again), ErrRecordExists)

	ok, err := s.ContainsCommand(ctx, again.Command.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteExecTxRefusesNesting(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	err := s.ExecTx(ctx, func(r Repository) error {
		return r.(*SQLiteStore).ExecTx(ctx, func(Repository) error { return nil })
	})
	require.Error(t, err)
}

func TestSQLiteStoresPayloadOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	acc := account("Bank", model.Physical)
	c := createCommit(acc)
	require.NoError(t, s.Commit(ctx, c))

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT command FROM commands WHERE id = ?`, string(c.Command.ID)).Scan(&payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"CreateAccount":{"id":"`+string(acc.ID)+`","name":"Bank","notes":"","typ":"Physical","current":{},"enabled":true}}`, payload)
}
