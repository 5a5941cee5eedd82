package store

import (
	"cmp"
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/model"
)

// opener returns a function that opens a backend over the same medium on
// every call, so a test can close and reopen it.
type opener func(t *testing.T) func() Backend

func backends() map[string]opener {
	return map[string]opener{
		"sqlite": func(t *testing.T) func() Backend {
			path := filepath.Join(t.TempDir(), "tally.db")
			return func() Backend {
				s, err := NewSQLiteStore(path)
				require.NoError(t, err)
				return s
			}
		},
		"files-mem": func(t *testing.T) func() Backend {
			fs := afero.NewMemMapFs()
			return func() Backend {
				s, err := NewFileStore(fs, "/ledger")
				require.NoError(t, err)
				return s
			}
		},
		"files-os": func(t *testing.T) func() Backend {
			dir := t.TempDir()
			return func() Backend {
				s, err := OpenFileStore(dir)
				require.NoError(t, err)
				return s
			}
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, open func() Backend)) {
	for name, o := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, o(t))
		})
	}
}

func amount(t *testing.T, s string) model.Amount {
	t.Helper()
	a, err := model.Parse(s)
	require.NoError(t, err)
	return a
}

func account(name string, kind model.AccountKind) model.Account {
	return model.Account{ID: model.NewAccountID(), Name: name, Kind: kind, Enabled: true}
}

func createCommit(acc model.Account) Commit {
	return Commit{
		Command:  model.NewCommand(model.CreateAccount{Account: acc}),
		Accounts: []model.Account{acc},
	}
}

func receivedCommit(t *testing.T, phys, virt model.AccountID, amt string) (Commit, model.Transaction) {
	party := "Employer"
	tx := model.Transaction{
		ID:            model.NewTransactionID(),
		Notes:         "salary",
		Amount:        amount(t, amt),
		Kind:          model.Received,
		ExternalParty: &party,
		Acc1:          phys,
		Acc2:          virt,
	}
	return Commit{
		Command:      model.NewCommand(model.AddTransaction{Transaction: tx}),
		Transactions: []model.Transaction{tx},
	}, tx
}

func TestBackendStartsEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Backend) {
		ctx := context.Background()
		s := open()
		defer s.Close()

		accounts, err := s.LoadAccounts(ctx)
		require.NoError(t, err)
		assert.Empty(t, accounts)
		txs, err := s.LoadTransactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, txs)
		cmds, err := s.LoadCommands(ctx)
		require.NoError(t, err)
		assert.Empty(t, cmds)
		ok, err := s.ContainsCommand(ctx, model.NewCommandID())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBackendCommitAndLoad(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Backend) {
		ctx := context.Background()
		s := open()
		defer s.Close()

		phys := account("Bank", model.Physical)
		virt := account("Groceries", model.Virtual)
		c1, c2 := createCommit(phys), createCommit(virt)
		c3, tx := receivedCommit(t, phys.ID, virt.ID, "100.50 EUR")
		for _, c := range []Commit{c1, c2, c3} {
			require.NoError(t, s.Commit(ctx, c))
		}

		accounts, err := s.LoadAccounts(ctx)
		require.NoError(t, err)
		want := []model.Account{phys, virt}
		slices.SortFunc(want, func(a, b model.Account) int { return cmp.Compare(a.ID, b.ID) })
		assert.Equal(t, want, accounts)

		txs, err := s.LoadTransactions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Transaction{tx}, txs)

		cmds, err := s.LoadCommands(ctx)
		require.NoError(t, err)
		require.Len(t, cmds, 3)
		assert.Equal(t, []model.CommandID{c1.Command.ID, c2.Command.ID, c3.Command.ID},
			[]model.CommandID{cmds[0].ID, cmds[1].ID, cmds[2].ID})
		assert.Equal(t, c3.Command.Payload, cmds[2].Payload)

		ok, err := s.ContainsCommand(ctx, c2.Command.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestBackendKeepsLogOrderNotIDOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Backend) {
		ctx := context.Background()
		s := open()
		defer s.Close()

		var ids []model.CommandID
		for _, seed := range []string{"c", "a", "b"} {
			c := createCommit(account("acc "+seed, model.Physical))
			c.Command.ID = model.CommandID(model.DeriveID(seed))
			require.NoError(t, s.Commit(ctx, c))
			ids = append(ids, c.Command.ID)
		}

		cmds, err := s.LoadCommands(ctx)
		require.NoError(t, err)
		got := make([]model.CommandID, len(cmds))
		for i, c := range cmds {
			got[i] = c.ID
		}
		assert.Equal(t, ids, got)
	})
}

func TestBackendRejectsDuplicateCommand(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Backend) {
		ctx := context.Background()
		s := open()
		defer s.Close()

		acc := account("Cash", model.Physical)
		c := createCommit(acc)
		require.NoError(t, s.Commit(ctx, c))

		again := createCommit(account("Other", model.Physical))
		again.Command.ID = c.Command.ID
		require.ErrorIs(t, s.Commit(ctx, again), ErrCommandExists)

		accounts, err := s.LoadAccounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Account{acc}, accounts)
		cmds, err := s.LoadCommands(ctx)
		require.NoError(t, err)
		assert.Len(t, cmds, 1)
	})
}

func TestBackendUpdatesAccountInPlace(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Backend) {
		ctx := context.Background()
		s := open()
		defer s.Close()

		acc := account("Cash", model.Physical)
		require.NoError(t, s.Commit(ctx, createCommit(acc)))

		acc.Name, acc.Notes, acc.Enabled = "Wallet", "leather", false
		require.NoError(t, s.Commit(ctx, Commit{
			Command: model.NewCommand(model.UpdateAccount{
				ID:  acc.ID,
				Ops: []model.AccountOp{model.RenameOp("Wallet"), model.SetNotesOp("leather"), model.DisableOp()},
			}),
			Accounts: []model.Account{acc},
		}))

		accounts, err := s.LoadAccounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Account{acc}, accounts)
	})
}

func TestBackendPersistsAcrossReopen(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Backend) {
		ctx := context.Background()
		s := open()

		phys := account("Bank", model.Physical)
		virt := account("Savings", model.Virtual)
		require.NoError(t, s.Commit(ctx, createCommit(phys)))
		require.NoError(t, s.Commit(ctx, createCommit(virt)))

		usd := amount(t, "110 USD")
		conv := model.Transaction{
			ID:        model.NewTransactionID(),
			Amount:    amount(t, "100 EUR"),
			Kind:      model.Convert,
			NewAmount: &usd,
			Acc1:      phys.ID,
			Acc2:      virt.ID,
		}
		c := Commit{Command: model.NewCommand(model.AddTransaction{Transaction: conv}), Transactions: []model.Transaction{conv}}
		require.NoError(t, s.Commit(ctx, c))
		require.NoError(t, s.Close())

		s = open()
		defer s.Close()
		txs, err := s.LoadTransactions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Transaction{conv}, txs)
		ok, err := s.ContainsCommand(ctx, c.Command.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		cmds, err := s.LoadCommands(ctx)
		require.NoError(t, err)
		assert.Len(t, cmds, 3)
	})
}

func TestBackendRebuildReplacesProjections(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Backend) {
		ctx := context.Background()
		s := open()
		defer s.Close()

		phys := account("Bank", model.Physical)
		virt := account("Budget", model.Virtual)
		require.NoError(t, s.Commit(ctx, createCommit(phys)))
		require.NoError(t, s.Commit(ctx, createCommit(virt)))
		c, tx := receivedCommit(t, phys.ID, virt.ID, "5 EUR")
		require.NoError(t, s.Commit(ctx, c))

		renamed := phys
		renamed.Name = "Main bank"
		require.NoError(t, s.Rebuild(ctx, []model.Account{renamed, virt}, []model.Transaction{tx}))

		accounts, err := s.LoadAccounts(ctx)
		require.NoError(t, err)
		assert.Contains(t, accounts, renamed)
		assert.NotContains(t, accounts, phys)
		txs, err := s.LoadTransactions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Transaction{tx}, txs)

		require.NoError(t, s.Rebuild(ctx, nil, nil))
		accounts, err = s.LoadAccounts(ctx)
		require.NoError(t, err)
		assert.Empty(t, accounts)

		cmds, err := s.LoadCommands(ctx)
		require.NoError(t, err)
		assert.Len(t, cmds, 3)
	})
}
