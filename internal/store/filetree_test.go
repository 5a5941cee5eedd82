package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/model"
)

func TestFileStoreLock(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/ledger")
	require.NoError(t, err)

	_, err = NewFileStore(fs, "/ledger")
	require.ErrorIs(t, err, ErrLocked)

	pid, err := s.lockOwner()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, s.Close())
	s, err = NewFileStore(fs, "/ledger")
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestFileStoreLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/ledger")
	require.NoError(t, err)
	defer s.Close()

	acc := account("Cash", model.Physical)
	require.NoError(t, s.Commit(context.Background(), createCommit(acc)))

	data, err := afero.ReadFile(fs, "/ledger/accounts/"+string(acc.ID)+".toml")
	require.NoError(t, err)
	var rec accountRecord
	require.NoError(t, toml.Unmarshal(data, &rec))
	assert.Equal(t, accountRecord{ID: string(acc.ID), Type: "Physical", Name: "Cash", Enabled: true}, rec)

	head, err := afero.ReadFile(fs, "/ledger/HEAD")
	require.NoError(t, err)
	assert.Equal(t, "1\n", string(head))

	ok, err := afero.Exists(fs, "/ledger/log/"+logName(1))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStoreRollsForwardAfterCrash(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/ledger")
	require.NoError(t, err)

	phys := account("Bank", model.Physical)
	virt := account("Budget", model.Virtual)
	require.NoError(t, s.Commit(ctx, createCommit(phys)))
	require.NoError(t, s.Commit(ctx, createCommit(virt)))
	c, tx := receivedCommit(t, phys.ID, virt.ID, "20 EUR")
	require.NoError(t, s.Commit(ctx, c))
	require.NoError(t, s.Close())

	// the process died after renaming record 3 into place but before its
	// projection files and HEAD were written
	require.NoError(t, fs.Remove("/ledger/transactions/"+string(tx.ID)+".toml"))
	require.NoError(t, afero.WriteFile(fs, "/ledger/HEAD", []byte("2\n"), 0o644))

	s, err = NewFileStore(fs, "/ledger")
	require.NoError(t, err)
	defer s.Close()

	txs, err := s.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Transaction{tx}, txs)
	head, err := afero.ReadFile(fs, "/ledger/HEAD")
	require.NoError(t, err)
	assert.Equal(t, "3\n", string(head))
}

func TestFileStoreDiscardsUncommittedTempFiles(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/ledger")
	require.NoError(t, err)
	require.NoError(t, s.Commit(ctx, createCommit(account("Cash", model.Physical))))
	require.NoError(t, s.Close())

	// a record that never reached its rename is not committed
	pending := createCommit(account("Lost", model.Physical))
	require.NoError(t, afero.WriteFile(fs, "/ledger/log/"+logName(2)+tmpSuffix, []byte(`{"seq":2}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ledger/accounts/"+string(pending.Accounts[0].ID)+".toml"+tmpSuffix, []byte("x"), 0o644))

	s, err = NewFileStore(fs, "/ledger")
	require.NoError(t, err)
	defer s.Close()

	cmds, err := s.LoadCommands(ctx)
	require.NoError(t, err)
	assert.Len(t, cmds, 1)
	accounts, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	for _, dir := range []string{"/ledger/log", "/ledger/accounts"} {
		infos, err := afero.ReadDir(fs, dir)
		require.NoError(t, err)
		for _, info := range infos {
			assert.False(t, strings.HasSuffix(info.Name(), tmpSuffix), info.Name())
		}
	}
}

func TestFileStoreDetectsLogGap(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/ledger")
	require.NoError(t, err)
	require.NoError(t, s.Commit(ctx, createCommit(account("A", model.Physical))))
	require.NoError(t, s.Commit(ctx, createCommit(account("B", model.Physical))))
	require.NoError(t, s.Close())

	require.NoError(t, fs.Remove("/ledger/log/"+logName(1)))
	_, err = NewFileStore(fs, "/ledger")
	require.ErrorIs(t, err, ErrCorrupt)

	ok, err := afero.Exists(fs, "/ledger/"+lockFile)
	require.NoError(t, err)
	assert.False(t, ok)
}

// accountsReadOnlyFs fails every write below accounts/.
type accountsReadOnlyFs struct {
	afero.Fs
}

func (f accountsReadOnlyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if strings.Contains(name, "/accounts/") && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, os.ErrPermission
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestFileStoreReportsProjectionLag(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	s, err := NewFileStore(accountsReadOnlyFs{base}, "/ledger")
	require.NoError(t, err)

	acc := account("Cash", model.Physical)
	c := createCommit(acc)
	err = s.Commit(ctx, c)
	require.ErrorIs(t, err, ErrProjectionLag)

	ok, err := s.ContainsCommand(ctx, c.Command.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	s, err = NewFileStore(base, "/ledger")
	require.NoError(t, err)
	defer s.Close()
	accounts, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Account{acc}, accounts)
}
