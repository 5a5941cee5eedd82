package store

import (
	"context"

	"github.com/hance08/tally/internal/model"
)

// Commit is everything one command changes. Backends persist it as a single
// atomic unit: after a crash either all of it is visible or none of it is.
type Commit struct {
	Command      model.Command
	Accounts     []model.Account
	Transactions []model.Transaction
}

// Backend is the storage capability set shared by the relational and the
// file-tree store. Accounts and transactions load sorted by id, commands in
// log order.
type Backend interface {
	LoadAccounts(ctx context.Context) ([]model.Account, error)
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)
	LoadCommands(ctx context.Context) ([]model.Command, error)
	ContainsCommand(ctx context.Context, id model.CommandID) (bool, error)
	Commit(ctx context.Context, c Commit) error
	// Rebuild replaces the account and transaction projections wholesale.
	// The command log is left untouched.
	Rebuild(ctx context.Context, accounts []model.Account, txs []model.Transaction) error
	Close() error
}

// Repository is the row-level surface of the relational store. ExecTx hands
// out one bound to a single SQL transaction.
type Repository interface {
	AppendCommand(ctx context.Context, cmd model.Command) error
	UpsertAccount(ctx context.Context, acc model.Account) error
	InsertTransaction(ctx context.Context, tx model.Transaction) error
	DeleteProjections(ctx context.Context) error
}
