package service

import (
	"context"

	"github.com/hance08/tally/internal/ledger"
	"github.com/hance08/tally/internal/model"
)

type TransactionService struct {
	svc *Service
}

func NewTransactionService(svc *Service) *TransactionService {
	return &TransactionService{svc: svc}
}

// AddTransaction issues an AddTransaction command with fresh ids.
func (ts *TransactionService) AddTransaction(ctx context.Context, in TransactionInput) (ledger.Result, error) {
	return ts.svc.Apply(ctx, model.NewCommand(model.AddTransaction{Transaction: in.build()}))
}

// GetTransactions lists all transactions, or those of one account.
func (ts *TransactionService) GetTransactions(ctx context.Context, account model.AccountID) ([]model.Transaction, error) {
	return ts.svc.ListTransactions(ctx, account)
}
