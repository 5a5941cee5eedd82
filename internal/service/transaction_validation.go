package service

import (
	"context"
	"fmt"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
)

// ParseTransactionInput resolves account references and parses amounts with
// the lenient input grammar. Ledger rules are left to the engine.
func (ts *TransactionService) ParseTransactionInput(ctx context.Context, raw RawTransactionInput) (TransactionInput, error) {
	if _, _, ok := model.SlotKinds(raw.Kind); !ok {
		return TransactionInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown transaction type %q", raw.Kind))
	}
	amount, err := model.ParseInput(raw.Amount)
	if err != nil {
		return TransactionInput{}, err
	}
	in := TransactionInput{Kind: raw.Kind, Amount: amount, Party: raw.Party, Notes: raw.Notes}

	if raw.Kind == model.Convert {
		n, err := model.ParseInput(raw.NewAmount)
		if err != nil {
			return TransactionInput{}, err
		}
		in.NewAmount = &n
	}

	acc1, err := ts.svc.Account.Resolve(ctx, raw.Acc1)
	if err != nil {
		return TransactionInput{}, err
	}
	acc2, err := ts.svc.Account.Resolve(ctx, raw.Acc2)
	if err != nil {
		return TransactionInput{}, err
	}
	in.Acc1, in.Acc2 = acc1.ID, acc2.ID
	return in, nil
}
