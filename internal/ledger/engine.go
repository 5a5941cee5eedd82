package ledger

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hance08/tally/internal/constants"
	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
)

// Prepare validates cmd against the current state and returns the plan that
// committing it would apply. Nothing is mutated, so a rejected command leaves
// no trace.
func (p *Projection) Prepare(cmd model.Command) (Plan, error) {
	if cmd.ID == "" {
		return Plan{}, missing("command id")
	}
	if _, ok := p.results[cmd.ID]; ok {
		return Plan{}, apperrors.WithMessage(apperrors.ErrDuplicateCommandID,
			fmt.Sprintf("command %s is already in the log", cmd.ID))
	}
	plan := Plan{
		Command:  cmd,
		Balances: make(map[model.AccountID]model.Balances),
		version:  p.version,
	}
	var err error
	switch c := cmd.Payload.(type) {
	case model.CreateAccount:
		err = p.prepareCreate(&plan, c)
	case model.UpdateAccount:
		err = p.prepareUpdate(&plan, c)
	case model.AddTransaction:
		err = p.prepareTransaction(&plan, c.Transaction)
	default:
		err = apperrors.WithMessage(apperrors.ErrInvalidCommand, fmt.Sprintf("unsupported payload %T", cmd.Payload))
	}
	if err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (p *Projection) prepareCreate(plan *Plan, c model.CreateAccount) error {
	acc := c.Account
	if acc.ID == "" {
		return missing("account id")
	}
	if _, ok := p.accounts[acc.ID]; ok {
		return apperrors.WithMessage(apperrors.ErrAccountExists, fmt.Sprintf("account %s already exists", acc.ID))
	}
	if err := checkName(acc.Name); err != nil {
		return err
	}
	if acc.Kind != model.Physical && acc.Kind != model.Virtual {
		return apperrors.WithMessage(apperrors.ErrInvalidCommand, fmt.Sprintf("unknown account type %q", acc.Kind))
	}

	balances := model.Balances{}
	for _, cur := range c.Opening.Currencies() {
		amount := c.Opening[cur]
		if amount.Currency() != cur {
			return apperrors.WithMessage(apperrors.ErrCurrencyMismatch,
				fmt.Sprintf("opening balance %s filed under %s", amount, cur))
		}
		if amount.IsZero() {
			continue
		}
		if amount.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrNonPositiveAmount,
				fmt.Sprintf("opening balance %s must not be negative", amount))
		}
		tx := model.Transaction{
			ID:     model.TransactionID(model.DeriveID("opening", string(plan.Command.ID), string(cur))),
			Notes:  "Opening balance",
			Amount: amount,
			Kind:   model.Opening,
			Acc1:   acc.ID,
			Acc2:   acc.ID,
		}
		if _, ok := p.txs[tx.ID]; ok {
			return apperrors.WithMessage(apperrors.ErrTransactionExists, fmt.Sprintf("transaction %s already exists", tx.ID))
		}
		foldInto(balances, acc.ID, tx)
		plan.Transactions = append(plan.Transactions, tx)
	}

	plan.Accounts = []model.Account{acc}
	plan.Balances[acc.ID] = balances
	plan.touched = []model.AccountID{acc.ID}
	return nil
}

func (p *Projection) prepareUpdate(plan *Plan, c model.UpdateAccount) error {
	if c.ID == "" {
		return missing("account id")
	}
	view, ok := p.accounts[c.ID]
	if !ok {
		return notFound(c.ID)
	}
	if len(c.Ops) == 0 {
		return apperrors.WithMessage(apperrors.ErrEmptyUpdate, fmt.Sprintf("update of %s carries no operations", c.ID))
	}

	acc := view.Account
	for _, op := range c.Ops {
		switch op.Kind {
		case model.OpDisable:
			if !p.policy.AllowDisableWithBalance && !view.Balances.IsZero() {
				return apperrors.WithMessage(apperrors.ErrAccountHasBalance,
					fmt.Sprintf("account %s still holds %s", c.ID, view.Balances))
			}
			acc.Enabled = false
		case model.OpEnable:
			acc.Enabled = true
		case model.OpRename:
			if err := checkName(op.Text); err != nil {
				return err
			}
			acc.Name = op.Text
		case model.OpSetNotes:
			acc.Notes = op.Text
		default:
			return apperrors.WithMessage(apperrors.ErrInvalidCommand, fmt.Sprintf("unknown account operation %q", op.Kind))
		}
	}

	plan.Accounts = []model.Account{acc}
	plan.Balances[acc.ID] = view.Balances.Clone()
	plan.touched = []model.AccountID{acc.ID}
	return nil
}

func (p *Projection) prepareTransaction(plan *Plan, tx model.Transaction) error {
	slot1, slot2, ok := model.SlotKinds(tx.Kind)
	if !ok {
		return apperrors.WithMessage(apperrors.ErrInvalidCommand, fmt.Sprintf("transaction type %q cannot be added", tx.Kind))
	}
	if tx.ID == "" {
		return missing("transaction id")
	}
	if _, ok := p.txs[tx.ID]; ok {
		return apperrors.WithMessage(apperrors.ErrTransactionExists, fmt.Sprintf("transaction %s already exists", tx.ID))
	}
	if !tx.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrNonPositiveAmount, fmt.Sprintf("amount %s must be strictly positive", tx.Amount))
	}

	if tx.Kind.HasExternalParty() {
		if tx.ExternalParty == nil || strings.TrimSpace(*tx.ExternalParty) == "" {
			return missing("external party")
		}
	} else if tx.ExternalParty != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidCommand, fmt.Sprintf("%s transactions have no external party", tx.Kind))
	}

	if tx.Kind == model.Convert {
		if tx.NewAmount == nil {
			return missing("new_amount")
		}
		if !tx.NewAmount.IsPositive() {
			return apperrors.WithMessage(apperrors.ErrNonPositiveAmount, fmt.Sprintf("new amount %s must be strictly positive", tx.NewAmount))
		}
		if tx.NewAmount.Currency() == tx.Amount.Currency() {
			return apperrors.WithMessage(apperrors.ErrCurrencyMismatch,
				fmt.Sprintf("conversion must change currency, both sides are %s", tx.Amount.Currency()))
		}
	} else if tx.NewAmount != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidCommand, fmt.Sprintf("%s transactions have no new_amount", tx.Kind))
	}

	if tx.Acc1 == "" {
		return missing("first account")
	}
	if tx.Acc2 == "" {
		return missing("second account")
	}
	if tx.Acc1 == tx.Acc2 {
		return apperrors.WithMessage(apperrors.ErrSameAccount, fmt.Sprintf("%s moves from %s to itself", tx.Kind, tx.Acc1))
	}
	for _, slot := range []struct {
		id   model.AccountID
		kind model.AccountKind
	}{{tx.Acc1, slot1}, {tx.Acc2, slot2}} {
		view, ok := p.accounts[slot.id]
		if !ok {
			return notFound(slot.id)
		}
		if !view.Enabled {
			return apperrors.WithMessage(apperrors.ErrAccountDisabled, fmt.Sprintf("account %s is disabled", slot.id))
		}
		if view.Kind != slot.kind {
			return apperrors.WithMessage(apperrors.ErrWrongAccountKind,
				fmt.Sprintf("%s needs a %s account in this slot, %s is %s", tx.Kind, slot.kind, slot.id, view.Kind))
		}
	}

	for _, id := range tx.Accounts() {
		plan.Balances[id] = p.accounts[id].Balances.Clone()
	}
	for _, posting := range tx.Postings() {
		plan.Balances[posting.Account].Add(posting.Amount)
	}
	if !p.policy.AllowOverdraft {
		for _, posting := range tx.Postings() {
			after := plan.Balances[posting.Account].Get(posting.Amount.Currency())
			if posting.Amount.IsNegative() && after.IsNegative() {
				return apperrors.WithMessage(apperrors.ErrInsufficientFunds,
					fmt.Sprintf("account %s would drop to %s", posting.Account, after))
			}
		}
	}

	plan.Transactions = []model.Transaction{tx}
	plan.touched = tx.Accounts()
	return nil
}

func checkName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidName, "account name can't be empty")
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLen {
		return apperrors.WithMessage(apperrors.ErrInvalidName,
			fmt.Sprintf("account name too long (max %d characters)", constants.MaxNameLen))
	}
	return nil
}

func missing(field string) error {
	return apperrors.WithMessage(apperrors.ErrMissingField, field+" is required")
}
