package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/ledger"
	"github.com/hance08/tally/internal/model"
)

type AccountService struct {
	svc *Service
}

func NewAccountService(svc *Service) *AccountService {
	return &AccountService{svc: svc}
}

// CreateAccountInput describes a new account. Opening balances are recorded
// as opening transactions.
type CreateAccountInput struct {
	Name     string
	Notes    string
	Kind     model.AccountKind
	Opening  model.Balances
	Disabled bool
}

// CreateAccount issues a CreateAccount command with fresh ids.
func (as *AccountService) CreateAccount(ctx context.Context, in CreateAccountInput) (model.AccountView, error) {
	acc := model.Account{
		ID:      model.NewAccountID(),
		Name:    strings.TrimSpace(in.Name),
		Notes:   in.Notes,
		Kind:    in.Kind,
		Enabled: !in.Disabled,
	}
	r, err := as.svc.Apply(ctx, model.NewCommand(model.CreateAccount{Account: acc, Opening: in.Opening}))
	if err != nil {
		return model.AccountView{}, err
	}
	return firstAccount(r)
}

// UpdateAccount applies ops in order as one command.
func (as *AccountService) UpdateAccount(ctx context.Context, id model.AccountID, ops ...model.AccountOp) (model.AccountView, error) {
	r, err := as.svc.Apply(ctx, model.NewCommand(model.UpdateAccount{ID: id, Ops: ops}))
	if err != nil {
		return model.AccountView{}, err
	}
	return firstAccount(r)
}

func (as *AccountService) Rename(ctx context.Context, id model.AccountID, name string) (model.AccountView, error) {
	return as.UpdateAccount(ctx, id, model.RenameOp(strings.TrimSpace(name)))
}

func (as *AccountService) SetNotes(ctx context.Context, id model.AccountID, notes string) (model.AccountView, error) {
	return as.UpdateAccount(ctx, id, model.SetNotesOp(notes))
}

func (as *AccountService) Disable(ctx context.Context, id model.AccountID) (model.AccountView, error) {
	return as.UpdateAccount(ctx, id, model.DisableOp())
}

func (as *AccountService) Enable(ctx context.Context, id model.AccountID) (model.AccountView, error) {
	return as.UpdateAccount(ctx, id, model.EnableOp())
}

func (as *AccountService) GetAllAccounts(ctx context.Context) ([]model.AccountView, error) {
	return as.svc.ListAccounts(ctx)
}

// GetAccountsByKind lists accounts of one kind, optionally only enabled ones.
func (as *AccountService) GetAccountsByKind(ctx context.Context, kind model.AccountKind, enabledOnly bool) ([]model.AccountView, error) {
	all, err := as.svc.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.AccountView
	for _, v := range all {
		if v.Kind == kind && (v.Enabled || !enabledOnly) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Resolve finds an account by exact id or by case-insensitive name. A name
// shared by several accounts is ambiguous and has to be given as an id.
func (as *AccountService) Resolve(ctx context.Context, ref string) (model.AccountView, error) {
	ref = strings.TrimSpace(ref)
	if _, err := model.ParseID(ref); err == nil {
		return as.svc.GetAccount(ctx, model.AccountID(ref))
	}
	all, err := as.svc.ListAccounts(ctx)
	if err != nil {
		return model.AccountView{}, err
	}
	var matches []model.AccountView
	for _, v := range all {
		if strings.EqualFold(v.Name, ref) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return model.AccountView{}, apperrors.WithMessage(apperrors.ErrAccountNotFound, fmt.Sprintf("no account named %q", ref))
	case 1:
		return matches[0], nil
	default:
		return model.AccountView{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%d accounts are named %q, use the account id", len(matches), ref))
	}
}

func firstAccount(r ledger.Result) (model.AccountView, error) {
	if len(r.Accounts) == 0 {
		return model.AccountView{}, apperrors.WithMessage(apperrors.ErrInternalServer, "result carries no account")
	}
	return r.Accounts[0], nil
}
