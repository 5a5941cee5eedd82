// Package ledger holds the in-memory projection of the command log and the
// engine that validates commands against it.
package ledger

import (
	"cmp"
	"fmt"
	"slices"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
)

// Projection is the current state derived from the command log: accounts
// with cached balances, transactions, and the result of every applied
// command. It is not safe for concurrent use; the service serialises access.
type Projection struct {
	policy    Policy
	version   uint64
	accounts  map[model.AccountID]*model.AccountView
	txs       map[model.TransactionID]model.Transaction
	byAccount map[model.AccountID][]model.TransactionID
	results   map[model.CommandID]Result
}

// NewProjection returns an empty projection.
func NewProjection(policy Policy) *Projection {
	return &Projection{
		policy:    policy,
		accounts:  make(map[model.AccountID]*model.AccountView),
		txs:       make(map[model.TransactionID]model.Transaction),
		byAccount: make(map[model.AccountID][]model.TransactionID),
		results:   make(map[model.CommandID]Result),
	}
}

// Policy returns the admission policy in force.
func (p *Projection) Policy() Policy { return p.policy }

// SetPolicy replaces the admission policy.
func (p *Projection) SetPolicy(policy Policy) { p.policy = policy }

// Version is the number of commands applied so far.
func (p *Projection) Version() uint64 { return p.version }

// Lookup returns the stored result of an already applied command.
func (p *Projection) Lookup(id model.CommandID) (Result, bool) {
	r, ok := p.results[id]
	if !ok {
		return Result{}, false
	}
	r = r.clone()
	r.Duplicate = true
	return r, true
}

// Apply validates and commits cmd in memory. Resubmitting an applied command
// id returns the original result without changing anything.
func (p *Projection) Apply(cmd model.Command) (Result, error) {
	if r, ok := p.Lookup(cmd.ID); ok {
		return r, nil
	}
	plan, err := p.Prepare(cmd)
	if err != nil {
		return Result{}, err
	}
	return p.Commit(plan)
}

// Commit applies a plan produced by Prepare on the same version of p.
func (p *Projection) Commit(plan Plan) (Result, error) {
	if plan.version != p.version {
		return Result{}, fmt.Errorf("plan for version %d committed at version %d", plan.version, p.version)
	}
	for _, acc := range plan.Accounts {
		view, ok := p.accounts[acc.ID]
		if !ok {
			view = &model.AccountView{Balances: model.Balances{}}
			p.accounts[acc.ID] = view
		}
		view.Account = acc
	}
	for _, tx := range plan.Transactions {
		p.txs[tx.ID] = tx
		for _, id := range tx.Accounts() {
			p.byAccount[id] = append(p.byAccount[id], tx.ID)
		}
	}
	for id, bal := range plan.Balances {
		p.accounts[id].Balances = bal.Clone()
	}
	p.version++
	r := plan.result(p.accounts)
	p.results[plan.Command.ID] = r
	return r.clone(), nil
}

// Accounts returns every account sorted by id.
func (p *Projection) Accounts() []model.AccountView {
	out := make([]model.AccountView, 0, len(p.accounts))
	for _, v := range p.accounts {
		out = append(out, v.Clone())
	}
	slices.SortFunc(out, func(a, b model.AccountView) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Account returns one account with its balances.
func (p *Projection) Account(id model.AccountID) (model.AccountView, error) {
	v, ok := p.accounts[id]
	if !ok {
		return model.AccountView{}, notFound(id)
	}
	return v.Clone(), nil
}

// Transactions returns every transaction sorted by id.
func (p *Projection) Transactions() []model.Transaction {
	out := make([]model.Transaction, 0, len(p.txs))
	for _, tx := range p.txs {
		out = append(out, tx)
	}
	slices.SortFunc(out, func(a, b model.Transaction) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// AccountTransactions returns the transactions touching id in the order
// they were applied.
func (p *Projection) AccountTransactions(id model.AccountID) ([]model.Transaction, error) {
	if _, ok := p.accounts[id]; !ok {
		return nil, notFound(id)
	}
	ids := p.byAccount[id]
	out := make([]model.Transaction, len(ids))
	for i, txID := range ids {
		out[i] = p.txs[txID]
	}
	return out, nil
}

// Verify recomputes every balance by folding the transaction history and
// compares it with the cached value.
func (p *Projection) Verify() error {
	for id, view := range p.accounts {
		folded := model.Balances{}
		for _, txID := range p.byAccount[id] {
			foldInto(folded, id, p.txs[txID])
		}
		if !folded.Equal(view.Balances) {
			return apperrors.WithMessage(apperrors.ErrProjectionDiverged,
				fmt.Sprintf("account %s caches %q but its history sums to %q", id, view.Balances, folded))
		}
	}
	return nil
}

func foldInto(b model.Balances, id model.AccountID, tx model.Transaction) {
	for _, posting := range tx.Postings() {
		if posting.Account == id {
			b.Add(posting.Amount)
		}
	}
}

func notFound(id model.AccountID) error {
	return apperrors.WithMessage(apperrors.ErrAccountNotFound, fmt.Sprintf("account %s not found", id))
}
