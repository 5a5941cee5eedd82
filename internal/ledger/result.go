package ledger

import (
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// Result is what a successfully applied command produced. A resubmitted
// command id gets the original Result back with Duplicate set.
type Result struct {
	CommandID    model.CommandID     `json:"command_id"`
	Kind         model.CommandKind   `json:"kind"`
	Duplicate    bool                `json:"duplicate"`
	Accounts     []model.AccountView `json:"accounts"`
	Transactions []model.Transaction `json:"transactions"`
}

// Plan is a validated command and everything committing it changes.
// Building a plan never touches the projection.
type Plan struct {
	Command model.Command
	// Accounts holds created or modified account records.
	Accounts []model.Account
	// Transactions holds the transactions the command creates.
	Transactions []model.Transaction
	// Balances holds the post-command balances of every touched account.
	Balances map[model.AccountID]model.Balances

	version uint64
	touched []model.AccountID
}

// Commit returns the unit a storage backend persists atomically.
func (p Plan) Commit() store.Commit {
	return store.Commit{
		Command:      p.Command,
		Accounts:     p.Accounts,
		Transactions: p.Transactions,
	}
}

func (p Plan) result(accounts map[model.AccountID]*model.AccountView) Result {
	r := Result{
		CommandID:    p.Command.ID,
		Kind:         p.Command.Payload.Kind(),
		Accounts:     make([]model.AccountView, 0, len(p.touched)),
		Transactions: append([]model.Transaction(nil), p.Transactions...),
	}
	for _, id := range p.touched {
		if v, ok := accounts[id]; ok {
			r.Accounts = append(r.Accounts, v.Clone())
		}
	}
	return r
}

func (r Result) clone() Result {
	out := r
	out.Accounts = make([]model.AccountView, len(r.Accounts))
	for i, v := range r.Accounts {
		out.Accounts[i] = v.Clone()
	}
	out.Transactions = append([]model.Transaction(nil), r.Transactions...)
	return out
}
