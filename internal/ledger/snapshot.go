package ledger

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
)

// Snapshot is the full projected state in canonical order.
type Snapshot struct {
	Accounts     []model.AccountView `json:"accounts"`
	Transactions []model.Transaction `json:"transactions"`
}

// Snapshot captures the current state.
func (p *Projection) Snapshot() Snapshot {
	return Snapshot{Accounts: p.Accounts(), Transactions: p.Transactions()}
}

// BuildSnapshot derives a snapshot from persisted projections, folding
// balances from the transactions. It fails when a transaction references an
// account that is not in the set.
func BuildSnapshot(accounts []model.Account, txs []model.Transaction) (Snapshot, error) {
	views := make(map[model.AccountID]*model.AccountView, len(accounts))
	for _, acc := range accounts {
		views[acc.ID] = &model.AccountView{Account: acc, Balances: model.Balances{}}
	}
	for _, tx := range txs {
		for _, posting := range tx.Postings() {
			v, ok := views[posting.Account]
			if !ok {
				return Snapshot{}, apperrors.WithMessage(apperrors.ErrProjectionDiverged,
					fmt.Sprintf("transaction %s references unknown account %s", tx.ID, posting.Account))
			}
			v.Balances.Add(posting.Amount)
		}
	}
	s := Snapshot{
		Accounts:     make([]model.AccountView, 0, len(views)),
		Transactions: append(make([]model.Transaction, 0, len(txs)), txs...),
	}
	for _, v := range views {
		s.Accounts = append(s.Accounts, *v)
	}
	slices.SortFunc(s.Accounts, func(a, b model.AccountView) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(s.Transactions, func(a, b model.Transaction) int { return cmp.Compare(a.ID, b.ID) })
	return s, nil
}

// Digest is the hex sha256 of the snapshot's canonical JSON encoding. Two
// snapshots are equal exactly when their digests are.
func (s Snapshot) Digest() string {
	data, err := json.Marshal(s)
	if err != nil {
		// every field has a total encoder
		panic(fmt.Sprintf("encode snapshot: %v", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Diff names the first difference between two snapshots, or "".
func (s Snapshot) Diff(o Snapshot) string {
	if len(s.Accounts) != len(o.Accounts) {
		return fmt.Sprintf("%d accounts vs %d", len(s.Accounts), len(o.Accounts))
	}
	if len(s.Transactions) != len(o.Transactions) {
		return fmt.Sprintf("%d transactions vs %d", len(s.Transactions), len(o.Transactions))
	}
	for i := range s.Accounts {
		a, b := s.Accounts[i], o.Accounts[i]
		if a.Account != b.Account || !a.Balances.Equal(b.Balances) {
			return fmt.Sprintf("account %s differs", a.ID)
		}
	}
	for i := range s.Transactions {
		if s.Transactions[i].ID != o.Transactions[i].ID {
			return fmt.Sprintf("transaction %s vs %s", s.Transactions[i].ID, o.Transactions[i].ID)
		}
	}
	if s.Digest() != o.Digest() {
		return "transaction contents differ"
	}
	return ""
}
