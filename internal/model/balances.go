package model

import (
	"slices"
	"strings"
)

// Balances maps each currency an account has seen to its current amount.
// It is always derived from transactions, never edited directly.
type Balances map[Currency]Amount

// Add accumulates a into the entry of its currency.
func (b Balances) Add(a Amount) {
	cur, ok := b[a.currency]
	if !ok {
		b[a.currency] = a
		return
	}
	// same currency by construction
	b[a.currency] = Amount{value: cur.value.Add(a.value), currency: a.currency}
}

// Get returns the balance in currency c, zero if the account never held it.
func (b Balances) Get(c Currency) Amount {
	if a, ok := b[c]; ok {
		return a
	}
	return Zero(c)
}

// IsZero reports whether every currency balance is zero.
func (b Balances) IsZero() bool {
	for _, a := range b {
		if !a.IsZero() {
			return false
		}
	}
	return true
}

// Currencies returns the currency codes in sorted order.
func (b Balances) Currencies() []Currency {
	out := make([]Currency, 0, len(b))
	for c := range b {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for c, a := range b {
		out[c] = a
	}
	return out
}

// Equal compares two balance sets entry by entry.
func (b Balances) Equal(o Balances) bool {
	if len(b) != len(o) {
		return false
	}
	for c, a := range b {
		if other, ok := o[c]; !ok || !a.Equal(other) {
			return false
		}
	}
	return true
}

func (b Balances) String() string {
	parts := make([]string, 0, len(b))
	for _, c := range b.Currencies() {
		parts = append(parts, b[c].String())
	}
	return strings.Join(parts, ", ")
}
