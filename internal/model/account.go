package model

import (
	"strings"

	apperrors "github.com/hance08/tally/internal/errors"
)

// AccountKind distinguishes where money physically sits from how it is earmarked.
type AccountKind string

const (
	Physical AccountKind = "Physical"
	Virtual  AccountKind = "Virtual"
)

// ParseAccountKind accepts the kind name in any letter case.
func ParseAccountKind(s string) (AccountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical", "phys":
		return Physical, nil
	case "virtual", "virt":
		return Virtual, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown account type "+quote(s))
}

func (k AccountKind) String() string { return string(k) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AccountKind) UnmarshalText(b []byte) error {
	parsed, err := ParseAccountKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Account is the stored state of an account apart from its balances.
type Account struct {
	ID      AccountID   `json:"id"`
	Name    string      `json:"name"`
	Notes   string      `json:"notes"`
	Kind    AccountKind `json:"typ"`
	Enabled bool        `json:"enabled"`
}

// AccountView is an account together with its derived per-currency balances.
type AccountView struct {
	Account
	Balances Balances `json:"current"`
}

// Clone returns a copy that shares nothing with v.
func (v AccountView) Clone() AccountView {
	v.Balances = v.Balances.Clone()
	return v
}
