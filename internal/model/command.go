package model

import (
	"fmt"
	"strings"
)

// CommandKind is the external tag of a command payload.
type CommandKind string

const (
	KindCreateAccount  CommandKind = "CreateAccount"
	KindUpdateAccount  CommandKind = "UpdateAccount"
	KindAddTransaction CommandKind = "AddTransaction"
)

// Payload is one of CreateAccount, UpdateAccount or AddTransaction.
type Payload interface {
	Kind() CommandKind
	Describe() string
}

// Command is the unit of intent recorded in the log. Its ID makes
// submission idempotent.
type Command struct {
	ID      CommandID
	Payload Payload
}

// NewCommand wraps a payload with a fresh command id.
func NewCommand(p Payload) Command {
	return Command{ID: NewCommandID(), Payload: p}
}

func (c Command) String() string {
	if c.Payload == nil {
		return string(c.ID)
	}
	return fmt.Sprintf("%s %s", c.ID, c.Payload.Describe())
}

// CreateAccount introduces a new account. Opening holds optional starting
// balances which the engine records as Opening transactions.
type CreateAccount struct {
	Account Account
	Opening Balances
}

func (CreateAccount) Kind() CommandKind { return KindCreateAccount }

func (p CreateAccount) Describe() string {
	s := fmt.Sprintf("create %s account %q (%s)", p.Account.Kind, p.Account.Name, p.Account.ID)
	if len(p.Opening) > 0 {
		s += " opening " + p.Opening.String()
	}
	return s
}

// OpKind names an account update operation.
type OpKind string

const (
	OpDisable  OpKind = "Disable"
	OpEnable   OpKind = "Enable"
	OpRename   OpKind = "Rename"
	OpSetNotes OpKind = "SetNotes"
)

// AccountOp is a single modification; Text carries the new name or notes.
type AccountOp struct {
	Kind OpKind
	Text string
}

func DisableOp() AccountOp              { return AccountOp{Kind: OpDisable} }
func EnableOp() AccountOp               { return AccountOp{Kind: OpEnable} }
func RenameOp(name string) AccountOp    { return AccountOp{Kind: OpRename, Text: name} }
func SetNotesOp(notes string) AccountOp { return AccountOp{Kind: OpSetNotes, Text: notes} }

func (op AccountOp) String() string {
	switch op.Kind {
	case OpRename, OpSetNotes:
		return fmt.Sprintf("%s(%q)", op.Kind, op.Text)
	}
	return string(op.Kind)
}

// UpdateAccount applies ops in order to one account.
type UpdateAccount struct {
	ID  AccountID
	Ops []AccountOp
}

func (UpdateAccount) Kind() CommandKind { return KindUpdateAccount }

func (p UpdateAccount) Describe() string {
	ops := make([]string, len(p.Ops))
	for i, op := range p.Ops {
		ops[i] = op.String()
	}
	return fmt.Sprintf("update %s [%s]", p.ID, strings.Join(ops, ", "))
}

// AddTransaction appends a new transaction.
type AddTransaction struct {
	Transaction Transaction
}

func (AddTransaction) Kind() CommandKind { return KindAddTransaction }

func (p AddTransaction) Describe() string {
	return fmt.Sprintf("add %s %s", p.Transaction.ID, p.Transaction.Describe())
}
