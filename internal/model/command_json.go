package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/validation"
)

// Commands are externally tagged on the wire:
//
//	{"id": "...", "command": {"CreateAccount": {...}}}
//	{"id": "...", "command": {"UpdateAccount": ["<account id>", ["Disable", {"Rename": "x"}]]}}
//	{"id": "...", "command": {"AddTransaction": {"type": "Received", ...}}}

type commandEnvelope struct {
	ID      string          `json:"id" validate:"required,ledger_id"`
	Command json.RawMessage `json:"command" validate:"required"`
}

type createAccountWire struct {
	ID      string   `json:"id" validate:"required,ledger_id"`
	Name    string   `json:"name"`
	Notes   string   `json:"notes"`
	Typ     string   `json:"typ" validate:"required,account_kind"`
	Current Balances `json:"current"`
	Enabled *bool    `json:"enabled,omitempty"`
}

type transactionWire struct {
	ID        string  `json:"id" validate:"required,ledger_id"`
	Notes     string  `json:"notes"`
	Amount    *Amount `json:"amount" validate:"required"`
	Type      string  `json:"type" validate:"required,transaction_kind"`
	Src       *string `json:"src,omitempty"`
	SrcVirt   *string `json:"src_virt,omitempty"`
	Dst       *string `json:"dst,omitempty"`
	DstVirt   *string `json:"dst_virt,omitempty"`
	Acc       *string `json:"acc,omitempty"`
	AccVirt   *string `json:"acc_virt,omitempty"`
	NewAmount *Amount `json:"new_amount,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c Command) MarshalJSON() ([]byte, error) {
	payload, err := EncodePayload(c.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(commandEnvelope{ID: string(c.ID), Command: payload})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Command) UnmarshalJSON(data []byte) error {
	var env commandEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return invalidInput(err)
	}
	if err := validation.Struct(env); err != nil {
		return invalidCommand(err)
	}
	p, err := DecodePayload(env.Command)
	if err != nil {
		return err
	}
	c.ID = CommandID(env.ID)
	c.Payload = p
	return nil
}

// EncodePayload renders a payload in its externally tagged form.
func EncodePayload(p Payload) ([]byte, error) {
	var body any
	switch v := p.(type) {
	case CreateAccount:
		w := createAccountWire{
			ID:      string(v.Account.ID),
			Name:    v.Account.Name,
			Notes:   v.Account.Notes,
			Typ:     string(v.Account.Kind),
			Current: v.Opening,
			Enabled: &v.Account.Enabled,
		}
		if w.Current == nil {
			w.Current = Balances{}
		}
		body = w
	case UpdateAccount:
		ops := make([]AccountOp, len(v.Ops))
		copy(ops, v.Ops)
		body = []any{string(v.ID), ops}
	case AddTransaction:
		body = v.Transaction
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCommand, fmt.Sprintf("unknown payload %T", p))
	}
	return json.Marshal(map[string]any{string(p.Kind()): body})
}

// DecodePayload parses an externally tagged payload.
func DecodePayload(data []byte) (Payload, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, invalidInput(err)
	}
	if len(tagged) != 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCommand, "command must carry exactly one payload")
	}
	for tag, body := range tagged {
		switch CommandKind(tag) {
		case KindCreateAccount:
			return decodeCreateAccount(body)
		case KindUpdateAccount:
			return decodeUpdateAccount(body)
		case KindAddTransaction:
			var t Transaction
			if err := json.Unmarshal(body, &t); err != nil {
				return nil, err
			}
			return AddTransaction{Transaction: t}, nil
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidCommand, "unknown command "+quote(tag))
		}
	}
	return nil, nil
}

func decodeCreateAccount(body json.RawMessage) (Payload, error) {
	var w createAccountWire
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, invalidInput(err)
	}
	if err := validation.Struct(w); err != nil {
		return nil, invalidCommand(err)
	}
	kind, err := ParseAccountKind(w.Typ)
	if err != nil {
		return nil, err
	}
	enabled := true
	if w.Enabled != nil {
		enabled = *w.Enabled
	}
	return CreateAccount{
		Account: Account{
			ID:      AccountID(w.ID),
			Name:    w.Name,
			Notes:   w.Notes,
			Kind:    kind,
			Enabled: enabled,
		},
		Opening: w.Current,
	}, nil
}

func decodeUpdateAccount(body json.RawMessage) (Payload, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, invalidInput(err)
	}
	if len(parts) != 2 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCommand, "UpdateAccount is [id, ops]")
	}
	var id AccountID
	if err := json.Unmarshal(parts[0], &id); err != nil {
		return nil, err
	}
	var ops []AccountOp
	if err := json.Unmarshal(parts[1], &ops); err != nil {
		return nil, err
	}
	return UpdateAccount{ID: id, Ops: ops}, nil
}

// MarshalJSON implements json.Marshaler.
func (op AccountOp) MarshalJSON() ([]byte, error) {
	switch op.Kind {
	case OpDisable, OpEnable:
		return json.Marshal(string(op.Kind))
	case OpRename, OpSetNotes:
		return json.Marshal(map[string]string{string(op.Kind): op.Text})
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidCommand, "unknown account operation "+quote(string(op.Kind)))
}

// UnmarshalJSON implements json.Unmarshaler. The older UpdateName and
// UpdateNotes spellings are accepted as aliases.
func (op *AccountOp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return invalidInput(err)
		}
		switch OpKind(s) {
		case OpDisable, OpEnable:
			*op = AccountOp{Kind: OpKind(s)}
			return nil
		}
		return apperrors.WithMessage(apperrors.ErrInvalidCommand, "unknown account operation "+quote(s))
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return invalidInput(err)
	}
	if len(m) != 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidCommand, "account operation must carry exactly one key")
	}
	for k, v := range m {
		switch k {
		case "Rename", "UpdateName":
			*op = RenameOp(v)
		case "SetNotes", "UpdateNotes":
			*op = SetNotesOp(v)
		default:
			return apperrors.WithMessage(apperrors.ErrInvalidCommand, "unknown account operation "+quote(k))
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the per-kind field names.
func (t Transaction) MarshalJSON() ([]byte, error) {
	amount := t.Amount
	w := transactionWire{
		ID:     string(t.ID),
		Notes:  t.Notes,
		Amount: &amount,
		Type:   string(t.Kind),
	}
	acc1, acc2 := string(t.Acc1), string(t.Acc2)
	switch t.Kind {
	case Received:
		w.Src, w.Dst, w.DstVirt = t.ExternalParty, &acc1, &acc2
	case Paid:
		w.Src, w.SrcVirt, w.Dst = &acc1, &acc2, t.ExternalParty
	case MovePhys, MoveVirt:
		w.Src, w.Dst = &acc1, &acc2
	case Convert:
		w.Acc, w.AccVirt, w.NewAmount = &acc1, &acc2, t.NewAmount
	case Opening:
		w.Acc = &acc1
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Account slots left out of the
// input stay empty so the engine can report which one is missing.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w transactionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return invalidInput(err)
	}
	if err := validation.Struct(w); err != nil {
		return invalidCommand(err)
	}
	out := Transaction{
		ID:        TransactionID(w.ID),
		Notes:     w.Notes,
		Amount:    *w.Amount,
		Kind:      TransactionKind(w.Type),
		NewAmount: w.NewAmount,
	}
	var a1, a2 *string
	switch out.Kind {
	case Received:
		out.ExternalParty, a1, a2 = w.Src, w.Dst, w.DstVirt
	case Paid:
		a1, a2, out.ExternalParty = w.Src, w.SrcVirt, w.Dst
	case MovePhys, MoveVirt:
		a1, a2 = w.Src, w.Dst
	case Convert:
		a1, a2 = w.Acc, w.AccVirt
	case Opening:
		a1, a2 = w.Acc, w.Acc
	}
	var err error
	if out.Acc1, err = accountRef(a1); err != nil {
		return err
	}
	if out.Acc2, err = accountRef(a2); err != nil {
		return err
	}
	*t = out
	return nil
}

func accountRef(s *string) (AccountID, error) {
	if s == nil || *s == "" {
		return "", nil
	}
	id, err := ParseID(*s)
	return AccountID(id), err
}

func invalidInput(err error) error {
	if _, ok := err.(*apperrors.AppError); ok {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err)
}

func invalidCommand(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidCommand, err.Error())
}
