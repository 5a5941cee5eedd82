package model

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hance08/tally/internal/errors"
)

func TestCreateAccountWire(t *testing.T) {
	acc := NewAccountID()
	cmd := Command{
		ID: NewCommandID(),
		Payload: CreateAccount{
			Account: Account{ID: acc, Name: "Wallet", Kind: Physical, Enabled: true},
			Opening: Balances{EUR: mustParse(t, "20 EUR")},
		},
	}

	data, err := json.Marshal(cmd)
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"command":{"CreateAccount":{
		"id":%q,"name":"Wallet","notes":"","typ":"Physical",
		"current":{"EUR":"20 EUR"},"enabled":true}}}`, cmd.ID, acc), string(data))

	var back Command
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cmd.ID, back.ID)
	got := back.Payload.(CreateAccount)
	assert.Equal(t, cmd.Payload.(CreateAccount).Account, got.Account)
	assert.True(t, got.Opening.Equal(cmd.Payload.(CreateAccount).Opening))
}

func TestCreateAccountDefaultsToEnabled(t *testing.T) {
	acc := NewAccountID()
	p, err := DecodePayload([]byte(fmt.Sprintf(`{"CreateAccount":{"id":%q,"name":"Jar","typ":"virtual"}}`, acc)))
	require.NoError(t, err)
	ca := p.(CreateAccount)
	assert.True(t, ca.Account.Enabled)
	assert.Equal(t, Virtual, ca.Account.Kind)
	assert.Empty(t, ca.Opening)
}

func TestUpdateAccountWire(t *testing.T) {
	acc := NewAccountID()
	p := UpdateAccount{ID: acc, Ops: []AccountOp{DisableOp(), RenameOp("Cash"), SetNotesOp("n"), EnableOp()}}

	data, err := EncodePayload(p)
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{"UpdateAccount":[%q,["Disable",{"Rename":"Cash"},{"SetNotes":"n"},"Enable"]]}`, acc), string(data))

	back, err := DecodePayload(data)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestUpdateAccountLegacyAliases(t *testing.T) {
	acc := NewAccountID()
	back, err := DecodePayload([]byte(fmt.Sprintf(`{"UpdateAccount":[%q,[{"UpdateName":"A"},{"UpdateNotes":"B"}]]}`, acc)))
	require.NoError(t, err)
	assert.Equal(t, UpdateAccount{ID: acc, Ops: []AccountOp{RenameOp("A"), SetNotesOp("B")}}, back)
}

func TestTransactionFieldMapping(t *testing.T) {
	phys, virt := NewAccountID(), NewAccountID()
	party := "Employer"
	newAmount := mustParse(t, "90 USD")

	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "received",
			tx:   Transaction{Kind: Received, ExternalParty: &party, Acc1: phys, Acc2: virt},
			want: fmt.Sprintf(`"type":"Received","src":"Employer","dst":%q,"dst_virt":%q`, phys, virt),
		},
		{
			name: "paid",
			tx:   Transaction{Kind: Paid, ExternalParty: &party, Acc1: phys, Acc2: virt},
			want: fmt.Sprintf(`"type":"Paid","src":%q,"src_virt":%q,"dst":"Employer"`, phys, virt),
		},
		{
			name: "move phys",
			tx:   Transaction{Kind: MovePhys, Acc1: phys, Acc2: virt},
			want: fmt.Sprintf(`"type":"MovePhys","src":%q,"dst":%q`, phys, virt),
		},
		{
			name: "move virt",
			tx:   Transaction{Kind: MoveVirt, Acc1: phys, Acc2: virt},
			want: fmt.Sprintf(`"type":"MoveVirt","src":%q,"dst":%q`, phys, virt),
		},
		{
			name: "convert",
			tx:   Transaction{Kind: Convert, NewAmount: &newAmount, Acc1: phys, Acc2: virt},
			want: fmt.Sprintf(`"type":"Convert","acc":%q,"acc_virt":%q,"new_amount":"90 USD"`, phys, virt),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tx.ID = NewTransactionID()
			tt.tx.Notes = "note"
			tt.tx.Amount = mustParse(t, "100 EUR")

			data, err := json.Marshal(tt.tx)
			require.NoError(t, err)
			want := fmt.Sprintf(`{"id":%q,"notes":"note","amount":"100 EUR",%s}`, tt.tx.ID, tt.want)
			assert.JSONEq(t, want, string(data))

			var back Transaction
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.tx, back)
		})
	}
}

func TestTransactionDecodeLeavesMissingSlotsEmpty(t *testing.T) {
	var tx Transaction
	data := fmt.Sprintf(`{"id":%q,"amount":"5 EUR","type":"Received","dst":%q}`, NewTransactionID(), NewAccountID())
	require.NoError(t, json.Unmarshal([]byte(data), &tx))
	assert.Nil(t, tx.ExternalParty)
	assert.Empty(t, tx.Acc2)
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	acc := NewAccountID()
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{`, apperrors.ErrInvalidInput},
		{"two payloads", `{"CreateAccount":{},"AddTransaction":{}}`, apperrors.ErrInvalidCommand},
		{"unknown tag", `{"DeleteAccount":{}}`, apperrors.ErrInvalidCommand},
		{"bad kind", fmt.Sprintf(`{"CreateAccount":{"id":%q,"name":"x","typ":"Cash"}}`, acc), apperrors.ErrInvalidCommand},
		{"bad id", `{"CreateAccount":{"id":"wallet","name":"x","typ":"Physical"}}`, apperrors.ErrInvalidCommand},
		{"update arity", fmt.Sprintf(`{"UpdateAccount":[%q]}`, acc), apperrors.ErrInvalidCommand},
		{"unknown op", fmt.Sprintf(`{"UpdateAccount":[%q,["Delete"]]}`, acc), apperrors.ErrInvalidCommand},
		{"bad amount", fmt.Sprintf(`{"AddTransaction":{"id":%q,"amount":"5.5 JPY","type":"MovePhys"}}`, NewTransactionID()), apperrors.ErrParse},
		{"bad slot", fmt.Sprintf(`{"AddTransaction":{"id":%q,"amount":"5 EUR","type":"MovePhys","src":"x"}}`, NewTransactionID()), apperrors.ErrInvalidID},
		{"unknown type", fmt.Sprintf(`{"AddTransaction":{"id":%q,"amount":"5 EUR","type":"Gift"}}`, NewTransactionID()), apperrors.ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload([]byte(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPostings(t *testing.T) {
	a, b := NewAccountID(), NewAccountID()
	eur := mustParse(t, "10 EUR")
	usd := mustParse(t, "11 USD")

	conv := Transaction{Kind: Convert, Amount: eur, NewAmount: &usd, Acc1: a, Acc2: b}
	ps := conv.Postings()
	require.Len(t, ps, 4)
	assert.Equal(t, "-10 EUR", ps[0].Amount.String())
	assert.Equal(t, "11 USD", ps[1].Amount.String())
	assert.Equal(t, b, ps[3].Account)

	open := Transaction{Kind: Opening, Amount: eur, Acc1: a, Acc2: a}
	assert.Equal(t, []Posting{{a, eur}}, open.Postings())
	assert.Equal(t, []AccountID{a}, open.Accounts())
}
