package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hance08/tally/internal/model"
)

func TestNames(t *testing.T) {
	wallet := model.AccountView{Account: model.Account{ID: model.NewAccountID(), Name: "Wallet"}}
	names := NamesOf([]model.AccountView{wallet})

	assert.Equal(t, "Wallet", names.Name(wallet.ID))
	unknown := model.AccountID("lusab-babad-gutih-tugad-lusab-babad-gutih-tugad")
	assert.Equal(t, "…gutih-tugad", names.Name(unknown))
}

func TestCounterparty(t *testing.T) {
	names := Names{}
	shop := "Bakery"
	assert.Equal(t, "to Bakery", names.Counterparty(model.Transaction{Kind: model.Paid, ExternalParty: &shop}))
	assert.Equal(t, "from Bakery", names.Counterparty(model.Transaction{Kind: model.Received, ExternalParty: &shop}))
	assert.Equal(t, "opening balance", names.Counterparty(model.Transaction{Kind: model.Opening}))
	assert.Equal(t, "", names.Counterparty(model.Transaction{Kind: model.MovePhys}))
}

func TestSlotLabels(t *testing.T) {
	for _, kind := range model.TransactionKinds {
		a, b := SlotLabels(kind)
		assert.NotEmpty(t, a, kind)
		assert.NotEmpty(t, b, kind)
		assert.NotEmpty(t, KindLabel(kind))
	}
	a, b := SlotLabels(model.MoveVirt)
	assert.Equal(t, "source budget", a)
	assert.Equal(t, "destination budget", b)
}
