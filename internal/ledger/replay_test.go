package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
)

func buildHistory(t *testing.T) *fixture {
	f := newFixture(t, Policy{AllowDisableWithBalance: true, AllowOverdraft: true})
	cash := f.create("Cash", model.Physical, model.Balances{model.EUR: amt(t, "20 EUR")})
	trip := f.create("Trip", model.Virtual, nil)

	f.mustApply(received(t, f.phys, f.virt, "1000 EUR"))
	f.mustApply(move(t, model.MovePhys, f.phys, cash, "120.40 EUR"))
	f.mustApply(move(t, model.MoveVirt, f.virt, trip, "300 EUR"))
	conv := move(t, model.Convert, cash, trip, "100 EUR")
	conv.Transaction.NewAmount = ptr(amt(t, "15000 JPY"))
	f.mustApply(conv)
	paid := received(t, cash, trip, "2500 JPY")
	paid.Transaction.Kind = model.Paid
	f.mustApply(paid)
	f.mustApply(model.UpdateAccount{ID: trip, Ops: []model.AccountOp{model.SetNotesOp("Japan"), model.DisableOp()}})
	return f
}

func TestReplayIsDeterministic(t *testing.T) {
	f := buildHistory(t)
	want := f.p.Snapshot()

	replayed, err := Replay(f.log, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, want.Digest(), replayed.Snapshot().Digest())
	assert.Empty(t, want.Diff(replayed.Snapshot()))
	assert.Equal(t, f.p.Version(), replayed.Version())
	require.NoError(t, replayed.Verify())

	for _, cmd := range f.log {
		orig, ok := f.p.Lookup(cmd.ID)
		require.True(t, ok)
		again, ok := replayed.Lookup(cmd.ID)
		require.True(t, ok)
		assert.Equal(t, orig, again)
	}
}

func TestReplayIgnoresAdmissionPolicy(t *testing.T) {
	f := buildHistory(t)

	// the log disabled a funded account, which DefaultPolicy would reject
	p, err := Replay(f.log, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p.Policy())
}

func TestBuildSnapshotMatchesProjection(t *testing.T) {
	f := buildHistory(t)
	want := f.p.Snapshot()

	var accounts []model.Account
	for _, v := range want.Accounts {
		accounts = append(accounts, v.Account)
	}
	got, err := BuildSnapshot(accounts, f.p.Transactions())
	require.NoError(t, err)
	assert.Equal(t, want.Digest(), got.Digest())

	_, err = BuildSnapshot(accounts[:1], f.p.Transactions())
	require.ErrorIs(t, err, apperrors.ErrProjectionDiverged)
}

func TestReplayDetectsCorruptLog(t *testing.T) {
	f := buildHistory(t)

	dup := append(append([]model.Command(nil), f.log...), f.log[0])
	_, err := Replay(dup, DefaultPolicy())
	require.ErrorIs(t, err, apperrors.ErrStorage)

	// a transaction before the accounts it references
	reordered := append([]model.Command{f.log[len(f.log)-2]}, f.log...)
	_, err = Replay(reordered, DefaultPolicy())
	require.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestSnapshotDigestChangesWithState(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	before := f.p.Snapshot()
	f.mustApply(received(t, f.phys, f.virt, "1 EUR"))
	after := f.p.Snapshot()

	assert.NotEqual(t, before.Digest(), after.Digest())
	assert.NotEmpty(t, before.Diff(after))
}

func TestEmptySnapshotsAgree(t *testing.T) {
	replayed := NewProjection(DefaultPolicy()).Snapshot()
	persisted, err := BuildSnapshot(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, replayed.Digest(), persisted.Digest())
	assert.Empty(t, replayed.Diff(persisted))
}
