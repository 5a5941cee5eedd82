package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/ledger"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// writerWeight is the full weight of the ledger lock. A writer takes all of
// it, a reader takes one unit, so readers share and the writer is exclusive.
const writerWeight = 1 << 20

type Options struct {
	Policy ledger.Policy
	// LockTimeout bounds how long Apply and the queries wait for the lock.
	// Zero waits as long as the caller's context allows.
	LockTimeout time.Duration
	// RepairOnOpen rebuilds persisted projections that disagree with the log
	// instead of refusing to open.
	RepairOnOpen bool
}

// Service is the coordinator: it owns the projection and the backend and
// runs one apply at a time while queries proceed concurrently.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService

	backend store.Backend
	proj    *ledger.Projection
	lock    *semaphore.Weighted
	opts    Options
	log     *zap.SugaredLogger
}

// Open replays the command log of backend and checks the persisted
// projections against the result.
func Open(ctx context.Context, backend store.Backend, opts Options, log *zap.SugaredLogger) (*Service, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Service{
		backend: backend,
		lock:    semaphore.NewWeighted(writerWeight),
		opts:    opts,
		log:     log,
	}
	s.Account = NewAccountService(s)
	s.Transaction = NewTransactionService(s)

	cmds, err := backend.LoadCommands(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	proj, err := ledger.Replay(cmds, opts.Policy)
	if err != nil {
		return nil, err
	}
	s.proj = proj

	if err := s.reconcile(ctx); err != nil {
		return nil, err
	}
	log.Infow("ledger opened",
		"commands", len(cmds),
		"accounts", len(proj.Accounts()),
		"transactions", len(proj.Transactions()),
	)
	return s, nil
}

// reconcile compares persisted projections with the replayed state.
func (s *Service) reconcile(ctx context.Context) error {
	replayed := s.proj.Snapshot()
	diff, err := s.persistedDiff(ctx, replayed)
	if err != nil {
		return err
	}
	if diff == "" {
		return nil
	}
	if !s.opts.RepairOnOpen {
		return apperrors.WithMessage(apperrors.ErrProjectionDiverged,
			fmt.Sprintf("persisted projections diverge from the command log (%s)", diff))
	}

	s.log.Warnw("rebuilding projections from the command log", "diff", diff)
	accounts := make([]model.Account, len(replayed.Accounts))
	for i, v := range replayed.Accounts {
		accounts[i] = v.Account
	}
	if err := s.backend.Rebuild(ctx, accounts, replayed.Transactions); err != nil {
		return storageError(err)
	}
	return nil
}

func (s *Service) persistedDiff(ctx context.Context, replayed ledger.Snapshot) (string, error) {
	accounts, err := s.backend.LoadAccounts(ctx)
	if err != nil {
		return "", storageError(err)
	}
	txs, err := s.backend.LoadTransactions(ctx)
	if err != nil {
		return "", storageError(err)
	}
	persisted, err := ledger.BuildSnapshot(accounts, txs)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr.Message, nil
		}
		return "", err
	}
	return replayed.Diff(persisted), nil
}

// Apply validates and commits one command. A command id that is already in
// the log returns the original result. Validation failures come back as
// AppErrors of kind validation, backend failures as kind storage.
func (s *Service) Apply(ctx context.Context, cmd model.Command) (ledger.Result, error) {
	if err := s.acquire(ctx, writerWeight); err != nil {
		return ledger.Result{}, err
	}
	defer s.lock.Release(writerWeight)

	if r, ok := s.proj.Lookup(cmd.ID); ok {
		s.log.Debugw("duplicate command", "id", cmd.ID)
		return r, nil
	}

	plan, err := s.proj.Prepare(cmd)
	if err != nil {
		s.log.Infow("command rejected", "id", cmd.ID, "error", err)
		return ledger.Result{}, err
	}

	// past this point the command runs to completion
	if err := s.backend.Commit(context.WithoutCancel(ctx), plan.Commit()); err != nil {
		if !errors.Is(err, store.ErrProjectionLag) {
			s.log.Errorw("commit failed", "id", cmd.ID, "error", err)
			return ledger.Result{}, storageError(err)
		}
		s.log.Warnw("command logged, projections will be rolled forward on next open", "id", cmd.ID, "error", err)
	}

	r, err := s.proj.Commit(plan)
	if err != nil {
		return ledger.Result{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.log.Infow("command applied", "id", cmd.ID, "kind", r.Kind, "version", s.proj.Version())
	return r, nil
}

// ListAccounts lists every account with balances, sorted by id.
func (s *Service) ListAccounts(ctx context.Context) ([]model.AccountView, error) {
	if err := s.acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.lock.Release(1)
	return s.proj.Accounts(), nil
}

// GetAccount returns one account with balances.
func (s *Service) GetAccount(ctx context.Context, id model.AccountID) (model.AccountView, error) {
	if err := s.acquire(ctx, 1); err != nil {
		return model.AccountView{}, err
	}
	defer s.lock.Release(1)
	return s.proj.Account(id)
}

// ListTransactions lists transactions sorted by id, or, given an account id,
// that account's transactions in application order.
func (s *Service) ListTransactions(ctx context.Context, account model.AccountID) ([]model.Transaction, error) {
	if err := s.acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.lock.Release(1)
	if account == "" {
		return s.proj.Transactions(), nil
	}
	return s.proj.AccountTransactions(account)
}

// Commands returns the command log in order.
func (s *Service) Commands(ctx context.Context) ([]model.Command, error) {
	if err := s.acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.lock.Release(1)
	cmds, err := s.backend.LoadCommands(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return cmds, nil
}

// ContainsCommand reports whether id is in the durable log. A caller that
// got a storage error uses it to learn whether its command went through.
func (s *Service) ContainsCommand(ctx context.Context, id model.CommandID) (bool, error) {
	if err := s.acquire(ctx, 1); err != nil {
		return false, err
	}
	defer s.lock.Release(1)
	ok, err := s.backend.ContainsCommand(ctx, id)
	if err != nil {
		return false, storageError(err)
	}
	return ok, nil
}

// Snapshot returns a consistent copy of the whole projection.
func (s *Service) Snapshot(ctx context.Context) (ledger.Snapshot, error) {
	if err := s.acquire(ctx, 1); err != nil {
		return ledger.Snapshot{}, err
	}
	defer s.lock.Release(1)
	return s.proj.Snapshot(), nil
}

// Report summarises a successful Verify.
type Report struct {
	Commands     int    `json:"commands"`
	Accounts     int    `json:"accounts"`
	Transactions int    `json:"transactions"`
	Digest       string `json:"digest"`
}

// Verify checks the cached balances against the transaction history, a
// fresh replay of the log against the live projection, and the persisted
// projections against both.
func (s *Service) Verify(ctx context.Context) (Report, error) {
	if err := s.acquire(ctx, 1); err != nil {
		return Report{}, err
	}
	defer s.lock.Release(1)

	if err := s.proj.Verify(); err != nil {
		return Report{}, err
	}
	live := s.proj.Snapshot()

	cmds, err := s.backend.LoadCommands(ctx)
	if err != nil {
		return Report{}, storageError(err)
	}
	replayed, err := ledger.Replay(cmds, s.opts.Policy)
	if err != nil {
		return Report{}, err
	}
	if diff := live.Diff(replayed.Snapshot()); diff != "" {
		return Report{}, apperrors.WithMessage(apperrors.ErrProjectionDiverged, "replay differs from live state: "+diff)
	}
	diff, err := s.persistedDiff(ctx, live)
	if err != nil {
		return Report{}, err
	}
	if diff != "" {
		return Report{}, apperrors.WithMessage(apperrors.ErrProjectionDiverged, "persisted projections differ: "+diff)
	}
	return Report{
		Commands:     len(cmds),
		Accounts:     len(live.Accounts),
		Transactions: len(live.Transactions),
		Digest:       live.Digest(),
	}, nil
}

// Close waits for in-flight work and closes the backend.
func (s *Service) Close() error {
	if err := s.lock.Acquire(context.Background(), writerWeight); err != nil {
		return err
	}
	defer s.lock.Release(writerWeight)
	return s.backend.Close()
}

func (s *Service) acquire(ctx context.Context, weight int64) error {
	if s.opts.LockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LockTimeout)
		defer cancel()
	}
	if err := s.lock.Acquire(ctx, weight); err != nil {
		return apperrors.Wrap(apperrors.ErrLockTimeout, err)
	}
	return nil
}

func storageError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, store.ErrLocked) {
		return apperrors.Wrap(apperrors.ErrStoreLocked, err)
	}
	return apperrors.Wrap(apperrors.ErrStorage, err)
}
