package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/hance08/tally/internal/model"
)

// FileStore keeps the ledger as a directory tree:
//
//	log/<seq>.json             one record per command, the commit point
//	accounts/<id>.toml         account projection
//	transactions/<id>.toml     transaction projection
//	HEAD                       last log sequence reflected in the projections
//	tally.lock                 held by the owning process
//
// A commit is durable once its log record has been renamed into place.
// Projection files are written afterwards; anything between HEAD and the
// end of the log is rolled forward the next time the store is opened or
// committed to.
type FileStore struct {
	fs   afero.Fs
	root string

	mu       sync.Mutex
	commands map[model.CommandID]struct{}
	nextSeq  uint64
	head     uint64
	closed   bool
}

var _ Backend = (*FileStore)(nil)

const (
	logDir          = "log"
	accountsDir     = "accounts"
	transactionsDir = "transactions"
	headFile        = "HEAD"
	lockFile        = "tally.lock"
	tmpSuffix       = ".tmp"
)

// commitRecord is the content of one log file.
type commitRecord struct {
	Seq          uint64              `json:"seq"`
	Command      model.Command       `json:"command"`
	Accounts     []model.Account     `json:"accounts"`
	Transactions []model.Transaction `json:"transactions"`
}

// OpenFileStore opens or creates a file-tree store on the local disk.
func OpenFileStore(root string) (*FileStore, error) {
	return NewFileStore(afero.NewOsFs(), root)
}

// NewFileStore opens or creates a file-tree store on fs. It takes the lock
// file, discards temp files left by an interrupted write and rolls forward
// committed records that were not yet materialised.
func NewFileStore(fs afero.Fs, root string) (*FileStore, error) {
	s := &FileStore{fs: fs, root: root, commands: make(map[model.CommandID]struct{})}
	for _, dir := range []string{"", logDir, accountsDir, transactionsDir} {
		if err := fs.MkdirAll(s.path(dir), 0o755); err != nil {
			return nil, fmt.Errorf("can not create store directory %s: %w", s.path(dir), err)
		}
	}
	if err := s.lock(); err != nil {
		return nil, err
	}
	if err := s.open(); err != nil {
		_ = s.unlock()
		return nil, err
	}
	return s, nil
}

func (s *FileStore) open() error {
	for _, dir := range []string{"", logDir, accountsDir, transactionsDir} {
		if err := s.removeTemps(dir); err != nil {
			return err
		}
	}

	head, err := s.readHead()
	if err != nil {
		return err
	}
	s.head = head

	records, err := s.readLog()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if rec.Seq != uint64(i+1) {
			return fmt.Errorf("log record %d found at position %d: %w", rec.Seq, i+1, ErrCorrupt)
		}
		s.commands[rec.Command.ID] = struct{}{}
	}
	s.nextSeq = uint64(len(records)) + 1
	if s.head >= s.nextSeq {
		return fmt.Errorf("HEAD %d is past the end of the log: %w", s.head, ErrCorrupt)
	}
	return s.rollForward(records)
}

func (s *FileStore) path(parts ...string) string {
	return path.Join(append([]string{s.root}, parts...)...)
}

func logName(seq uint64) string {
	return fmt.Sprintf("%020d.json", seq)
}

func (s *FileStore) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	var out []model.Account
	err := s.eachRecord(accountsDir, func(data []byte) error {
		var r accountRecord
		if err := toml.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		acc, err := r.toModel()
		if err != nil {
			return err
		}
		out = append(out, acc)
		return nil
	})
	return out, err
}

func (s *FileStore) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := s.eachRecord(transactionsDir, func(data []byte) error {
		var r transactionRecord
		if err := toml.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		tx, err := r.toModel()
		if err != nil {
			return err
		}
		out = append(out, tx)
		return nil
	})
	return out, err
}

func (s *FileStore) LoadCommands(ctx context.Context) ([]model.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.readLog()
	if err != nil {
		return nil, err
	}
	cmds := make([]model.Command, len(records))
	for i, rec := range records {
		cmds[i] = rec.Command
	}
	return cmds, nil
}

func (s *FileStore) ContainsCommand(ctx context.Context, id model.CommandID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.commands[id]
	return ok, nil
}

func (s *FileStore) Commit(ctx context.Context, c Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("file store is closed")
	}
	if _, ok := s.commands[c.Command.ID]; ok {
		return fmt.Errorf("command %s: %w", c.Command.ID, ErrCommandExists)
	}

	rec := commitRecord{
		Seq:          s.nextSeq,
		Command:      c.Command,
		Accounts:     c.Accounts,
		Transactions: c.Transactions,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode log record: %w", err)
	}
	if err := s.writeAtomic(s.path(logDir, logName(rec.Seq)), data); err != nil {
		return fmt.Errorf("failed to write log record %d: %w", rec.Seq, err)
	}
	s.commands[c.Command.ID] = struct{}{}
	s.nextSeq++

	// Durable from here on. A failure below leaves HEAD behind and the
	// projections are rolled forward on the next open.
	if err := s.materialize(rec); err != nil {
		return fmt.Errorf("record %d: %w: %v", rec.Seq, ErrProjectionLag, err)
	}
	if err := s.writeHead(rec.Seq); err != nil {
		return fmt.Errorf("record %d: %w: %v", rec.Seq, ErrProjectionLag, err)
	}
	return nil
}

func (s *FileStore) Rebuild(ctx context.Context, accounts []model.Account, txs []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dir := range []string{accountsDir, transactionsDir} {
		if err := s.fs.RemoveAll(s.path(dir)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", dir, err)
		}
		if err := s.fs.MkdirAll(s.path(dir), 0o755); err != nil {
			return fmt.Errorf("failed to recreate %s: %w", dir, err)
		}
	}
	for _, acc := range accounts {
		if err := s.writeAccount(acc); err != nil {
			return err
		}
	}
	for _, tx := range txs {
		if err := s.writeTransaction(tx); err != nil {
			return err
		}
	}
	return s.writeHead(s.nextSeq - 1)
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.unlock()
}

// rollForward materialises every record past HEAD.
func (s *FileStore) rollForward(records []commitRecord) error {
	for _, rec := range records {
		if rec.Seq <= s.head {
			continue
		}
		if err := s.materialize(rec); err != nil {
			return fmt.Errorf("failed to roll forward record %d: %w", rec.Seq, err)
		}
		if err := s.writeHead(rec.Seq); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) materialize(rec commitRecord) error {
	if s.head+1 != rec.Seq {
		// an earlier record is still pending
		records, err := s.readLog()
		if err != nil {
			return err
		}
		return s.rollForward(records)
	}
	for _, acc := range rec.Accounts {
		if err := s.writeAccount(acc); err != nil {
			return err
		}
	}
	for _, tx := range rec.Transactions {
		if err := s.writeTransaction(tx); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) writeAccount(acc model.Account) error {
	data, err := toml.Marshal(newAccountRecord(acc))
	if err != nil {
		return fmt.Errorf("failed to encode account %s: %w", acc.ID, err)
	}
	return s.writeAtomic(s.path(accountsDir, string(acc.ID)+".toml"), data)
}

func (s *FileStore) writeTransaction(tx model.Transaction) error {
	data, err := toml.Marshal(newTransactionRecord(tx))
	if err != nil {
		return fmt.Errorf("failed to encode transaction %s: %w", tx.ID, err)
	}
	return s.writeAtomic(s.path(transactionsDir, string(tx.ID)+".toml"), data)
}

func (s *FileStore) readHead() (uint64, error) {
	data, err := afero.ReadFile(s.fs, s.path(headFile))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read HEAD: %w", err)
	}
	head, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("HEAD %q: %w", data, ErrCorrupt)
	}
	return head, nil
}

func (s *FileStore) writeHead(seq uint64) error {
	if err := s.writeAtomic(s.path(headFile), []byte(strconv.FormatUint(seq, 10)+"\n")); err != nil {
		return fmt.Errorf("failed to write HEAD: %w", err)
	}
	s.head = seq
	return nil
}

func (s *FileStore) readLog() ([]commitRecord, error) {
	names, err := s.listFiles(logDir, ".json")
	if err != nil {
		return nil, err
	}
	records := make([]commitRecord, 0, len(names))
	for _, name := range names {
		data, err := afero.ReadFile(s.fs, s.path(logDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read log record %s: %w", name, err)
		}
		var rec commitRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("log record %s: %w: %v", name, ErrCorrupt, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *FileStore) eachRecord(dir string, fn func([]byte) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	names, err := s.listFiles(dir, ".toml")
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := afero.ReadFile(s.fs, s.path(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s/%s: %w", dir, name, err)
		}
		if err := fn(data); err != nil {
			return fmt.Errorf("%s/%s: %w", dir, name, err)
		}
	}
	return nil
}

// listFiles returns the names in dir with the given suffix, sorted.
func (s *FileStore) listFiles(dir, suffix string) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), suffix) {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) removeTemps(dir string) error {
	infos, err := afero.ReadDir(s.fs, s.path(dir))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, info := range infos {
		if strings.HasSuffix(info.Name(), tmpSuffix) {
			if err := s.fs.Remove(s.path(dir, info.Name())); err != nil {
				return fmt.Errorf("failed to remove stale %s: %w", info.Name(), err)
			}
		}
	}
	return nil
}

// writeAtomic writes data next to name and renames it into place.
func (s *FileStore) writeAtomic(name string, data []byte) error {
	tmp := name + tmpSuffix
	f, err := s.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return s.fs.Rename(tmp, name)
}
