package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// lock creates the lock file exclusively and records the owner pid in it.
func (s *FileStore) lock() error {
	f, err := s.fs.OpenFile(s.path(lockFile), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			owner, _ := s.lockOwner()
			return fmt.Errorf("%s held by pid %d: %w", s.path(lockFile), owner, ErrLocked)
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	if _, err := f.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return f.Close()
}

func (s *FileStore) unlock() error {
	if err := s.fs.Remove(s.path(lockFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to release lock file: %w", err)
	}
	return nil
}

// lockOwner reads the pid stored in the lock file.
func (s *FileStore) lockOwner() (int, error) {
	data, err := afero.ReadFile(s.fs, s.path(lockFile))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}
