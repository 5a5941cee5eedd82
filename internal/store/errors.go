package store

import "errors"

var (
	ErrCommandExists       = errors.New("command already in the log")
	ErrRecordExists        = errors.New("record already exists")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrLocked              = errors.New("store is locked by another process")
	ErrCorrupt             = errors.New("stored data is corrupt")
	// ErrProjectionLag means the command is durably logged but its
	// projection files were not written yet.
	ErrProjectionLag = errors.New("command committed, projections pending")
)
