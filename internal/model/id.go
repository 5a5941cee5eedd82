package model

import (
	"crypto/sha256"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/hance08/tally/internal/errors"
)

// Identifiers are 128-bit UUIDv7 values rendered as eight dash-separated
// proquints ("lusab-babad-..."). The alphabets are sorted, so lexical order of
// the text matches numeric order of the bits and ids sort by creation time.
const (
	consonants = "bdfghjklmnprstvz"
	vowels     = "aiou"

	idWords = 8
	wordLen = 5
	// IDLength is the length of every well-formed identifier.
	IDLength = idWords*wordLen + idWords - 1
)

type (
	AccountID     string
	TransactionID string
	CommandID     string
)

// NewAccountID returns a fresh time-ordered account id.
func NewAccountID() AccountID { return AccountID(newID()) }

// NewTransactionID returns a fresh time-ordered transaction id.
func NewTransactionID() TransactionID { return TransactionID(newID()) }

// NewCommandID returns a fresh time-ordered command id.
func NewCommandID() CommandID { return CommandID(newID()) }

func newID() string {
	u, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does
		u = uuid.New()
	}
	return encodeProquint(u[:])
}

// DeriveID hashes its parts into a stable identifier, used for records the
// ledger synthesises itself so replay produces the same ids.
func DeriveID(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return encodeProquint(h.Sum(nil)[:16])
}

// ParseID checks that s has the identifier shape.
func ParseID(s string) (string, error) {
	if _, ok := decodeProquint(s); !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidID, "malformed identifier "+quote(s))
	}
	return s, nil
}

func encodeProquint(b []byte) string {
	var sb strings.Builder
	sb.Grow(IDLength)
	for i := 0; i+1 < len(b); i += 2 {
		if i > 0 {
			sb.WriteByte('-')
		}
		w := uint16(b[i])<<8 | uint16(b[i+1])
		sb.WriteByte(consonants[w>>12&0xf])
		sb.WriteByte(vowels[w>>10&0x3])
		sb.WriteByte(consonants[w>>6&0xf])
		sb.WriteByte(vowels[w>>4&0x3])
		sb.WriteByte(consonants[w&0xf])
	}
	return sb.String()
}

func decodeProquint(s string) ([]byte, bool) {
	if len(s) != IDLength {
		return nil, false
	}
	out := make([]byte, 0, idWords*2)
	for i, word := range strings.Split(s, "-") {
		if i >= idWords || len(word) != wordLen {
			return nil, false
		}
		var w uint16
		for j := 0; j < wordLen; j++ {
			var idx int
			if j%2 == 0 {
				idx = strings.IndexByte(consonants, word[j])
				w = w<<4 | uint16(idx)
			} else {
				idx = strings.IndexByte(vowels, word[j])
				w = w<<2 | uint16(idx)
			}
			if idx < 0 {
				return nil, false
			}
		}
		out = append(out, byte(w>>8), byte(w))
	}
	return out, len(out) == idWords*2
}

func unmarshalID(b []byte) (string, error) { return ParseID(string(b)) }

func (id AccountID) String() string     { return string(id) }
func (id TransactionID) String() string { return string(id) }
func (id CommandID) String() string     { return string(id) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AccountID) UnmarshalText(b []byte) error {
	s, err := unmarshalID(b)
	*id = AccountID(s)
	return err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TransactionID) UnmarshalText(b []byte) error {
	s, err := unmarshalID(b)
	*id = TransactionID(s)
	return err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *CommandID) UnmarshalText(b []byte) error {
	s, err := unmarshalID(b)
	*id = CommandID(s)
	return err
}
