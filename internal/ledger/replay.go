package ledger

import (
	"fmt"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
)

// Replay rebuilds a projection from the command log. Admission policies are
// not re-evaluated: every logged command was accepted once and must be
// accepted again, so any rejection here means the log is corrupt.
func Replay(commands []model.Command, policy Policy) (*Projection, error) {
	p := NewProjection(replayPolicy())
	for i, cmd := range commands {
		if _, ok := p.results[cmd.ID]; ok {
			return nil, apperrors.Wrap(apperrors.ErrStorage,
				fmt.Errorf("command %s appears twice in the log (position %d)", cmd.ID, i))
		}
		if _, err := p.Apply(cmd); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage,
				fmt.Errorf("replay of command %s at position %d: %w", cmd.ID, i, err))
		}
	}
	p.SetPolicy(policy)
	return p, nil
}
