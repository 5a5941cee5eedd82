package errhandler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/hance08/tally/internal/errors"
)

func TestIsInterrupt(t *testing.T) {
	assert.True(t, IsInterrupt(terminal.InterruptErr))
	assert.True(t, IsInterrupt(fmt.Errorf("prompt: %w", huh.ErrUserAborted)))
	assert.False(t, IsInterrupt(errors.New("disk full")))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, ExitCode(apperrors.ErrAccountDisabled))
	assert.Equal(t, 2, ExitCode(apperrors.Wrap(apperrors.ErrStorage, errors.New("io"))))
	assert.Equal(t, 0, HandleError(huh.ErrUserAborted))
	assert.Equal(t, 1, HandleError(errors.New("plain")))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Account x", Capitalize("account x"))
	assert.Equal(t, "", Capitalize(""))
}
