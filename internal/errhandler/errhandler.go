package errhandler

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	apperrors "github.com/hance08/tally/internal/errors"
)

// IsInterrupt reports whether err means the user backed out of a prompt.
func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

// ExitCode maps an error to the process exit status: 1 for rejected
// commands and bad input, 2 for storage failures.
func ExitCode(err error) int {
	if apperrors.IsStorage(err) {
		return 2
	}
	return 1
}

// HandleError prints err for a terminal user and returns the exit status.
func HandleError(err error) int {
	if IsInterrupt(err) {
		pterm.Warning.Println("Operation Cancelled")
		return 0
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		pterm.Error.Println(Capitalize(err.Error()))
		if appErr.Kind == apperrors.KindStorage {
			pterm.Info.Println("The command may be retried safely; its id makes it idempotent.")
		}
		return ExitCode(err)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
