package account

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/hance08/tally/internal/validation"
)

type updateFlags struct {
	Name    string
	Notes   string
	Enable  bool
	Disable bool
}

type UpdateCommandRunner struct {
	getApp app.Provider
	flags  *updateFlags
	cmd    *cobra.Command
}

func NewUpdateCmd(getApp app.Provider) *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:     "update <account>",
		Aliases: []string{"edit"},
		Short:   "Rename an account, edit its notes, or enable/disable it",
		Long: `Rename an account, edit its notes, or enable/disable it.
All changes given at once are applied as a single command.
Without flags an edit menu is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &UpdateCommandRunner{
				getApp: getApp,
				flags:  flags,
				cmd:    cmd,
			}
			return runner.Run(args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "New account name")
	cmd.Flags().StringVar(&flags.Notes, "notes", "", "New notes (an empty value clears them)")
	cmd.Flags().BoolVar(&flags.Enable, "enable", false, "Enable the account")
	cmd.Flags().BoolVar(&flags.Disable, "disable", false, "Disable the account")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")

	return cmd
}

func (r *UpdateCommandRunner) Run(ref string) error {
	a, err := r.getApp()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	acc, err := a.Service.Account.Resolve(ctx, ref)
	if err != nil {
		return err
	}

	f := r.cmd.Flags()
	hasFlags := f.Changed("name") || f.Changed("notes") || f.Changed("enable") || f.Changed("disable")

	var ops []model.AccountOp
	if hasFlags {
		ops, err = r.flagOps()
	} else {
		pterm.DefaultSection.Printf("Editing %s", acc.Name)
		ops, err = prompts.PromptAccountEdits(acc)
		if err == nil && len(ops) == 0 {
			pterm.Info.Println("No changes made")
			return nil
		}
	}
	if err != nil {
		return err
	}

	updated, err := a.Service.Account.UpdateAccount(ctx, acc.ID, ops...)
	if err != nil {
		return err
	}
	if err := views.RenderAccountDetail(updated); err != nil {
		return err
	}
	return views.RenderAccountSuccess(updated, "updated")
}

func (r *UpdateCommandRunner) flagOps() ([]model.AccountOp, error) {
	var ops []model.AccountOp
	if r.cmd.Flags().Changed("name") {
		if err := validation.ValidateAccountName(r.flags.Name); err != nil {
			return nil, fmt.Errorf("invalid account name: %w", err)
		}
		ops = append(ops, model.RenameOp(r.flags.Name))
	}
	if r.cmd.Flags().Changed("notes") {
		if err := validation.ValidateNotes(r.flags.Notes); err != nil {
			return nil, err
		}
		ops = append(ops, model.SetNotesOp(r.flags.Notes))
	}
	if r.flags.Enable {
		ops = append(ops, model.EnableOp())
	}
	if r.flags.Disable {
		ops = append(ops, model.DisableOp())
	}
	return ops, nil
}

// NewToggleCmd builds the enable and disable shortcuts.
func NewToggleCmd(getApp app.Provider, enable bool) *cobra.Command {
	use, short, op, verb := "disable <account>", "Disable an account", model.DisableOp(), "disabled"
	if enable {
		use, short, op, verb = "enable <account>", "Re-enable a disabled account", model.EnableOp(), "enabled"
	}

	var yes bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			acc, err := a.Service.Account.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !enable && !yes {
				ok, err := ui.Confirm(fmt.Sprintf("Disable %q? It will refuse new transactions until re-enabled", acc.Name), false)
				if err != nil {
					return err
				}
				if !ok {
					pterm.Info.Println("Nothing changed")
					return nil
				}
			}
			updated, err := a.Service.Account.UpdateAccount(cmd.Context(), acc.ID, op)
			if err != nil {
				return err
			}
			return views.RenderAccountSuccess(updated, verb)
		},
	}
	if !enable {
		cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	}
	return cmd
}
