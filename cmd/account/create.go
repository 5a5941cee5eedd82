package account

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/hance08/tally/internal/validation"
)

type createFlags struct {
	Name     string
	Type     string
	Notes    string
	Opening  []string
	Disabled bool
}

type CreateCommandRunner struct {
	getApp app.Provider
	flags  *createFlags
	cmd    *cobra.Command
}

func NewCreateCmd(getApp app.Provider) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account.",
		Long: `Create a new physical account or virtual budget.

Opening balances are recorded as opening transactions, one per currency.
Without flags the command asks interactively.

Example: tally account create -n Bank -t physical --opening "1200 EUR" --opening "50 USD"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &CreateCommandRunner{
				getApp: getApp,
				flags:  flags,
				cmd:    cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Account name")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Account type: physical or virtual")
	cmd.Flags().StringVar(&flags.Notes, "notes", "", "Free-text notes (optional)")
	cmd.Flags().StringArrayVarP(&flags.Opening, "opening", "o", nil, "Opening balance such as \"100 EUR\"; repeat for more currencies")
	cmd.Flags().BoolVar(&flags.Disabled, "disabled", false, "Create the account disabled")

	return cmd
}

func (r *CreateCommandRunner) Run() error {
	a, err := r.getApp()
	if err != nil {
		return err
	}

	hasFlags := r.cmd.Flags().Changed("name") || r.cmd.Flags().Changed("type")

	var in service.CreateAccountInput
	if hasFlags {
		in, err = r.flagsMode(a.Config.Defaults.Currency)
	} else {
		in, err = r.interactiveMode(a.Config.Defaults.Currency)
	}
	if err != nil {
		return err
	}

	acc, err := a.Service.Account.CreateAccount(r.cmd.Context(), in)
	if err != nil {
		return err
	}

	if err := views.RenderAccountDetail(acc); err != nil {
		return err
	}
	return views.RenderAccountSuccess(acc, "created")
}

func (r *CreateCommandRunner) flagsMode(defaultCurrency string) (service.CreateAccountInput, error) {
	if r.flags.Name == "" || r.flags.Type == "" {
		return service.CreateAccountInput{}, fmt.Errorf("when using flags, --name and --type are both required")
	}
	if err := validation.ValidateAccountName(r.flags.Name); err != nil {
		return service.CreateAccountInput{}, fmt.Errorf("invalid account name: %w", err)
	}
	kind, err := model.ParseAccountKind(r.flags.Type)
	if err != nil {
		return service.CreateAccountInput{}, err
	}

	opening := model.Balances{}
	for _, text := range r.flags.Opening {
		amount, err := prompts.ParseAmount(text, defaultCurrency)
		if err != nil {
			return service.CreateAccountInput{}, err
		}
		opening.Add(amount)
	}

	return service.CreateAccountInput{
		Name:     r.flags.Name,
		Notes:    r.flags.Notes,
		Kind:     kind,
		Opening:  opening,
		Disabled: r.flags.Disabled,
	}, nil
}

func (r *CreateCommandRunner) interactiveMode(defaultCurrency string) (service.CreateAccountInput, error) {
	pterm.DefaultSection.Println("New Account")

	name, err := prompts.PromptAccountName("")
	if err != nil {
		return service.CreateAccountInput{}, err
	}
	kind, err := prompts.PromptAccountKind()
	if err != nil {
		return service.CreateAccountInput{}, err
	}
	notes, err := prompts.PromptNotes("Notes:", "")
	if err != nil {
		return service.CreateAccountInput{}, err
	}
	opening, err := prompts.PromptOpeningBalances(defaultCurrency)
	if err != nil {
		return service.CreateAccountInput{}, err
	}

	return service.CreateAccountInput{Name: name, Notes: notes, Kind: kind, Opening: opening}, nil
}
