package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/validation"
)

type initFlags struct {
	Backend  string
	Currency string
	Path     string
	Force    bool
}

type initRunner struct {
	state *rootState
	flags *initFlags
	cmd   *cobra.Command
}

func NewInitCmd(state *rootState) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the config file and an empty ledger",
		Long: `Create the config file and an empty ledger.

Without flags a short wizard asks for the storage backend and the default
currency. Examples:

  tally init
  tally init --backend files --path ~/ledger --currency USD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &initRunner{
				state: state,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Backend, "backend", "b", "", "storage backend: sqlite or files")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "default currency for amounts typed without a code")
	cmd.Flags().StringVarP(&flags.Path, "path", "p", "", "database file or ledger directory")
	cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "overwrite an existing config file")

	return cmd
}

func (r *initRunner) Run() error {
	cfg := *r.state.cfg

	hasFlags := r.cmd.Flags().Changed("backend") ||
		r.cmd.Flags().Changed("currency") ||
		r.cmd.Flags().Changed("path")

	if hasFlags {
		if r.flags.Backend != "" {
			cfg.Storage.Backend = r.flags.Backend
		}
		if r.flags.Currency != "" {
			cfg.Defaults.Currency = strings.ToUpper(r.flags.Currency)
		}
		if r.flags.Path != "" {
			p, err := expandPath(r.flags.Path)
			if err != nil {
				return err
			}
			cfg.Storage.Path = p
		}
	} else {
		backend, err := prompts.PromptBackend(cfg.Storage.Backend)
		if err != nil {
			return err
		}
		currency, err := prompts.PromptInitCurrency(cfg.Defaults.Currency)
		if err != nil {
			return err
		}
		cfg.Storage.Backend, cfg.Defaults.Currency = backend, currency
	}

	if err := validation.ValidateCurrencyCode(cfg.Defaults.Currency); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	configPath, err := r.writeConfig(cfg.Storage.Backend, cfg.Storage.Path, cfg.Defaults.Currency)
	if err != nil {
		return err
	}

	storagePath, err := app.StoragePath(cfg.Storage)
	if err != nil {
		return err
	}
	a, cleanup, err := app.NewApp(r.cmd.Context(), &cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	seeded, err := a.SeedDefaultAccount(r.cmd.Context())
	if err != nil {
		return err
	}
	accounts, err := a.Service.ListAccounts(r.cmd.Context())
	if err != nil {
		return err
	}

	pterm.Success.Printf("Configuration saved to %s\n", configPath)
	pterm.Success.Printf("Ledger ready at %s (%s, %d accounts)\n", storagePath, cfg.Storage.Backend, len(accounts))
	if seeded {
		pterm.Info.Printf("Created %q for transactions that need no dedicated budget\n", constants.DefaultVirtualName)
		pterm.Info.Println("Next: create a physical account with `tally account create`")
	}
	return nil
}

// writeConfig stores the chosen settings. An existing file is kept unless
// --force is given.
func (r *initRunner) writeConfig(backend, path, currency string) (string, error) {
	configPath := r.state.cfgFile
	if configPath == "" {
		appDir, err := app.DataDir()
		if err != nil {
			return "", err
		}
		configPath = filepath.Join(appDir, "config.yaml")
	}

	if _, err := os.Stat(configPath); err == nil && !r.flags.Force {
		pterm.Warning.Printf("%s already exists, keeping it (use --force to overwrite)\n", configPath)
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("storage.backend", backend)
	v.Set("defaults.currency", currency)
	if path != "" {
		v.Set("storage.path", path)
	}
	if err := v.WriteConfigAs(configPath); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configPath, nil
}
