package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hance08/tally/cmd/account"
	"github.com/hance08/tally/cmd/transaction"
	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/errhandler"
	"github.com/hance08/tally/internal/logger"
)

// rootState is filled in by the persistent pre-run hook, after flags are parsed.
type rootState struct {
	cfgFile  string
	logLevel string
	plain    bool

	cfg     *config.Config
	getApp  app.Provider
	cleanup func()
}

func (s *rootState) App() (*app.App, error) {
	if s.getApp == nil {
		return nil, errors.New("configuration not loaded")
	}
	return s.getApp()
}

func (s *rootState) close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	state := &rootState{}
	rootCmd := NewRootCmd(state)
	err := rootCmd.ExecuteContext(context.Background())
	state.close()
	logger.Sync()

	if err != nil {
		os.Exit(errhandler.HandleError(err))
	}
}

func NewRootCmd(state *rootState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "tally is a personal ledger of physical accounts and virtual budgets",
		Long: `tally records where your money is (physical accounts) and what it is for
(virtual budgets). Every change is an idempotent command appended to a log;
balances are rebuilt from that log.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if state.plain {
				pterm.DisableStyling()
			}
			cfg, err := initConfig(state.cfgFile, cmd.Name() == "init")
			if err != nil {
				return err
			}
			if state.logLevel != "" {
				cfg.Log.Level = state.logLevel
			}
			logger.Init(cfg.Log.Env, cfg.Log.Level)
			state.cfg = cfg
			state.getApp, state.cleanup = app.Lazy(cmd.Context(), cfg)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&state.cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVar(&state.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&state.plain, "plain", false, "disable colors and styling")

	rootCmd.AddCommand(NewInitCmd(state))
	rootCmd.AddCommand(NewInfoCmd(state))
	rootCmd.AddCommand(account.NewAccountCmd(state.App))
	rootCmd.AddCommand(transaction.NewTransactionCmd(state.App))
	rootCmd.AddCommand(transaction.NewAddCmd(state.App))
	rootCmd.AddCommand(NewApplyCmd(state))
	rootCmd.AddCommand(NewLogCmd(state))
	rootCmd.AddCommand(NewVerifyCmd(state))
	rootCmd.AddCommand(NewServeCmd(state))

	return rootCmd
}

// initConfig loads the config file, .env and TALLY_ variables. An explicit
// config file may be missing only when allowMissing is set, which init uses to
// create it.
func initConfig(cfgFile string, allowMissing bool) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.DataDir()
		if err != nil {
			return nil, fmt.Errorf("error getting app dir: %w", err)
		}

		v.AddConfigPath(appDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	config.BindEnv(v) // allow using environment variables to override

	if err := v.ReadInConfig(); err != nil {

		if cfgFile != "" && !(allowMissing && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if cfgFile == "" && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	cfg.Storage.Path, err = expandPath(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
