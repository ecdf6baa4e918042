package commands

import (
	"context"

	"github.com/spf13/cobra"

	"eightyseven/internal/app"
)

var (
	identity   string
	configFile string
	passphrase string
	verbose    bool
	appCtx     *app.Wire
)

// Execute runs the CLI against os.Args.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "eightyseven",
		Short:        "Command-line client for the EightySeven password manager",
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ParseEnv()
			if err != nil {
				return err
			}
			if identity != "" {
				cfg.Identity = identity
			}
			if configFile != "" {
				cfg.ConfigFile = configFile
			}

			logger := app.NewLogger(cmd.ErrOrStderr(), verbose || cfg.Debug)
			appCtx, err = app.NewWire(cfg, app.Deps{Logger: logger})
			return err
		},
	}

	root.PersistentFlags().StringVar(&identity, "identity", "", "identity whose settings to use (default $EIGHTYSEVEN_IDENTITY or \"default\")")
	root.PersistentFlags().StringVar(&configFile, "config", "", "settings file (default $XDG_CONFIG_HOME/eightyseven/conf.json)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase used to seal and reveal record passwords")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log HTTP requests")

	root.AddCommand(configureCmd(), configCmd(), storeCmd(), recordCmd())
	return root
}
