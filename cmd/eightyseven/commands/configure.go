package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"eightyseven/internal/app"
)

func configureCmd() *cobra.Command {
	var host, user, pass string
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store the API host and credentials for this identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if host == "" && user == "" && pass == "" {
				return errors.New("nothing to configure: pass --host, --username or --password")
			}
			settings := []struct{ key, value string }{
				{app.KeyHost, host},
				{app.KeyUsername, user},
				{app.KeyPassword, pass},
			}
			for _, s := range settings {
				if s.value == "" {
					continue
				}
				if err := appCtx.Store.Set(s.key, s.value); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved settings for %q to %s\n", appCtx.Config.Identity, appCtx.Store.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "API host, e.g. https://87.example.org")
	cmd.Flags().StringVar(&user, "username", "", "API username")
	cmd.Flags().StringVar(&pass, "password", "", "API password")
	return cmd
}
