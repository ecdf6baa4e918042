package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eightyseven/internal/resource"
)

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage password stores",
	}
	cmd.AddCommand(storeCreateCmd(), storeListCmd(), storeRenameCmd(), storeDeleteCmd())
	return cmd
}

func storeCreateCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a password store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			s := resource.NewPasswordStore(t)
			s.SetName(args[0])
			if description != "" {
				s.SetDescription(description)
			}
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created store %s (%s)\n", s.ID(), args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	return cmd
}

func storeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List password stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			stores, err := resource.ListPasswordStores(cmd.Context(), t)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, s := range stores {
				name, _ := s.Name()
				desc, _ := s.Description()
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID(), name, desc)
			}
			return tw.Flush()
		},
	}
}

func storeRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a password store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			s, err := resource.FetchPasswordStore(cmd.Context(), t, args[0])
			if err != nil {
				return err
			}
			s.SetName(args[1])
			return s.Save(cmd.Context(), "name")
		},
	}
}

func storeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a password store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			s, err := resource.FetchPasswordStore(cmd.Context(), t, args[0])
			if err != nil {
				return err
			}
			return s.Delete(cmd.Context())
		},
	}
}
