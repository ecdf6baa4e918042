package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eightyseven/internal/crypto"
	"eightyseven/internal/resource"
)

func recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage password records",
	}
	cmd.AddCommand(recordAddCmd(), recordListCmd(), recordShowCmd(), recordDeleteCmd())
	return cmd
}

func recordAddCmd() *cobra.Command {
	var (
		storeID, title, user, pass, link, notes string
		seal                                    bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a password record to a store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seal {
				if passphrase == "" {
					return errors.New("--seal needs --passphrase")
				}
				sealed, err := crypto.Seal(passphrase, []byte(pass))
				if err != nil {
					return err
				}
				pass = sealed
			}

			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			r := resource.NewPasswordRecord(t)
			r.SetStore(storeID)
			r.SetTitle(title)
			for _, f := range []struct {
				value string
				set   func(string)
			}{
				{user, r.SetUsername},
				{pass, r.SetPassword},
				{link, r.SetLink},
				{notes, r.SetNotes},
			} {
				if f.value != "" {
					f.set(f.value)
				}
			}
			if err := r.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created record %s (%s)\n", r.ID(), title)
			return nil
		},
	}
	cmd.Flags().StringVar(&storeID, "store", "", "id of the owning password store")
	cmd.Flags().StringVar(&title, "title", "", "record title")
	cmd.Flags().StringVar(&user, "username", "", "account username")
	cmd.Flags().StringVar(&pass, "password", "", "account password")
	cmd.Flags().StringVar(&link, "url", "", "site URL")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&seal, "seal", false, "encrypt the password with --passphrase before upload")
	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func recordListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List password records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			records, err := resource.ListPasswordRecords(cmd.Context(), t)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTORE\tTITLE\tUSERNAME\tURL")
			for _, r := range records {
				store, _ := r.Store()
				title, _ := r.Title()
				user, _ := r.Username()
				link, _ := r.Link()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID(), store, title, user, link)
			}
			return tw.Flush()
		},
	}
}

func recordShowCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print one password record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			r, err := resource.FetchPasswordRecord(cmd.Context(), t, args[0])
			if err != nil {
				return err
			}

			pass, err := r.Password()
			switch {
			case errors.Is(err, resource.ErrFieldNotFound):
				pass = ""
			case err != nil:
				return err
			case !reveal:
				pass = "********"
			case crypto.IsSealed(pass):
				if passphrase == "" {
					return errors.New("sealed password: --reveal needs --passphrase")
				}
				plain, err := crypto.Open(passphrase, pass)
				if err != nil {
					return err
				}
				pass = string(plain)
				crypto.Wipe(plain)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:       %s\n", r.ID())
			for _, f := range []struct {
				label string
				get   func() (string, error)
			}{
				{"store", r.Store},
				{"title", r.Title},
				{"username", r.Username},
				{"url", r.Link},
				{"notes", r.Notes},
			} {
				v, _ := f.get()
				fmt.Fprintf(out, "%-9s %s\n", f.label+":", v)
			}
			fmt.Fprintf(out, "%-9s %s\n", "password:", pass)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the password in clear, opening sealed ones with --passphrase")
	return cmd
}

func recordDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a password record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transport()
			if err != nil {
				return err
			}
			r, err := resource.FetchPasswordRecord(cmd.Context(), t, args[0])
			if err != nil {
				return err
			}
			return r.Delete(cmd.Context())
		},
	}
}
