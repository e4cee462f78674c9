package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"passphrasex/internal/crypto"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new identity and register it with the remote store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := devicePassword(cmd)
			if err != nil {
				return err
			}
			seed, id, err := appCtx.Accounts.Register(cmd.Context(), pw)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Identity created.\nFingerprint: %s\n\n", crypto.Fingerprint(id))
			fmt.Fprintln(out, "Seed phrase (write it down, it is shown only once):")
			fmt.Fprintf(out, "  %s\n", seed)
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <seed phrase...>",
		Short: "Recover an identity on this device from its seed phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := devicePassword(cmd)
			if err != nil {
				return err
			}
			id, err := appCtx.Accounts.Login(cmd.Context(), strings.Join(args, " "), pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in.\nFingerprint: %s\n", crypto.Fingerprint(id))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the local identity and vault state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := appCtx.Accounts.Status()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !st.HasVault {
				fmt.Fprintln(out, "No identity on this device. Run register or login.")
				return nil
			}
			fmt.Fprintf(out, "Fingerprint: %s\nIdentity:    %s\n", crypto.Fingerprint(st.Identity), st.Identity)
			return nil
		},
	}
}
