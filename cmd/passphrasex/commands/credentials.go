package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"passphrasex/internal/domain"
	"passphrasex/internal/generator"
)

func addCmd() *cobra.Command {
	var generate bool
	var length int
	cmd := &cobra.Command{
		Use:   "add <site> <username> [password]",
		Short: "Store a credential",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := secretArg(args, 2, generate, length)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context) error {
				c, err := appCtx.Credentials.Add(ctx, args[0], args[1], secret)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s for %s\n", c.Username, c.Site)
				if generate {
					fmt.Fprintf(cmd.OutOrStdout(), "Password: %s\n", c.Password)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "generate a random password")
	cmd.Flags().IntVar(&length, "length", generator.DefaultLength, "generated password length")
	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <site> [username]",
		Short: "Show the credentials stored for a site",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := ""
			if len(args) == 2 {
				username = args[1]
			}
			return withSession(cmd, func(context.Context) error {
				creds, err := appCtx.Credentials.Get(args[0], username)
				if err != nil {
					return err
				}
				return printCredentials(cmd.OutOrStdout(), creds)
			})
		},
	}
}

func editCmd() *cobra.Command {
	var generate bool
	var length int
	cmd := &cobra.Command{
		Use:   "edit <site> <username> [password]",
		Short: "Change the password of a stored credential",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := secretArg(args, 2, generate, length)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context) error {
				if err := appCtx.Credentials.Edit(ctx, args[0], args[1], secret); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s for %s\n", args[1], args[0])
				if generate {
					fmt.Fprintf(cmd.OutOrStdout(), "Password: %s\n", secret)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "generate a random password")
	cmd.Flags().IntVar(&length, "length", generator.DefaultLength, "generated password length")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site> <username>",
		Short: "Remove a stored credential",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context) error {
				if err := appCtx.Credentials.Delete(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s for %s\n", args[1], args[0])
				return nil
			})
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(context.Context) error {
				creds, err := appCtx.Credentials.List()
				if err != nil {
					return err
				}
				return printCredentials(cmd.OutOrStdout(), creds)
			})
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local cache from the remote store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := devicePassword(cmd)
			if err != nil {
				return err
			}
			if _, err := appCtx.Accounts.Unlock(pw); err != nil {
				return err
			}
			defer appCtx.Accounts.Lock()

			res, err := appCtx.Credentials.Sync(cmd.Context())
			if err != nil {
				return err
			}
			if res.Offline {
				warn(cmd.ErrOrStderr(), res.Warning)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d credentials\n", res.Count)
			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:         "generate",
		Short:       "Print a random password",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationStandalone: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := generator.Generate(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", generator.DefaultLength, "password length")
	return cmd
}

// secretArg returns args[i], or a generated password when generate is set.
func secretArg(args []string, i int, generate bool, length int) (string, error) {
	switch {
	case generate && len(args) > i:
		return "", fmt.Errorf("%w: pass a password or --generate, not both", domain.ErrInvalidInput)
	case generate:
		return generator.Generate(length)
	case len(args) > i:
		return args[i], nil
	default:
		return "", fmt.Errorf("%w: password required (or --generate)", domain.ErrInvalidInput)
	}
}

func printCredentials(w io.Writer, creds []domain.Credential) error {
	if len(creds) == 0 {
		_, err := fmt.Fprintln(w, "No credentials found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SITE\tUSERNAME\tPASSWORD")
	for _, c := range creds {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Site, c.Username, c.Password)
	}
	return tw.Flush()
}
