package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"passphrasex/internal/app"
)

// annotationStandalone marks commands that need no stores or services.
const annotationStandalone = "standalone"

var (
	home       string
	configPath string
	apiURL     string
	password   string
	verbose    bool

	appCtx *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return run(ctx, newRootCmd())
}

func run(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if appCtx != nil {
		err = errors.Join(err, appCtx.Close())
		appCtx = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "passphrasex",
		Short:        "Zero-knowledge password manager",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationStandalone] != "" {
				return nil
			}
			if home == "" {
				h, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = h
			}
			cfg, err := app.LoadConfig(home, configPath)
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			w, err := app.NewWire(cfg, log)
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "data dir (default $PASSPHRASEX_HOME or ~/.passphrasex)")
	pf.StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	pf.StringVar(&apiURL, "api", "", "remote store base URL (overrides config and $PASSPHRASEX_API_URL)")
	pf.StringVarP(&password, "password", "p", "", "device password (prompted when omitted)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		registerCmd(), loginCmd(), whoamiCmd(),
		addCmd(), getCmd(), editCmd(), deleteCmd(), listCmd(), syncCmd(),
		generateCmd(),
	)
	return root
}

// devicePassword returns -p, or prompts for it when stdin is a terminal.
func devicePassword(cmd *cobra.Command) (string, error) {
	if password != "" {
		return password, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("device password required (-p)")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Device password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// withSession unlocks the vault, refreshes the cache and runs fn. The
// session is locked again when the command finishes.
func withSession(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	pw, err := devicePassword(cmd)
	if err != nil {
		return err
	}
	if _, err := appCtx.Accounts.Unlock(pw); err != nil {
		return err
	}
	defer appCtx.Accounts.Lock()

	ctx := cmd.Context()
	res, err := appCtx.Credentials.Sync(ctx)
	if err != nil {
		return err
	}
	if res.Offline {
		warn(cmd.ErrOrStderr(), res.Warning)
	}
	return fn(ctx)
}

func warn(w io.Writer, err error) {
	fmt.Fprintf(w, "warning: remote store unavailable, using local cache (%v)\n", err)
}
