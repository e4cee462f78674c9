package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"passphrasex/internal/authtoken"
	"passphrasex/internal/domain"
	"passphrasex/internal/server"
	"passphrasex/internal/server/storage"
)

type options struct {
	addr      string
	mongoURI  string
	mongoDB   string
	tolerance time.Duration
	rate      float64
	burst     int
	proxies   []string
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "passd",
		Short:        "Remote credential store for passphrasex",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", ":3000", "listen address")
	f.StringVar(&opts.mongoURI, "mongo-uri", os.Getenv("PASSD_MONGO_URI"), "MongoDB connection string (in-memory store when empty)")
	f.StringVar(&opts.mongoDB, "mongo-db", "passphrasex", "MongoDB database name")
	f.DurationVar(&opts.tolerance, "token-tolerance", authtoken.DefaultTolerance, "accepted clock skew for bearer tokens")
	f.Float64Var(&opts.rate, "rate", 10, "requests per second per client")
	f.IntVar(&opts.burst, "burst", 20, "request burst per client")
	f.StringSliceVar(&opts.proxies, "trusted-proxy", nil, "address or CIDR of a reverse proxy whose X-Forwarded-For is trusted (repeatable)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func serve(ctx context.Context, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	proxies, err := server.ParseProxies(opts.proxies)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, opts, log)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr: opts.addr,
		Handler: server.New(store, server.Config{
			Tolerance:      opts.tolerance,
			Rate:           rate.Limit(opts.rate),
			Burst:          opts.burst,
			TrustedProxies: proxies,
			Logger:         log,
		}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("passd listening", "addr", opts.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, opts options, log *slog.Logger) (domain.RemoteStore, func(), error) {
	if opts.mongoURI == "" {
		log.Warn("no --mongo-uri given, using in-memory store")
		return storage.NewMemory(), func() {}, nil
	}
	m, err := storage.NewMongo(ctx, opts.mongoURI, opts.mongoDB)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using mongodb", "db", opts.mongoDB)
	return m, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Close(ctx); err != nil {
			log.Error("close mongodb", "error", err)
		}
	}, nil
}
