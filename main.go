package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/auth"
	"github.com/jeung1234/community/cliparse"
	"github.com/jeung1234/community/db"
	"github.com/jeung1234/community/guard"
	"github.com/jeung1234/community/handlers"
	"github.com/jeung1234/community/router"
	"github.com/jeung1234/community/view"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Parse configuration
	cfg, rest, err := cliparse.ParseFlags(args)
	if errors.Is(err, cliparse.ErrBadFlags) {
		return 2
	}
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return 1
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// Ctrl-C cancels in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the local store
	var (
		votes guard.Guard
		store auth.Store
	)
	switch cfg.StoreType {
	case cliparse.StoreRedis:
		client, err := guard.NewRedisClient(ctx, cfg.StoreURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			return 1
		}
		defer client.Close()
		votes = guard.NewRedisGuard(client)
		store = auth.NewRedisStore(client)
	default:
		conn, err := db.Open(cfg.StoreType, cfg.StoreURL)
		if err != nil {
			slog.Error("store open failed", "store", cfg.StoreType, "error", err)
			return 1
		}
		defer conn.Close()
		votes = guard.NewSQLGuard(conn)
		store = auth.NewSQLStore(conn)
	}
	slog.Info("local store ready", "store", cfg.StoreType)

	session := auth.NewHolder(store)
	if err := session.Restore(ctx); err != nil {
		slog.Warn("could not restore session", "error", err)
	}

	env := &handlers.Env{
		Client:    api.NewClient(cfg.BackendURL, nil),
		Session:   session,
		Guard:     votes,
		Out:       os.Stdout,
		Notifier:  view.WriterNotifier{W: os.Stderr},
		Navigator: router.Navigator{W: os.Stderr},
		Style:     handlers.StyleFor(os.Stdout),
	}
	r := router.NewRouter(env)

	if len(rest) == 0 || rest[0] == "help" {
		r.Usage(os.Stdout)
		return 0
	}

	err = r.Dispatch(ctx, rest)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, router.ErrUnknownCommand), errors.Is(err, handlers.ErrUsage):
		if errors.Is(err, router.ErrUnknownCommand) {
			slog.Error("unknown command", "error", err)
			r.Usage(os.Stderr)
		}
		return 2
	default:
		return 1
	}
}
