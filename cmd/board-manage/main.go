// board-manage — обслуживание board-service:
//
//	board-manage [--config path] migrate up|down
//	board-manage [--config path] board sync
//	board-manage [--config path] session cleanup
//	board-manage [--config path] session stats
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pribylovaa/go-board/internal/app"
	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/pribylovaa/go-board/internal/migrate"
	logctx "github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/session"
)

var errUsage = errors.New("usage: board-manage [--config path] migrate up|down | board sync | session cleanup|stats")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	if err := run(logctx.Into(ctx, log), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "board-manage:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("board-manage", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return errUsage
	}
	cmd := rest[0] + " " + rest[1]

	switch cmd {
	case "migrate up", "migrate down", "board sync", "session cleanup", "session stats":
	default:
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if rest[0] == "migrate" {
		if cfg.DB.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
		if err := migrate.Run(cfg.DB.DatabaseURL, rest[1]); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintf(out, "migrate %s: ok\n", rest[1])
		return nil
	}

	openCtx, openCancel := context.WithTimeout(ctx, 10*time.Second)
	deps, err := app.Open(openCtx, cfg)
	openCancel()
	if err != nil {
		return err
	}
	defer deps.Close()

	cmdCtx, cmdCancel := context.WithTimeout(ctx, cfg.Jobs.Timeout)
	defer cmdCancel()

	return execute(cmdCtx, cmd, deps, out)
}

// execute выполняет команды, которым нужны открытые хранилища.
func execute(ctx context.Context, cmd string, deps *app.Deps, out io.Writer) error {
	sessions := session.New(deps.Storage)

	switch cmd {
	case "board sync":
		res, err := counter.NewSynchronizer(deps.Deltas, deps.Storage, nil).Fold(ctx)
		fmt.Fprintf(out, "folded=%d discarded=%d failed=%d\n", res.Folded, res.Discarded, res.Failed)
		if err != nil {
			return fmt.Errorf("board sync: %w", err)
		}
	case "session cleanup":
		n, err := sessions.SweepExpired(ctx, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("session cleanup: %w", err)
		}
		fmt.Fprintf(out, "deleted=%d\n", n)
	case "session stats":
		st, err := sessions.Stats(ctx, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("session stats: %w", err)
		}
		fmt.Fprintf(out, "total=%d active=%d expired=%d\n", st.Total, st.Active, st.Expired)
	default:
		return errUsage
	}

	return nil
}
