package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zaudit/internal/breach"
	"github.com/zarlcorp/zaudit/internal/cli"
	"github.com/zarlcorp/zaudit/internal/clipboard"
	"github.com/zarlcorp/zaudit/internal/config"
	"github.com/zarlcorp/zaudit/internal/eventlog"
	"github.com/zarlcorp/zaudit/internal/hasher"
	"github.com/zarlcorp/zaudit/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zaudit"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	svc, err := newServices(cfg)
	if err != nil {
		slog.Error("startup", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		code := runCLI(ctx, svc, os.Args[1], os.Args[2:])
		_ = app.Close()
		os.Exit(code)
	}

	if err := runTUI(ctx, svc); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

// services holds the collaborators shared by the CLI and the TUI.
type services struct {
	log       *eventlog.Log
	breach    *breach.Client
	hasher    *hasher.Bcrypt
	clipboard clipboard.Copier
}

func newServices(cfg config.Config) (services, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return services{}, fmt.Errorf("create data dir: %w", err)
	}

	log, err := eventlog.Open(zfilesystem.NewOSFileSystem(cfg.DataDir), eventlog.Config{})
	if err != nil {
		return services{}, err
	}

	h, err := hasher.New(cfg.HashCost)
	if err != nil {
		slog.Warn("invalid hash cost, using default", "cost", cfg.HashCost, "err", err)
		h, _ = hasher.New(hasher.DefaultCost)
	}

	return services{
		log: log,
		breach: breach.NewClient(breach.Config{
			BaseURL:   cfg.BreachURL,
			Timeout:   cfg.BreachTimeout,
			Padding:   cfg.BreachPadding,
			UserAgent: "zaudit/" + version,
			Logger:    slog.Default(),
		}),
		hasher:    h,
		clipboard: clipboard.Detect(),
	}, nil
}

func runCLI(ctx context.Context, svc services, cmd string, args []string) int {
	a := &cli.App{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Log:       svc.log,
		Breach:    svc.breach,
		Hasher:    svc.hasher,
		Clipboard: svc.clipboard,
	}

	var err error
	switch cmd {
	case "version":
		fmt.Printf("zaudit %s\n", version)
	case "generate":
		err = a.CmdGenerate(args)
	case "audit":
		err = a.CmdAudit(args)
	case "breach":
		err = a.CmdBreach(ctx, args)
	case "hash":
		err = a.CmdHash(args)
	case "logs":
		err = a.CmdLogs(args)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "zaudit: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(ctx context.Context, svc services) error {
	m := tui.New(ctx, version, tui.Services{
		Log:       svc.log,
		Breach:    svc.breach,
		Hasher:    svc.hasher,
		Clipboard: svc.clipboard,
		Shuffle:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	})

	_, err := tea.NewProgram(m).Run()
	return err
}
