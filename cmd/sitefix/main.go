package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitefix/internal/config"
	ferrors "git.home.luguber.info/inful/sitefix/internal/errors"
	"git.home.luguber.info/inful/sitefix/internal/pipeline"
	"git.home.luguber.info/inful/sitefix/internal/version"
	"git.home.luguber.info/inful/sitefix/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sitefix.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Fix struct {
		OutDir  string `arg:"" help:"Built site output directory"`
		BaseURL string `arg:"" help:"Public base URL (must start with http)"`
	} `cmd:"" help:"Fix up well-known files in the built output tree"`

	Watch struct {
		OutDir        string        `arg:"" help:"Built site output directory"`
		BaseURL       string        `arg:"" help:"Public base URL (must start with http)"`
		Interval      time.Duration `help:"Also re-run on a fixed interval (0 disables)"`
		MetricsListen string        `help:"Listen address for Prometheus metrics (optional)"`
	} `cmd:"" help:"Re-run the fixup whenever the data inputs change"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := ferrors.NewCLIErrorAdapter(CLI.Verbose, logger)

	var err error
	switch ctx.Command() {
	case "fix <out-dir> <base-url>":
		err = runFix(CLI.Fix.OutDir, CLI.Fix.BaseURL)
	case "watch <out-dir> <base-url>":
		err = runWatch(CLI.Watch.OutDir, CLI.Watch.BaseURL, CLI.Watch.Interval, CLI.Watch.MetricsListen)
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Force)
	case "version":
		fmt.Printf("sitefix %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}

	if err != nil {
		adapter.Report(err)
		os.Exit(adapter.ExitCodeFor(err))
	}
}

func runFix(outDir, baseURL string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := pipeline.Run(pipeline.Options{
		OutDir:  outDir,
		BaseURL: baseURL,
		Config:  cfg,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Fixup done: %s (%d pages, %d rules)\n", outDir, res.Pages, res.Rules)
	return nil
}

func runWatch(outDir, baseURL string, interval time.Duration, metricsListen string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := watch.New(watch.Options{
		OutDir:        outDir,
		BaseURL:       baseURL,
		Config:        cfg,
		Interval:      interval,
		MetricsListen: metricsListen,
	})
	return runner.Start(ctx)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, ferrors.Wrap(err, ferrors.CategoryConfig, ferrors.SeverityFatal, "load configuration").WithContext("path", CLI.Config)
	}
	return cfg, nil
}
