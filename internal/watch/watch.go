// Package watch re-runs the fixup pipeline when its data inputs change.
// Each trigger executes a complete regeneration; there is no incremental
// path. Triggers come from a debounced filesystem watcher over the input
// directories and, optionally, a periodic schedule.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitefix/internal/config"
	"git.home.luguber.info/inful/sitefix/internal/logfields"
	"git.home.luguber.info/inful/sitefix/internal/metrics"
	"git.home.luguber.info/inful/sitefix/internal/pipeline"
)

// Options configures watch mode.
type Options struct {
	OutDir        string
	BaseURL       string
	Config        *config.Config
	Interval      time.Duration // optional periodic re-run, 0 disables
	MetricsListen string        // optional listen address for Prometheus metrics
	Debounce      time.Duration // coalescing window for file events, default 2s
}

// Runner owns the watch loop.
type Runner struct {
	opts     Options
	recorder metrics.Recorder
	trigger  chan string // trigger reason, coalesced
}

// New creates a watch runner. When a metrics listen address is configured the
// pipeline records into a Prometheus registry served on that address.
func New(opts Options) *Runner {
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}
	return &Runner{
		opts:     opts,
		recorder: metrics.NoopRecorder{},
		trigger:  make(chan string, 1),
	}
}

// notify requests a pipeline run; pending triggers coalesce into one.
func (r *Runner) notify(reason string) {
	select {
	case r.trigger <- reason:
	default:
	}
}

// watchDirs returns the unique parent directories of the data inputs.
// The output tree itself is not watched: the pipeline's own writes would
// retrigger it endlessly.
func (r *Runner) watchDirs() []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range []string{
		filepath.Dir(r.opts.Config.Data.RecentLog),
		filepath.Dir(r.opts.Config.Data.Enrichment),
		r.opts.Config.Data.TokensDir,
	} {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		dirs = append(dirs, p)
	}
	return dirs
}

// Start runs one immediate fixup, then blocks re-running on triggers until
// the context is canceled.
func (r *Runner) Start(ctx context.Context) error {
	if r.opts.MetricsListen != "" {
		reg := prom.NewRegistry()
		r.recorder = metrics.NewPrometheusRecorder(reg)
		go r.serveMetrics(ctx, reg)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range r.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			slog.Warn("Cannot watch directory", logfields.Path(dir), logfields.Error(err))
		} else {
			slog.Info("Watching directory", logfields.Path(dir))
		}
	}

	var scheduler gocron.Scheduler
	if r.opts.Interval > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := scheduler.NewJob(
			gocron.DurationJob(r.opts.Interval),
			gocron.NewTask(func() { r.notify("schedule") }),
			gocron.WithName("periodic-fixup"),
		); err != nil {
			return err
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	go r.eventLoop(ctx, watcher)

	r.runOnce("startup")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch mode stopping")
			return nil
		case reason := <-r.trigger:
			// Debounce: let a burst of file events settle before running.
			timer := time.NewTimer(r.opts.Debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
			// Drain anything that arrived during the window.
			select {
			case <-r.trigger:
			default:
			}
			r.runOnce(reason)
		}
	}
}

// eventLoop forwards filesystem events into the trigger channel.
func (r *Runner) eventLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				slog.Debug("Input changed", logfields.Path(event.Name))
				r.notify("fsnotify")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// runOnce executes one full pipeline run. Failures are logged, not fatal:
// the next trigger starts a fresh run.
func (r *Runner) runOnce(reason string) {
	slog.Info("Triggering fixup run", slog.String("reason", reason))
	res, err := pipeline.Run(pipeline.Options{
		OutDir:   r.opts.OutDir,
		BaseURL:  r.opts.BaseURL,
		Config:   r.opts.Config,
		Recorder: r.recorder,
	})
	if err != nil {
		slog.Error("Fixup run failed", logfields.Error(err))
		return
	}
	slog.Info("Fixup run succeeded", logfields.RunID(res.RunID), logfields.Count(res.Pages))
}

func (r *Runner) serveMetrics(ctx context.Context, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	server := &http.Server{Addr: r.opts.MetricsListen, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving metrics", slog.String("addr", r.opts.MetricsListen))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics listener failed", logfields.Error(err))
	}
}
