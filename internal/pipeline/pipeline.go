// Package pipeline drives one full fixup run: token copy, robots, feed,
// sitemap, then override-rule emission. Steps are strictly sequential; later
// steps intentionally observe files earlier steps wrote. Every run is a
// complete, idempotent regeneration of the artifacts.
package pipeline

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitefix/internal/config"
	ferrors "git.home.luguber.info/inful/sitefix/internal/errors"
	"git.home.luguber.info/inful/sitefix/internal/logfields"
	"git.home.luguber.info/inful/sitefix/internal/metrics"
	"git.home.luguber.info/inful/sitefix/internal/render"
	"git.home.luguber.info/inful/sitefix/internal/rules"
	"git.home.luguber.info/inful/sitefix/internal/site"
	"git.home.luguber.info/inful/sitefix/internal/tokens"
)

// Options configures a single fixup run.
type Options struct {
	OutDir   string
	BaseURL  string
	Config   *config.Config
	Recorder metrics.Recorder // optional, defaults to NoopRecorder
	Now      func() time.Time // optional clock, defaults to time.Now
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	Pages     int
	FeedItems int
	Rules     int
	Duration  time.Duration
}

// Run validates the invocation, then executes all fixup steps in order.
// Validation failures are usage errors reported before any writes occur.
func Run(opts Options) (*Result, error) {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config == nil {
		cfg, err := config.Load("sitefix.yaml")
		if err != nil {
			return nil, ferrors.Wrap(err, ferrors.CategoryConfig, ferrors.SeverityFatal, "load configuration")
		}
		opts.Config = cfg
	}

	baseURL := site.NormalizeBaseURL(opts.BaseURL)
	if !strings.HasPrefix(baseURL, "http") {
		return nil, ferrors.UsageError("BASE_URL must start with http(s)").WithContext("base_url", opts.BaseURL)
	}
	if fi, err := os.Stat(opts.OutDir); err != nil || !fi.IsDir() {
		return nil, ferrors.UsageError("OUT_DIR not found: " + opts.OutDir)
	}

	r := &run{
		outDir:   opts.OutDir,
		baseURL:  baseURL,
		cfg:      opts.Config,
		recorder: opts.Recorder,
		// One render timestamp for the whole run: the feed and sitemap stamp
		// generation time, per-item history is not tracked anywhere.
		now:    opts.Now().UTC(),
		result: &Result{RunID: uuid.NewString()},
	}
	return r.execute()
}

type run struct {
	outDir   string
	baseURL  string
	cfg      *config.Config
	recorder metrics.Recorder
	now      time.Time
	result   *Result
}

func (r *run) execute() (*Result, error) {
	logger := slog.Default().With(logfields.RunID(r.result.RunID))
	logger.Info("Starting fixup run",
		logfields.Path(r.outDir),
		logfields.BaseURL(r.baseURL))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"tokens", r.stepTokens},
		{"robots", r.stepRobots},
		{"feed", r.stepFeed},
		{"sitemap", r.stepSitemap},
		{"overrides", r.stepOverrides},
	}

	start := time.Now()
	for _, step := range steps {
		stepStart := time.Now()
		err := step.fn()
		elapsed := time.Since(stepStart)
		r.recorder.ObserveStepDuration(step.name, elapsed)
		if err != nil {
			r.recorder.IncStepResult(step.name, metrics.ResultFatal)
			r.recorder.IncRunOutcome("failed")
			logger.Error("Step failed", logfields.Step(step.name), logfields.Error(err))
			return nil, err
		}
		r.recorder.IncStepResult(step.name, metrics.ResultSuccess)
		logger.Debug("Step completed",
			logfields.Step(step.name),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
	}

	r.result.Duration = time.Since(start)
	r.recorder.ObserveRunDuration(r.result.Duration)
	r.recorder.IncRunOutcome("success")
	logger.Info("Fixup run complete",
		logfields.Path(r.outDir),
		logfields.Count(r.result.Pages),
		logfields.DurationMS(float64(r.result.Duration.Milliseconds())))
	return r.result, nil
}

func (r *run) stepTokens() error {
	return tokens.Copy(r.cfg.Data.TokensDir, r.outDir)
}

func (r *run) stepRobots() error {
	return render.WriteRobots(r.outDir, r.baseURL)
}

func (r *run) stepFeed() error {
	urls, err := site.ReadRecent(r.cfg.Data.RecentLog, r.cfg.Feed.Limit)
	if err != nil {
		return ferrors.Wrap(err, ferrors.CategoryFileSystem, ferrors.SeverityFatal, "read recent log").WithContext("path", r.cfg.Data.RecentLog)
	}
	enriched := site.LoadEnrichment(r.cfg.Data.Enrichment)

	// Log order is oldest first; the feed wants newest first.
	items := make([]render.Item, 0, len(urls))
	for i := len(urls) - 1; i >= 0; i-- {
		items = append(items, r.feedItem(urls[i], enriched))
	}
	r.result.FeedItems = len(items)

	ch := render.Channel{
		Title:       r.cfg.Feed.Title,
		Link:        r.baseURL + "/",
		Description: r.cfg.Feed.Description,
	}
	return render.WriteFeed(r.outDir, ch, items, r.now)
}

// feedItem resolves display metadata for one logged URL: enrichment first,
// then the on-site page's own title/description, then the URL itself.
func (r *run) feedItem(u string, enriched map[string]site.Metadata) render.Item {
	meta := enriched[u]
	title := strings.TrimSpace(meta.Title)
	desc := strings.TrimSpace(meta.Summary)
	if desc == "" {
		desc = strings.TrimSpace(meta.Description)
	}

	if (title == "" || desc == "") && r.cfg.Feed.PageTitlesEnabled() {
		if path, ok := site.LocalPagePath(r.outDir, r.baseURL, u); ok {
			pm := site.ExtractPageMeta(path)
			if title == "" {
				title = pm.Title
			}
			if desc == "" {
				desc = pm.Description
			}
		}
	}

	if title == "" {
		title = u
	}
	if desc == "" {
		desc = u
	}
	return render.Item{Title: title, Link: u, Description: desc}
}

func (r *run) stepSitemap() error {
	urls, err := site.Collect(r.outDir, r.baseURL)
	if err != nil {
		return ferrors.Wrap(err, ferrors.CategoryFileSystem, ferrors.SeverityFatal, "collect pages").WithContext("path", r.outDir)
	}
	r.result.Pages = len(urls)
	r.recorder.SetPagesCollected(len(urls))
	return render.WriteSitemap(r.outDir, urls, r.now)
}

func (r *run) stepOverrides() error {
	n, err := rules.Emit(r.outDir, r.cfg.Site.DailyDir)
	if err != nil {
		return err
	}
	r.result.Rules = n
	r.recorder.SetRulesEmitted(n)
	return nil
}
