// Command formfill fills HTML forms with synthetic values.
//
// Usage:
//
//	formfill -html form.html                # fill a static HTML file, print result
//	formfill -url https://example.com/join  # fill a live page in a headless browser
//	formfill -serve :8080                   # run the HTTP gateway
//
// A -config formfill.yaml file supplies fill options and custom field
// rules for any mode.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/formfill/domfill"
	"github.com/hazyhaar/formfill/fill"
	"github.com/hazyhaar/formfill/gateway"
	"github.com/hazyhaar/formfill/htmldoc"
	"github.com/hazyhaar/formfill/rules"
	"github.com/hazyhaar/formfill/synth"
)

func main() {
	configPath := flag.String("config", "", "path to formfill.yaml config file")
	htmlPath := flag.String("html", "", "fill a static HTML file ('-' for stdin) and print the result")
	pageURL := flag.String("url", "", "fill a live page in a headless browser")
	serveAddr := flag.String("serve", "", "run the HTTP gateway on this address (e.g. :8080)")
	withBrowser := flag.Bool("browser", false, "launch a browser so the gateway can fill live URLs")
	aiURL := flag.String("ai-url", "", "remote value generator endpoint for free-text fields")
	seed := flag.Uint64("seed", 0, "deterministic generator seed (0 = time-seeded)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := runOptions{
		configPath:  *configPath,
		htmlPath:    *htmlPath,
		pageURL:     *pageURL,
		serveAddr:   *serveAddr,
		withBrowser: *withBrowser,
		aiURL:       *aiURL,
		seed:        *seed,
	}
	if err := run(ctx, logger, opts); err != nil {
		logger.Error("formfill: fatal", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath  string
	htmlPath    string
	pageURL     string
	serveAddr   string
	withBrowser bool
	aiURL       string
	seed        uint64
}

func run(ctx context.Context, logger *slog.Logger, opts runOptions) error {
	cfg := &fill.Config{}
	if opts.configPath != "" {
		var err error
		cfg, err = fill.LoadConfigFile(opts.configPath)
		if err != nil {
			return err
		}
	}

	switch {
	case opts.serveAddr != "":
		return runServe(ctx, logger, cfg, opts)
	case opts.htmlPath != "":
		return runHTML(ctx, logger, cfg, opts)
	case opts.pageURL != "":
		return runURL(ctx, logger, cfg, opts)
	}

	fmt.Fprintln(os.Stderr, "usage: formfill -html <file> | -url <url> | -serve <addr>")
	os.Exit(1)
	return nil
}

// buildFiller assembles the engine from the config: inline rule tiers
// first, then stored tiers appended when a rules_db is configured.
func buildFiller(ctx context.Context, logger *slog.Logger, cfg *fill.Config, opts runOptions, extra ...fill.FillerOption) (*fill.Filler, error) {
	profile := cfg.ProfileRules
	global := cfg.GlobalRules
	if cfg.RulesDB != "" {
		store, err := rules.OpenStore(cfg.RulesDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		sp, sg, err := store.LoadTiers(ctx)
		if err != nil {
			return nil, err
		}
		profile = append(profile, sp...)
		global = append(global, sg...)
	}

	fos := append([]fill.FillerOption{fill.WithLogger(logger)}, extra...)
	if opts.aiURL != "" {
		fos = append(fos, fill.WithAI(synth.NewRemoteGenerator(opts.aiURL, nil)))
	}
	resolver := rules.NewResolver(profile, global, logger)
	return fill.New(&cfg.Options, resolver, synth.New(opts.seed), fos...), nil
}

func runHTML(ctx context.Context, logger *slog.Logger, cfg *fill.Config, opts runOptions) error {
	var src io.Reader
	if opts.htmlPath == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(opts.htmlPath)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	doc, err := htmldoc.Parse(src)
	if err != nil {
		return err
	}

	f, err := buildFiller(ctx, logger, cfg, opts)
	if err != nil {
		return err
	}
	report, err := f.FillAll(ctx, doc)
	if err != nil {
		return err
	}
	logger.Info("formfill: pass complete",
		"filled", report.Filled, "skipped", report.Skipped, "errors", report.Errors)

	return doc.Render(os.Stdout)
}

func runURL(ctx context.Context, logger *slog.Logger, cfg *fill.Config, opts runOptions) error {
	browser := domfill.NewBrowser(domfill.Config{Logger: logger})
	if err := browser.Connect(); err != nil {
		return err
	}
	defer browser.Close()

	page, err := browser.Open(ctx, opts.pageURL)
	if err != nil {
		return err
	}
	defer page.Close()

	f, err := buildFiller(ctx, logger, cfg, opts, fill.WithNotifier(domfill.EventNotifier{}))
	if err != nil {
		return err
	}
	report, err := f.FillAll(ctx, page)
	if err != nil {
		return err
	}
	logger.Info("formfill: pass complete",
		"url", opts.pageURL, "filled", report.Filled, "skipped", report.Skipped, "errors", report.Errors)

	return json.NewEncoder(os.Stdout).Encode(report)
}

func runServe(ctx context.Context, logger *slog.Logger, cfg *fill.Config, opts runOptions) error {
	dbPath := cfg.RulesDB
	if dbPath == "" {
		dbPath = "formfill.db"
	}
	store, err := rules.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var sos []gateway.ServiceOption
	if opts.aiURL != "" {
		sos = append(sos, gateway.WithAI(synth.NewRemoteGenerator(opts.aiURL, nil)))
	}
	if opts.withBrowser {
		browser := domfill.NewBrowser(domfill.Config{Logger: logger})
		if err := browser.Connect(); err != nil {
			return err
		}
		defer browser.Close()
		sos = append(sos, gateway.WithBrowser(browser))
	}

	svc := gateway.New(store, &cfg.Options, logger, sos...)
	r := chi.NewRouter()
	for _, mw := range gateway.DefaultStack(logger) {
		r.Use(mw)
	}
	svc.RegisterHTTP(r)

	srv := &http.Server{
		Addr:              opts.serveAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("formfill: gateway starting", "addr", opts.serveAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("formfill: server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("formfill: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("formfill: shutdown", "error", err)
	}
	logger.Info("formfill: stopped")
	return nil
}
