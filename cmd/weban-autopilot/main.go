package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"weban-autopilot/internal/app"
	"weban-autopilot/internal/browser"
	"weban-autopilot/internal/config"
	"weban-autopilot/internal/observability"
	"weban-autopilot/internal/scraper"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	cliApp := &cli.App{
		Name:  "weban-autopilot",
		Usage: "drive the WeBan course pages in a browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigPath,
				Usage:   "path to the YAML config",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "open the platform and react to page changes until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start-url", Usage: "override start_url"},
					&cli.BoolFlag{Name: "headless", Usage: "run Chrome without a window"},
					&cli.BoolFlag{Name: "find-unfinished", Usage: "enable the unfinished lesson finder"},
				},
				Action: runAction,
			},
			{
				Name:      "inspect",
				Usage:     "dry-run the handlers against a saved page",
				ArgsUsage: "PAGE.html",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Required: true, Usage: "URL the page was saved from"},
				},
				Action: inspectAction,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, scraper.Selectors, error) {
	var cfg *config.Config
	var err error
	if c.IsSet("config") {
		cfg, err = config.LoadConfig(c.String("config"))
	} else {
		cfg, err = config.LoadConfigOrDefault(defaultConfigPath)
	}
	if err != nil {
		return nil, scraper.Selectors{}, fmt.Errorf("failed to load config: %w", err)
	}

	selectors, err := cfg.Selectors()
	if err != nil {
		return nil, scraper.Selectors{}, fmt.Errorf("failed to load selectors: %w", err)
	}
	return cfg, selectors, nil
}

func newLogger(cfg *config.Config) (*observability.Logger, error) {
	return observability.NewLogger(observability.Options{
		LogPath:    cfg.Observability.LogPath,
		LogLevel:   cfg.Observability.LogLevel,
		MaxSizeMB:  cfg.Observability.MaxSizeMB,
		MaxBackups: cfg.Observability.MaxBackups,
		MaxAgeDays: cfg.Observability.MaxAgeDays,
	})
}

func runAction(c *cli.Context) error {
	cfg, selectors, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("start-url") {
		cfg.StartURL = c.String("start-url")
	}
	if c.IsSet("headless") {
		cfg.Rod.Headless = c.Bool("headless")
	}
	if c.IsSet("find-unfinished") {
		cfg.Unfinished.Enabled = c.Bool("find-unfinished")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: failed to close log file:", err)
		}
	}()

	ctx, cancel := app.GracefulShutdown(c.Context, logger)
	defer cancel()

	manager := browser.NewManager(browser.Options{
		RemoteURL:   cfg.Rod.RemoteURL,
		ChromePath:  cfg.Rod.ChromePath,
		Headless:    cfg.Rod.Headless,
		UserDataDir: cfg.Rod.UserDataDir,
		Logger:      logger.Logger,
	})
	router := app.NewFrameRouter(cfg, selectors, logger.Logger)

	stats, err := app.NewOrchestrator(cfg, logger, manager, router).Run(ctx)
	if err != nil {
		logger.Error("Session failed", "error", err)
		return err
	}

	fmt.Printf("✓ Session finished: %d route changes, %d handlers started (%s)\n",
		stats.RouteChanges, stats.HandlersStarted, stats.StoppedReason)
	return nil
}

func inspectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one HTML file, got %d", c.NArg())
	}

	cfg, selectors, err := loadConfig(c)
	if err != nil {
		return err
	}
	// Dry run: console only
	cfg.Observability.LogPath = ""

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	file, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = file.Close() }()

	snap, err := scraper.NewSnapshot(file)
	if err != nil {
		return err
	}

	report := app.Inspect(context.Background(), cfg, selectors, logger.Logger, snap, c.String("url"))

	if len(report.Handlers) == 0 {
		fmt.Printf("✗ No handler matches %s\n", report.URL)
		return nil
	}
	fmt.Printf("✓ Handlers: %v\n", report.Handlers)
	for _, name := range report.Calls {
		fmt.Printf("  call  %s()\n", name)
	}
	for i, click := range report.Clicks {
		fmt.Printf("  [%d] click <%s class=%q> %s\n", i+1, click.Tag, click.Class, click.Text)
	}
	if len(report.Calls) == 0 && len(report.Clicks) == 0 {
		fmt.Println("  nothing to do")
	}
	return nil
}
