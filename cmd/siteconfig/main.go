package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/mytchallb/mytchall-dev/internal/application"
	"github.com/mytchallb/mytchall-dev/internal/config"
	"github.com/mytchallb/mytchall-dev/internal/export"
	"github.com/mytchallb/mytchall-dev/internal/logging"
)

var signalNotify = signal.Notify

type cli struct {
	app *kingpin.Application

	configFile     *string
	url            *string
	branch         *string
	disableSearch  *bool
	skipEnvFiles   *bool
	logLevel       *string
	printCmd       *kingpin.CmdClause
	printFormat    *string
	exportCmd      *kingpin.CmdClause
	exportOutput   *string
	serveCmd       *kingpin.CmdClause
	port           *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCLI() *cli {
	app := kingpin.New("siteconfig", "Resolves site settings for the static-site renderer")
	c := &cli{app: app}

	c.configFile = app.Flag("config", "Path to YAML settings file").String()
	c.url = app.Flag("url", "Site URL (overrides URL)").String()
	c.branch = app.Flag("branch", "Deployed branch name for search").String()
	c.disableSearch = app.Flag("disable-search", "Hide the search bar").Bool()
	c.skipEnvFiles = app.Flag("skip-env-files", "Do not load .env files").Bool()
	c.logLevel = app.Flag("log-level", "Log level (debug, info, warn, error)").Default("info").String()

	c.printCmd = app.Command("print", "Print resolved settings to stdout").Default()
	c.printFormat = c.printCmd.Flag("format", "Output format").Default(string(export.FormatJSON)).Enum(string(export.FormatJSON), string(export.FormatYAML))

	c.exportCmd = app.Command("export", "Write resolved settings to a data file")
	c.exportOutput = c.exportCmd.Flag("output", "Destination file (.json, .yaml or .yml)").Short('o').Default("src/_data/site.json").String()

	c.serveCmd = app.Command("serve", "Serve resolved settings over HTTP")
	c.port = c.serveCmd.Flag("port", "HTTP port exposed by the service").String()
	c.rateLimitRPS = c.serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurst = c.serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	return c
}

func (c *cli) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile:    *c.configFile,
		DisableSearch: *c.disableSearch,
	}

	if *c.url != "" {
		overrides.URL = c.url
	}

	if *c.branch != "" {
		overrides.Branch = c.branch
	}

	if *c.port != "" {
		overrides.Port = c.port
	}

	if *c.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = c.rateLimitRPS
	}

	if *c.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = c.rateLimitBurst
	}

	return overrides
}

func main() {
	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	logger, err := logging.New(*c.logLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(c, command, os.Stdout, logger); err != nil {
		logger.Fatal("siteconfig failed", zap.String("command", command), zap.Error(err))
	}
}

func run(c *cli, command string, stdout io.Writer, logger *zap.Logger) error {
	if !*c.skipEnvFiles {
		if err := config.LoadEnvFiles(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(config.OSEnvironment(), c.overrides())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger.Debug("settings resolved",
		zap.String("url", cfg.Site.URL()),
		zap.Bool("search_enabled", cfg.Site.Search().Enabled()),
		zap.Bool("search_app_id_set", cfg.Site.Search().AppID().Present()),
		zap.String("branch", cfg.Site.Search().Branch()),
	)

	switch command {
	case c.printCmd.FullCommand():
		return export.Write(stdout, cfg.Site, export.Format(*c.printFormat))
	case c.exportCmd.FullCommand():
		if err := export.WriteFile(*c.exportOutput, cfg.Site); err != nil {
			return err
		}
		logger.Info("settings exported", zap.String("path", *c.exportOutput))
		return nil
	case c.serveCmd.FullCommand():
		app := application.New(cfg, logger)
		if err := app.Start(); err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		shutdown(app.Server(), cfg.Server.ShutdownGracePeriod, logger)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
