// cmd/instagram-scraper/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/browser"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/config"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/monitoring"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/output"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/scraper"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: instagram-scraper run <config.yaml>\n")
			os.Exit(1)
		}
		if err := runScraper(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "validate":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: instagram-scraper validate <config.yaml>\n")
			os.Exit(1)
		}
		if err := validateConfig(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration file '%s' is valid\n", os.Args[2])

	case "template":
		template, err := generateTemplate(os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(template)

	case "version", "--version":
		printVersion()

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runScraper(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	logger := utils.NewLogger()
	if hasFlag("-v") || hasFlag("--verbose") {
		logger = utils.NewLoggerWithLevel(utils.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, cleanup, err := buildFetcher(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sink, err := output.NewManager(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output manager: %w", err)
	}
	defer sink.Close()

	metrics, metricsCleanup := startMetrics(ctx, cfg, logger)
	defer metricsCleanup()

	engine, err := scraper.NewEngine(cfg, fetcher, sink, metrics, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	records, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Scraping completed. %d record(s) written to %s output\n",
		len(records), cfg.Output.Format)
	return nil
}

// buildFetcher picks browser rendering when enabled, plain HTTP otherwise.
func buildFetcher(cfg *config.ScraperConfig) (scraper.Fetcher, func(), error) {
	if cfg.Browser != nil && cfg.Browser.Enabled {
		f, err := browser.NewFetcher(cfg.Browser)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, func() { f.Close() }, nil
	}

	client := scraper.NewHTTPClient(scraper.ClientConfig{
		Timeout:       time.Duration(cfg.Request.TimeoutSeconds) * time.Second,
		RetryAttempts: cfg.Request.RetryAttempts,
		RetryDelay:    time.Duration(cfg.Request.RetryDelaySeconds) * time.Second,
		UserAgents:    cfg.Request.UserAgents,
		Headers:       cfg.Request.Headers,
		Cookies:       cfg.Request.Cookies,
		RateLimit:     cfg.Request.RequestsPerSecond,
		RateBurst:     cfg.Request.Burst,
	})
	return client, func() {}, nil
}

// startMetrics brings up the metrics server when enabled and returns the
// instrument set plus a shutdown func.
func startMetrics(ctx context.Context, cfg *config.ScraperConfig, logger utils.Logger) (*monitoring.Metrics, func()) {
	if !cfg.Metrics.Enabled {
		return monitoring.NewNopMetrics(), func() {}
	}

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)
	server := monitoring.NewServer(cfg.Metrics.ListenAddress, registry, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Errorf("metrics server failed: %v", err)
		}
	}()

	return metrics, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}
}

func validateConfig(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func generateTemplate(args []string) (string, error) {
	templateType := "basic"
	if len(args) > 1 && args[0] == "--type" {
		templateType = args[1]
	}

	template := config.GenerateTemplate(templateType)

	yamlData, err := yaml.Marshal(template)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template to YAML: %w", err)
	}
	return string(yamlData), nil
}

// hasFlag checks if a flag is present in command line arguments.
func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println("instagram-scraper - Instagram Post Scraper")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  instagram-scraper run <config.yaml>        Run scraper with configuration file")
	fmt.Println("  instagram-scraper validate <config.yaml>   Validate configuration file")
	fmt.Println("  instagram-scraper template [--type <type>] Generate configuration template")
	fmt.Println("  instagram-scraper version                  Show version information")
	fmt.Println("  instagram-scraper help                     Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose                              Enable verbose output")
	fmt.Println()
	fmt.Println("Template types:")
	fmt.Println("  basic       Scrape recent posts from a profile (default)")
	fmt.Println("  archive     Full archive run with comments and SQLite output")
}

func printVersion() {
	fmt.Printf("instagram-scraper %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
}
