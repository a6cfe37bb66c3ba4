package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/revenuex/revenue-forecast/internal/config"
	"github.com/revenuex/revenue-forecast/internal/ratesource"
	"github.com/revenuex/revenue-forecast/internal/server"
	"github.com/revenuex/revenue-forecast/internal/simulation"
	"github.com/revenuex/revenue-forecast/internal/store"
	"github.com/revenuex/revenue-forecast/pkg/constants"
	"github.com/revenuex/revenue-forecast/pkg/output"
	"github.com/revenuex/revenue-forecast/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	storeDir := flag.String("store-dir", "", "directory of the configuration blob store; used when the config file is absent")
	saveConfig := flag.Bool("save", false, "persist the resolved configuration into the blob store")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	fetchRate := flag.Bool("fetch-rate", false, "resolve the USD->JPY exchange rate from the network before simulating")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot simulation")
	addr := flag.String("addr", constants.DefaultServerAddress, "HTTP listen address for -serve")
	flag.Parse()

	conf, err := resolveConfiguration(*configLocation, *storeDir)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		handler := server.NewHandler(logger, constants.DefaultMaxBodyBytes, version)
		logger.Info("starting HTTP API",
			zap.String("op", "main"),
			zap.String("addr", *addr),
		)
		if err := http.ListenAndServe(*addr, handler); err != nil {
			logger.Fatal("HTTP server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Optionally resolve the exchange rate from the network; a failed fetch
	// falls back to the configured rate, the engine never sees the error.
	if *fetchRate {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		result, fetchErr := ratesource.NewClient(nil, "", logger).FetchUSDJPY(ctx)
		cancel()
		if fetchErr != nil {
			logger.Warn("exchange rate fetch failed, using configured rate",
				zap.String("op", "main"),
				zap.Float64("rate", conf.Simulation.ExchangeRate),
				zap.Error(fetchErr),
			)
		} else {
			conf.Simulation.ExchangeRate = result.Rate
			logger.Info("exchange rate resolved",
				zap.String("op", "main"),
				zap.Float64("rate", result.Rate),
				zap.String("date", result.Date),
			)
		}
	}

	// Run the simulation to get the projection.
	engine := simulation.NewEngine(logger)
	records := engine.Run(conf.Simulation)
	summary := engine.Summarize(conf.Simulation, records, conf.Milestones)

	if *saveConfig && *storeDir != "" {
		if err := store.New(*storeDir, logger).Save(constants.StoreNamespace, conf); err != nil {
			logger.Warn("failed to persist configuration",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(records)
		output.PrettySummary(summary)
	case constants.OutputFormatCSV:
		output.CsvFormat(records)
	}
}

// resolveConfiguration loads the config file when it exists and otherwise
// falls back to the blob store (which yields defaults on first run).
func resolveConfiguration(configLocation, storeDir string) (*config.Configuration, error) {
	if _, err := os.Stat(configLocation); err == nil || storeDir == "" {
		return config.LoadConfiguration(configLocation)
	}
	return store.New(storeDir, nil).Load(constants.StoreNamespace), nil
}
