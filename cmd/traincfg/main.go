package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vkarpenko/traincfg/internal/config"
	"github.com/vkarpenko/traincfg/internal/registry"
	"github.com/vkarpenko/traincfg/internal/run"
)

const (
	defaultConfigPath = "configs/lenet5_mnist.yaml"
	toolName          = "traincfg"
	toolVersion       = "1.0.0"
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	initConfig := flag.Bool("init", false, "Write the default configuration to the config path and exit")
	printConfig := flag.Bool("print", false, "Re-encode the validated configuration to stdout")
	strict := flag.Bool("strict", false, "Resolve type names against the builtin registries")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := initLogger(*verbose)

	if *initConfig {
		if err := os.WriteFile(*configPath, []byte(config.DefaultYAML), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write default configuration: %v\n", err)
			os.Exit(1)
		}
		logger.Info("Default configuration written",
			slog.String("path", *configPath),
		)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded",
		slog.String("tool", toolName),
		slog.String("version", toolVersion),
		slog.String("config_path", *configPath),
		slog.String("name", cfg.Name),
		slog.Int64("seed", cfg.Seed),
		slog.Int("epochs", cfg.Epochs),
		slog.Int("eval_freq", cfg.EvalFreq),
		slog.String("dataset", cfg.Dataset.Type),
		slog.String("model", cfg.Model.Model),
		slog.String("optimizer", cfg.Optimizer.Type),
		slog.String("lr_scheduler", cfg.LRScheduler.Type),
	)

	plan := run.NewPlan(cfg)
	logger.Debug("Run plan",
		slog.Any("eval_epochs", plan.EvalEpochs()),
		slog.String("final_checkpoint", plan.CheckpointPath(cfg.Epochs)),
		slog.String("train_transforms", strings.Join(cfg.Dataset.Train.Transforms.Kinds(), ", ")),
	)

	if *strict {
		if err := registry.Check(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Type resolution failed: %v\n", err)
			os.Exit(1)
		}
		logger.Info("All type names resolved against builtin registries")
	}

	if *printConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode configuration: %v\n", err)
			os.Exit(1)
		}
	}
}

// initLogger creates the structured logger for the tool.
func initLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
