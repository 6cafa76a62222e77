package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/buildtool"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
)

func main() {
	goos := flag.String("goos", "", "Target OS (defaults to GOOS, then the host OS)")
	dir := flag.String("dir", ".", "Directory holding "+buildtool.ResourceScript)
	checkIcons := flag.Bool("icons", false, "Verify the source icon and generated icons")
	sourceIcon := flag.String("source-icon", "app-icon.png", "Source icon path")
	iconDir := flag.String("icon-dir", "icons", "Generated icon directory")
	envFile := flag.String("env-file", "", "Write the extended PATH to this file instead of stdout")
	flag.Parse()

	cfg := logging.DevelopmentConfig()
	cfg.Level = "info"
	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	env := buildtool.HostEnv()
	if *goos != "" {
		env.GOOS = *goos
	} else if target := os.Getenv("GOOS"); target != "" {
		env.GOOS = target
	}

	report := buildtool.Run(env, buildtool.Options{
		Dir:        *dir,
		CheckIcons: *checkIcons,
		SourceIcon: *sourceIcon,
		IconDir:    *iconDir,
	})

	for _, msg := range report.Messages {
		if msg.Level == buildtool.Warning {
			logger.Warn(msg.Text)
		} else {
			logger.Info(msg.Text)
		}
	}

	if report.PathValue != "" {
		line := "PATH=" + report.PathValue + "\n"
		if *envFile != "" {
			if err := os.WriteFile(*envFile, []byte(line), 0o644); err != nil {
				logger.Error("Failed to write env file", zap.String("path", *envFile), zap.Error(err))
				os.Exit(1)
			}
			logger.Info("Wrote build environment", zap.String("path", *envFile))
		} else {
			fmt.Print(line)
		}
	}

	if report.Err != nil {
		logger.Error("Build preparation failed", zap.Error(report.Err))
		logger.Sync()
		os.Exit(1)
	}
}
