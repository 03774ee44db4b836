package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"RiskDash/internal/di"
	"RiskDash/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	checkOnly := flag.Bool("check", false, "validate the config and exit")
	flag.Parse()

	if err := run(*configPath, *checkOnly); err != nil {
		log.Printf("riskdash: %v", err)
		os.Exit(1)
	}
}

func run(configPath string, checkOnly bool) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if checkOnly {
		log.Printf("config ok: env=%s backend=%s", cfg.Environment, cfg.Backend.BaseURL)
		return nil
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	log.Printf("riskdash env=%s backend=%s convention=%s cache=%s kafka=%t clickhouse=%t",
		cfg.Environment, cfg.Backend.BaseURL, cfg.Display.Convention, cfg.Cache.Type,
		cfg.Kafka.Enabled, cfg.ClickHouse.Enabled)

	// blocks until SIGINT/SIGTERM
	return app.Run()
}
