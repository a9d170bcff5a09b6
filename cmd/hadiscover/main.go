// hadiscover runs one Home Assistant discovery pass and prints the
// combined REST and WebSocket snapshot as indented JSON.
//
// Configuration comes from a YAML file (-config) or, when no file is
// given, from the HA_REST_URL and HA_TOKEN environment variables.
//
// Usage:
//
//	hadiscover -config configs/config.yaml
//	HA_REST_URL=http://ha.local:8123 HA_TOKEN=... hadiscover
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/centralcore/mqtt-shared/internal/ha"
	"github.com/centralcore/mqtt-shared/internal/infrastructure/config"
	"github.com/centralcore/mqtt-shared/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to YAML config (omit to use HA_REST_URL / HA_TOKEN)")
	flag.Parse()

	// Cancel on interrupt signals so a hanging instance can be aborted
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the discovery pass, separated from main for testability.
func run(ctx context.Context, configPath string) error {
	log := logging.Default()

	result, err := discover(ctx, configPath, log)
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// discover resolves the connection source and runs one full pass.
func discover(ctx context.Context, configPath string, log *logging.Logger) (*ha.DiscoveryResult, error) {
	if configPath == "" {
		log.Info("no config file given, using environment", "var", ha.EnvRESTURL)
		return ha.DiscoverFromEnvironment(ctx, false)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath)

	conn, err := ha.NewConnection(ha.Config{
		BaseURL: cfg.HA.BaseURL,
		Token:   cfg.HA.Token,
		WSPath:  cfg.HA.WSPath,
		Timeout: cfg.GetHATimeout(),
	})
	if err != nil {
		return nil, err
	}

	log.Info("running discovery", "base_url", conn.RESTBaseURL())
	return conn.DiscoverAll(ctx, false)
}
