// Package config handles loading and validating hub configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (tokens, passwords) should be set via environment
//     variables rather than the config file
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/hub.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hub.ID)
//
// Hubs deployed without a config file can use config.FromEnvironment,
// which relies on defaults plus HA_REST_URL, HA_TOKEN and the
// CENTRALCORE_* variables.
package config
