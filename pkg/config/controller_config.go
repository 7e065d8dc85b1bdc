package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"sigs.k8s.io/pod-graceful-drain/pkg/gracefuldrain"
)

const (
	flagLogLevel    = "log-level"
	defaultLogLevel = "info"
)

// ControllerConfig contains the controller-wide configuration: process
// logging, controller-runtime bootstrap options, and the drain engine's own
// behavior flags.
type ControllerConfig struct {
	// Log level for the controller logs: info or debug.
	LogLevel string

	// Configuration for the controller-runtime manager.
	RuntimeConfig RuntimeConfig

	// Configuration for the pod-graceful-drain engine itself.
	GracefulDrainConfig gracefuldrain.Config
}

// BindFlags binds the command line flags to the fields in the config object.
func (cfg *ControllerConfig) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfg.LogLevel, flagLogLevel, defaultLogLevel,
		"Set the controller log level - info(default), debug")

	cfg.RuntimeConfig.BindFlags(fs)
	cfg.GracefulDrainConfig.BindFlags(fs)
}

// Validate the controller configuration.
func (cfg *ControllerConfig) Validate() error {
	if cfg.LogLevel != "info" && cfg.LogLevel != "debug" {
		return errors.Errorf("invalid log level %s, must be one of: info, debug", cfg.LogLevel)
	}
	if err := cfg.GracefulDrainConfig.Validate(); err != nil {
		return errors.Wrap(err, "invalid graceful drain configuration")
	}
	return nil
}
