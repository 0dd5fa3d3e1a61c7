package config

import "go.uber.org/zap"

// NewLogger builds a development logger when debugging and a production logger otherwise
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg != nil && cfg.DebugEnabled {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
