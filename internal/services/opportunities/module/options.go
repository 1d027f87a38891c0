package module

import "dealflow/internal/platform/config"

// Options holds configuration settings for the opportunities module
type Options struct {
	HardLimit int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	of := cfg.Prefix("CORE_OPPS_")
	return Options{
		HardLimit: of.MayInt("HARD_LIMIT", 500),
	}
}
