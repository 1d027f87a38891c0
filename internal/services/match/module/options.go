package module

import "dealflow/internal/platform/config"

// Options holds configuration settings for the match module
type Options struct {
	Workers int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("CORE_MATCH_")
	return Options{
		Workers: mf.MayInt("WORKERS", 4),
	}
}
