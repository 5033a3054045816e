package config

import "github.com/caarlos0/env/v11"

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadEnvironment parses the configuration from environ only, ignoring the
// process environment.
func LoadEnvironment(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
