package localizer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-backed configuration surface.
// All fields map to options; zero values defer to the option defaults.
type Config struct {
	DefaultLocale string            `env:"LOCALIZER_DEFAULT_LOCALE" envDefault:"en"`
	ForceLocale   string            `env:"LOCALIZER_FORCE_LOCALE"`
	Locales       []string          `env:"LOCALIZER_LOCALES" envSeparator:","`
	BasePath      string            `env:"LOCALIZER_BASE_PATH" envDefault:"/assets/locales"`
	Fingerprints  map[string]string `env:"LOCALIZER_FINGERPRINTS" envSeparator:","`
	AutoInit      bool              `env:"LOCALIZER_AUTO_INIT" envDefault:"true"`
}

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("localizer: parsing config: %w", err)
	}
	return cfg, nil
}

// Options converts the config into construction options. Additional
// options may be appended to override or extend it:
//
//	cfg, _ := localizer.LoadConfig()
//	m, err := localizer.New(append(cfg.Options(), localizer.WithTransport(tr))...)
func (c Config) Options() []Option {
	opts := []Option{
		WithAutoInit(c.AutoInit),
	}
	if c.DefaultLocale != "" {
		opts = append(opts, WithDefaultLocale(c.DefaultLocale))
	}
	if c.ForceLocale != "" {
		opts = append(opts, WithForceLocale(c.ForceLocale))
	}
	if len(c.Locales) > 0 {
		opts = append(opts, WithLocales(c.Locales...))
	}
	if c.BasePath != "" {
		opts = append(opts, WithBasePath(c.BasePath))
	}
	if len(c.Fingerprints) > 0 {
		opts = append(opts, WithFingerprints(c.Fingerprints))
	}
	return opts
}
