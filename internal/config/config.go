package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/jask/tabnav/nav"
)

// Config holds application configuration.
type Config struct {
	Views   ViewsConfig
	Nav     NavConfig
	Session SessionConfig
}

// ViewsConfig locates the view manifest. An empty path means the built-in
// view set.
type ViewsConfig struct {
	Manifest string
}

// NavConfig tunes the navigation core.
type NavConfig struct {
	DefaultView       string `mapstructure:"default_view"`
	TransitionDelayMS int    `mapstructure:"transition_delay_ms"`
	Observer          string
}

// SessionConfig holds demo session settings.
type SessionConfig struct {
	SignedIn bool `mapstructure:"signed_in"`
}

// TransitionDelay returns the configured transition-clear delay as a
// duration, falling back to the core default when unset.
func (n NavConfig) TransitionDelay() time.Duration {
	if n.TransitionDelayMS <= 0 {
		return nav.DefaultTransitionDelay
	}
	return time.Duration(n.TransitionDelayMS) * time.Millisecond
}

// BuildObserver resolves the configured observer name. Unknown names fail
// closed rather than silently dropping transition records.
func (n NavConfig) BuildObserver(logger *slog.Logger) (nav.TransitionObserver, error) {
	switch strings.ToLower(strings.TrimSpace(n.Observer)) {
	case "", "noop":
		return nav.NoopObserver{}, nil
	case "slog":
		if logger == nil {
			logger = slog.Default()
		}
		return nav.NewSlogObserver(logger), nil
	default:
		return nil, fmt.Errorf("config: unknown observer %q", n.Observer)
	}
}

// Load reads configuration from file and env. Env var overrides use prefix TABNAV_.
func Load() (Config, error) {
	return LoadFrom(afero.NewOsFs())
}

// LoadFrom is Load against an explicit filesystem, so tests run on an
// in-memory fs.
func LoadFrom(fs afero.Fs) (Config, error) {
	v := viper.New()
	v.SetFs(fs)

	// default values
	v.SetDefault("views.manifest", "")
	v.SetDefault("nav.default_view", "lobby")
	v.SetDefault("nav.transition_delay_ms", 150)
	v.SetDefault("nav.observer", "noop")
	v.SetDefault("session.signed_in", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TABNAV_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tabnav"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABNAV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
