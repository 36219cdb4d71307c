// Package config provides the layered options for reltime: built-in
// defaults, an ambient layer from the config file and RELTIME_* environment,
// and an override layer from command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/reltime/internal/locale"
	"github.com/zjrosen/reltime/internal/log"
	"github.com/zjrosen/reltime/internal/relative"
	"github.com/zjrosen/reltime/internal/tracing"
)

// ErrInvalidOption is wrapped by every validation failure.
var ErrInvalidOption = errors.New("invalid option")

// Config keys, shared by the YAML file, viper and the environment
// (RELTIME_ prefix, dots become underscores).
const (
	KeyLocales           = "locales"
	KeyStyle             = "style"
	KeyNumeric           = "numeric"
	KeyAllowFuture       = "allow_future"
	KeyHideSeconds       = "hide_seconds"
	KeyHideSecondsPast   = "hide_seconds_text.past"
	KeyHideSecondsFuture = "hide_seconds_text.future"
	KeyRoundStrategy     = "round_strategy"
	KeyTimeElement       = "time_element"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "RELTIME"

// HideSecondsText holds the replacement strings used while seconds are hidden.
type HideSecondsText struct {
	Past   *string `yaml:"past,omitempty"`
	Future *string `yaml:"future,omitempty"`
}

// Options is one configuration layer. Nil fields are unset and never shadow
// a lower layer.
type Options struct {
	Locales         []string        `yaml:"locales,omitempty"`
	Style           *string         `yaml:"style,omitempty"`
	Numeric         *string         `yaml:"numeric,omitempty"`
	AllowFuture     *bool           `yaml:"allow_future,omitempty"`
	HideSeconds     *bool           `yaml:"hide_seconds,omitempty"`
	HideSecondsText HideSecondsText `yaml:"hide_seconds_text,omitempty"`
	RoundStrategy   *string         `yaml:"round_strategy,omitempty"`
	TimeElement     *bool           `yaml:"time_element,omitempty"`
}

// IsZero reports whether no field of o is set.
func (o Options) IsZero() bool {
	return len(o.Locales) == 0 && o.Style == nil && o.Numeric == nil &&
		o.AllowFuture == nil && o.HideSeconds == nil &&
		o.HideSecondsText.Past == nil && o.HideSecondsText.Future == nil &&
		o.RoundStrategy == nil && o.TimeElement == nil
}

// Resolved is a fully populated configuration.
type Resolved struct {
	// Locales is the preference list; empty means the environment preference.
	Locales     []string
	Format      locale.FormatOptions
	AllowFuture bool
	HideSeconds bool
	// PastText and FutureText replace the "1 minute" fallback while seconds
	// are hidden. Nil means unset; an empty string is used as is.
	PastText      *string
	FutureText    *string
	RoundStrategy relative.RoundStrategy
	TimeElement   bool
}

// Ptr returns a pointer to v, for building layers in code.
func Ptr[T any](v T) *T {
	return &v
}

// Defaults returns the bottom layer.
func Defaults() Options {
	return Options{
		Style:         Ptr(string(locale.StyleLong)),
		Numeric:       Ptr(string(locale.NumericAlways)),
		AllowFuture:   Ptr(false),
		HideSeconds:   Ptr(true),
		RoundStrategy: Ptr(string(relative.RoundDefault)),
		TimeElement:   Ptr(true),
	}
}

// Merge combines layers from lowest to highest precedence. A field set in a
// later layer wins.
func Merge(layers ...Options) Options {
	var out Options
	for _, l := range layers {
		if len(l.Locales) > 0 {
			out.Locales = append([]string(nil), l.Locales...)
		}
		pick(&out.Style, l.Style)
		pick(&out.Numeric, l.Numeric)
		pick(&out.AllowFuture, l.AllowFuture)
		pick(&out.HideSeconds, l.HideSeconds)
		pick(&out.HideSecondsText.Past, l.HideSecondsText.Past)
		pick(&out.HideSecondsText.Future, l.HideSecondsText.Future)
		pick(&out.RoundStrategy, l.RoundStrategy)
		pick(&out.TimeElement, l.TimeElement)
	}
	return out
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// Validate rejects unknown styles and numeric modes. Unknown round strategies
// are accepted and only logged; they fall back to the default.
func Validate(o Options) error {
	if o.Style != nil {
		if _, err := locale.ParseStyle(*o.Style); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidOption, KeyStyle, err)
		}
	}
	if o.Numeric != nil {
		if _, err := locale.ParseNumeric(*o.Numeric); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidOption, KeyNumeric, err)
		}
	}
	if o.RoundStrategy != nil && !relative.RoundStrategy(strings.ToLower(strings.TrimSpace(*o.RoundStrategy))).Known() {
		log.Warn(log.CatConfig, "Unknown round strategy, using default",
			"value", *o.RoundStrategy, "default", relative.RoundDefault)
	}
	return nil
}

// Resolve validates o and fills every unset field from Defaults.
func Resolve(o Options) (Resolved, error) {
	if err := Validate(o); err != nil {
		return Resolved{}, err
	}
	m := Merge(Defaults(), o)

	style, _ := locale.ParseStyle(*m.Style)
	numeric, _ := locale.ParseNumeric(*m.Numeric)

	r := Resolved{
		Locales:       m.Locales,
		Format:        locale.FormatOptions{Style: style, Numeric: numeric},
		AllowFuture:   *m.AllowFuture,
		HideSeconds:   *m.HideSeconds,
		RoundStrategy: relative.ParseRoundStrategy(*m.RoundStrategy),
		TimeElement:   *m.TimeElement,
	}
	if m.HideSecondsText.Past != nil {
		r.PastText = Ptr(*m.HideSecondsText.Past)
	}
	if m.HideSecondsText.Future != nil {
		r.FutureText = Ptr(*m.HideSecondsText.Future)
	}
	return r, nil
}

// NewViper returns a viper instance bound to the RELTIME_* environment.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		KeyLocales, KeyStyle, KeyNumeric, KeyAllowFuture, KeyHideSeconds,
		KeyHideSecondsPast, KeyHideSecondsFuture, KeyRoundStrategy, KeyTimeElement,
	} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the ambient layer from v. Only keys present in the config file
// or the environment are set.
func Load(v *viper.Viper) (Options, error) {
	var o Options

	if v.IsSet(KeyLocales) {
		o.Locales = splitLocales(v.Get(KeyLocales))
	}
	o.Style = getString(v, KeyStyle)
	o.Numeric = getString(v, KeyNumeric)
	o.HideSecondsText.Past = getString(v, KeyHideSecondsPast)
	o.HideSecondsText.Future = getString(v, KeyHideSecondsFuture)
	o.RoundStrategy = getString(v, KeyRoundStrategy)

	var err error
	if o.AllowFuture, err = getBool(v, KeyAllowFuture); err != nil {
		return Options{}, err
	}
	if o.HideSeconds, err = getBool(v, KeyHideSeconds); err != nil {
		return Options{}, err
	}
	if o.TimeElement, err = getBool(v, KeyTimeElement); err != nil {
		return Options{}, err
	}

	if err := Validate(o); err != nil {
		return Options{}, err
	}
	log.Debug(log.CatConfig, "Loaded ambient options", "file", v.ConfigFileUsed(), "locales", o.Locales)
	return o, nil
}

// LoadTracing reads the tracing section, starting from tracing.DefaultConfig.
func LoadTracing(v *viper.Viper) (tracing.Config, error) {
	cfg := tracing.DefaultConfig()
	if v.IsSet("tracing") {
		if err := v.UnmarshalKey("tracing", &cfg); err != nil {
			return cfg, fmt.Errorf("%w: tracing: %w", ErrInvalidOption, err)
		}
	}
	if cfg.Enabled && cfg.Exporter == "file" && cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	return cfg, nil
}

func getString(v *viper.Viper, key string) *string {
	if !v.IsSet(key) {
		return nil
	}
	return Ptr(v.GetString(key))
}

func getBool(v *viper.Viper, key string) (*bool, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	switch raw := v.Get(key).(type) {
	case bool:
		return Ptr(raw), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes", "on":
			return Ptr(true), nil
		case "false", "0", "no", "off":
			return Ptr(false), nil
		}
		return nil, fmt.Errorf("%w: %s: not a boolean: %q", ErrInvalidOption, key, raw)
	default:
		return nil, fmt.Errorf("%w: %s: not a boolean: %v", ErrInvalidOption, key, raw)
	}
}

// splitLocales accepts a YAML list or a comma/space separated string.
func splitLocales(raw any) []string {
	var parts []string
	switch val := raw.(type) {
	case []any:
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
	case []string:
		parts = val
	case string:
		parts = strings.FieldsFunc(val, func(r rune) bool { return r == ',' || r == ' ' })
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DefaultPath returns ~/.config/reltime/config.yaml, or empty if the home
// directory is unavailable.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "reltime", "config.yaml")
}

// DefaultTracesFilePath returns ~/.config/reltime/traces/traces.jsonl, or
// empty if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "reltime", "traces", "traces.jsonl")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# reltime configuration

# Locale preference, most preferred first. Empty uses LANGUAGE / LC_ALL /
# LC_MESSAGES / LANG. Bundled: en, de, fr, es, it, ru, zh-Hans, zh-Hant
# locales: [de, en]

# Text style: long (default), short or narrow
style: long

# numeric: always prints "1 day ago"; auto prints "yesterday"
numeric: always

# Show "in 3 hours" for timestamps in the future instead of "0 seconds ago"
allow_future: false

# Replace second-level output with "1 minute ago" / "in 1 minute"
hide_seconds: true

# Custom text while seconds are hidden
# hide_seconds_text:
#   past: "just now"
#   future: "any moment"

# Rounding: round (default), floor or ceil
round_strategy: round

# Render the tooltip and ISO timestamp with the text
time_element: true

# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/reltime/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
