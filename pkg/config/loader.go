package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides
const EnvPrefix = "NOX_"

// LoadConfiguration layers the embedded defaults, the settings file at path
// (skipped if it does not exist), NOX_* environment variables and finally
// overrides, which are dotted keys such as "sync.jobs" usually set from
// command line flags
func LoadConfiguration(path string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(embeddedDefaults{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User settings file if it exists
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", path)
			}
			logger.Debug().Str("file", path).Msg("Loaded settings file")
		}
	}

	// 3. Env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := unmarshal(k, "", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings nox cannot work with
func (c *Config) Validate() error {
	if c.Fetch.Retries < 1 {
		return errors.Newf(errors.ErrConfigValid, "fetch.retries must be at least 1, got %d", c.Fetch.Retries)
	}
	if c.Fetch.Backoff < 0 || c.Fetch.Timeout < 0 {
		return errors.New(errors.ErrConfigValid, "fetch durations cannot be negative")
	}
	if c.Sync.Jobs < 0 {
		return errors.Newf(errors.ErrConfigValid, "sync.jobs cannot be negative, got %d", c.Sync.Jobs)
	}
	return nil
}

func unmarshal(k *koanf.Koanf, path string, out interface{}) error {
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf(path, out, unmarshalConf); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return nil
}

// parserFor picks the koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q (use .toml or .yaml)", filepath.Ext(path)).
			WithDetail("file", path)
	}
}
