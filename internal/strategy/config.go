package strategy

import (
	"encoding/json"

	"github.com/quantpilot/backtest/internal/version"
	"github.com/quantpilot/backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the serialized form of a strategy: a preset name (or
// "generic_rules") plus variant-specific parameters. It is accepted as YAML
// or JSON; params keys are camelCase in both. Configs may come from a named
// preset mapper or an external natural-language parser; the core only cares
// about the shape.
type Config struct {
	Version  string         `yaml:"version,omitempty" json:"version,omitempty"`
	Strategy string         `yaml:"strategy" json:"strategy"`
	Params   map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// ParseConfig parses a YAML or JSON strategy config and gates it on the
// library version. An omitted version is treated as the current one.
func ParseConfig(data []byte) (Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrCodeStrategyConfigError, "failed to parse strategy config")
	}

	if config.Strategy == "" {
		return Config{}, errors.New(errors.ErrCodeStrategyConfigError, "strategy config is missing a strategy name")
	}

	if config.Version == "" {
		config.Version = version.GetVersion()
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), config.Version); err != nil {
		return Config{}, err
	}

	return config, nil
}

// decodeParams maps the loosely typed params block onto a variant's typed
// parameter struct. Fields absent from the config keep the defaults the
// caller pre-filled in out.
func (c Config) decodeParams(out any) error {
	if c.Params == nil {
		return nil
	}

	raw, err := json.Marshal(c.Params)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStrategyConfigError, "failed to encode strategy params")
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, errors.ErrCodeStrategyConfigError, "failed to decode strategy params")
	}

	return nil
}
