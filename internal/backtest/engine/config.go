package engine

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/quantpilot/backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SizingMode selects how the engine converts available capital into a
// position size.
type SizingMode string

const (
	// SizingFixed opens a fixed unit count per entry.
	SizingFixed SizingMode = "fixed"
	// SizingPercent spends a percentage of current capital per entry.
	SizingPercent SizingMode = "percent"
	// SizingRisk is accepted for forward compatibility and currently sizes
	// like SizingPercent.
	SizingRisk SizingMode = "risk"
)

// AllSizingModes lists the accepted sizing modes for schema generation.
var AllSizingModes = []any{
	SizingFixed,
	SizingPercent,
	SizingRisk,
}

// Config holds the simulation parameters of one backtest run.
type Config struct {
	InitialCapital float64    `yaml:"initial_capital" json:"initialCapital" jsonschema:"title=Initial Capital,description=Starting capital in quote currency,minimum=0" validate:"required,gt=0"`
	Commission     float64    `yaml:"commission" json:"commission" jsonschema:"title=Commission,description=Commission rate per fill as a fraction (0.001 = 0.1%),minimum=0" validate:"gte=0,lt=1"`
	Slippage       float64    `yaml:"slippage" json:"slippage" jsonschema:"title=Slippage,description=Slippage rate applied against the trade direction as a fraction,minimum=0" validate:"gte=0,lt=1"`
	PositionSizing SizingMode `yaml:"position_sizing" json:"positionSizing" jsonschema:"title=Position Sizing,description=How to size new positions" validate:"required,oneof=fixed percent risk"`
	PositionSize   float64    `yaml:"position_size" json:"positionSize" jsonschema:"title=Position Size,description=Unit count for fixed sizing or percentage of capital for percent sizing,minimum=0" validate:"required,gt=0"`
	MaxPositions   int        `yaml:"max_positions" json:"maxPositions" jsonschema:"title=Max Positions,description=Maximum number of concurrently open positions,minimum=1" validate:"required,gte=1"`
}

// DefaultConfig returns the configuration used when the caller supplies none:
// 10k starting capital, 0.1% commission, 0.05% slippage, 95% of capital per
// entry, one position at a time.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 10000,
		Commission:     0.001,
		Slippage:       0.0005,
		PositionSizing: SizingPercent,
		PositionSize:   95,
		MaxPositions:   1,
	}
}

// Validate checks the config against its declared constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, errors.ErrCodeBacktestConfigError, "invalid backtest config")
	}

	if c.PositionSizing == SizingPercent && c.PositionSize > 100 {
		return errors.Newf(errors.ErrCodeBacktestConfigError,
			"percent sizing cannot exceed 100, got %v", c.PositionSize)
	}

	return nil
}

// ParseConfig parses a YAML document into a Config, filling defaults for
// omitted fields and validating the result.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrCodeBacktestConfigError, "failed to parse backtest config")
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if strings.Contains(t.String(), "engine.SizingMode") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: AllSizingModes,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-config"
	schema.Description = "Configuration schema for the backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates an indented JSON schema string for Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
