package indicator

// Kind identifies an indicator family.
type Kind string

const (
	KindPrice      Kind = "price"
	KindSMA        Kind = "sma"
	KindEMA        Kind = "ema"
	KindRSI        Kind = "rsi"
	KindMACD       Kind = "macd"
	KindBollinger  Kind = "bollinger"
	KindStochastic Kind = "stochastic"
	KindATR        Kind = "atr"
)

// Field selects one output of a multi-output indicator.
type Field string

const (
	// FieldLine is the primary output: the MACD line, the smoothed %K,
	// the Bollinger middle band, or the sole output of single-series
	// indicators.
	FieldLine      Field = "line"
	FieldSignal    Field = "signal"
	FieldHistogram Field = "histogram"
	FieldUpper     Field = "upper"
	FieldMiddle    Field = "middle"
	FieldLower     Field = "lower"
	FieldD         Field = "d"
)

// Spec describes one derived series: an indicator kind plus its parameters.
// Two specs identify the same series iff they are equal after Normalize,
// which makes Spec usable as a memoization key.
type Spec struct {
	Kind         Kind    `yaml:"indicator" json:"indicator" validate:"required"`
	Field        Field   `yaml:"field,omitempty" json:"field,omitempty"`
	Period       int     `yaml:"period,omitempty" json:"period,omitempty" validate:"gte=0"`
	FastPeriod   int     `yaml:"fastPeriod,omitempty" json:"fastPeriod,omitempty" validate:"gte=0"`
	SlowPeriod   int     `yaml:"slowPeriod,omitempty" json:"slowPeriod,omitempty" validate:"gte=0"`
	SignalPeriod int     `yaml:"signalPeriod,omitempty" json:"signalPeriod,omitempty" validate:"gte=0"`
	SmoothK      int     `yaml:"smoothK,omitempty" json:"smoothK,omitempty" validate:"gte=0"`
	SmoothD      int     `yaml:"smoothD,omitempty" json:"smoothD,omitempty" validate:"gte=0"`
	StdDevMult   float64 `yaml:"stdDev,omitempty" json:"stdDev,omitempty" validate:"gte=0"`
}

// Normalize fills kind-specific defaults and zeroes parameters the kind does
// not use, so equivalent specs compare equal regardless of how sparsely the
// caller filled them in.
func (s Spec) Normalize() Spec {
	n := Spec{Kind: s.Kind, Field: s.Field}

	switch s.Kind {
	case KindPrice:
		n.Field = FieldLine

	case KindSMA, KindEMA:
		n.Field = FieldLine
		n.Period = defaultInt(s.Period, 9)

	case KindRSI:
		n.Field = FieldLine
		n.Period = defaultInt(s.Period, 14)

	case KindATR:
		n.Field = FieldLine
		n.Period = defaultInt(s.Period, 14)

	case KindMACD:
		if n.Field == "" {
			n.Field = FieldLine
		}

		n.FastPeriod = defaultInt(s.FastPeriod, 12)
		n.SlowPeriod = defaultInt(s.SlowPeriod, 26)
		n.SignalPeriod = defaultInt(s.SignalPeriod, 9)

	case KindBollinger:
		if n.Field == "" || n.Field == FieldLine {
			n.Field = FieldMiddle
		}

		n.Period = defaultInt(s.Period, 20)

		n.StdDevMult = s.StdDevMult
		if n.StdDevMult == 0 {
			n.StdDevMult = 2
		}

	case KindStochastic:
		if n.Field == "" {
			n.Field = FieldLine
		}

		n.Period = defaultInt(s.Period, 14)
		n.SmoothK = defaultInt(s.SmoothK, 3)
		n.SmoothD = defaultInt(s.SmoothD, 3)
	}

	return n
}

// WithField returns a copy of the spec addressing another output of the same
// computation.
func (s Spec) WithField(field Field) Spec {
	s.Field = field

	return s
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}

	return value
}
