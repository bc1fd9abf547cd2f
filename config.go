package symroot

import (
	"github.com/njchilds90/symroot/internal/fault"
	"github.com/njchilds90/symroot/roots"
)

// DefaultMaxOrder is the derivative and series order cap used when
// Config.MaxOrder is unset.
const DefaultMaxOrder = 64

// Config holds the tunables of the simplifier and the root solver. The zero
// value is not useful; start from DefaultConfig.
type Config struct {
	// MaxPowerExpansion is the largest integer exponent a polynomial is
	// expanded to during simplification.
	MaxPowerExpansion int `json:"max_power_expansion" yaml:"max_power_expansion" mapstructure:"max_power_expansion"`
	// FoldTranscendental allows constant folding that leaves exact
	// arithmetic, such as sin(1) or 2^(1/2).
	FoldTranscendental bool `json:"fold_transcendental" yaml:"fold_transcendental" mapstructure:"fold_transcendental"`
	// MaxOrder caps repeated differentiation and series order requested
	// through tool calls and the CLI. Zero or less means DefaultMaxOrder.
	MaxOrder int `json:"max_order" yaml:"max_order" mapstructure:"max_order"`
	// Roots bounds isolation and refinement.
	Roots roots.Config `json:"roots" yaml:"roots" mapstructure:"roots"`
}

func DefaultConfig() Config {
	return Config{
		MaxPowerExpansion:  16,
		FoldTranscendental: true,
		MaxOrder:           DefaultMaxOrder,
		Roots:              roots.DefaultConfig(),
	}
}

// CheckOrder reports whether n repeated derivatives or series terms are
// within the configured cap.
func (c Config) CheckOrder(n int) error {
	limit := c.MaxOrder
	if limit <= 0 {
		limit = DefaultMaxOrder
	}
	if n > limit {
		return fault.Wrap(ErrOrderLimit, "order %d, max %d", n, limit)
	}
	return nil
}
