// Package roots isolates and refines the real roots of single-variable
// polynomials.
//
// Isolation uses Sturm sequences and exact rational bisection. Refinement
// maps an isolating interval onto (0, inf) with a Möbius transform and walks
// the continued-fraction expansion of the root, accelerated by the LMQ lower
// bound. Polynomials of degree three or less are solved in closed form.
package roots

// Config bounds the work done by Isolate, Refine and Solve.
type Config struct {
	// Tolerance is the largest acceptable half-width of a refined root.
	Tolerance float64 `json:"tolerance" yaml:"tolerance" mapstructure:"tolerance"`
	// MaxIterations caps the refinement loop for a single root.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations" mapstructure:"max_iterations"`
	// MaxBisections caps the number of interval splits during isolation.
	MaxBisections int `json:"max_bisections" yaml:"max_bisections" mapstructure:"max_bisections"`
}

const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 1000
	DefaultMaxBisections = 10000
)

func DefaultConfig() Config {
	return Config{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		MaxBisections: DefaultMaxBisections,
	}
}

// withDefaults replaces unset or invalid fields with their defaults.
func (c Config) withDefaults() Config {
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.MaxBisections <= 0 {
		c.MaxBisections = DefaultMaxBisections
	}
	return c
}
