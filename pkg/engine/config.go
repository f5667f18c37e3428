package engine

import (
	"fmt"
	"runtime"

	"github.com/kelseyhightower/envconfig"

	"github.com/Kritika75/LambdaCalc/pkg/calculus"
	"github.com/Kritika75/LambdaCalc/pkg/expr"
	"github.com/Kritika75/LambdaCalc/pkg/quadrature"
)

// EnvPrefix is prepended to every environment variable read by LoadConfig.
const EnvPrefix = "LAMBDACALC"

// Config holds the kernel bounds and the batch runner settings.
type Config struct {
	Workers          int     `envconfig:"WORKERS"`
	Format           string  `envconfig:"FORMAT" default:"text"` // "text" or "json"
	Variable         string  `envconfig:"VARIABLE" default:"x"`
	LimitMaxLHopital int     `envconfig:"LIMIT_MAX_LHOPITAL" default:"5"`
	LimitTolerance   float64 `envconfig:"LIMIT_TOLERANCE" default:"1e-6"`
	QuadratureMethod string  `envconfig:"QUADRATURE_METHOD" default:"simpson"`
	QuadratureSteps  int     `envconfig:"QUADRATURE_STEPS" default:"1000"`
	LogLevel         string  `envconfig:"LOG_LEVEL" default:"info"`
	LogDev           bool    `envconfig:"LOG_DEV" default:"false"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	lim := calculus.DefaultLimitConfig()
	def := calculus.DefaultDefiniteConfig()
	return Config{
		Workers:          runtime.NumCPU(),
		Format:           "text",
		Variable:         expr.DefaultVariable,
		LimitMaxLHopital: lim.MaxLHopital,
		LimitTolerance:   lim.Tolerance,
		QuadratureMethod: def.Method,
		QuadratureSteps:  def.Steps,
		LogLevel:         "info",
	}
}

// LoadConfig reads LAMBDACALC_* environment variables over the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}

// Validate reports settings the kernel cannot run with.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (available: text, json)", c.Format)
	}
	if _, err := quadrature.Get(c.QuadratureMethod); err != nil {
		return err
	}
	if c.QuadratureSteps <= 0 {
		return fmt.Errorf("quadrature steps must be positive, got %d", c.QuadratureSteps)
	}
	if c.LimitMaxLHopital < 0 {
		return fmt.Errorf("L'Hopital rounds must be non-negative, got %d", c.LimitMaxLHopital)
	}
	if c.LimitTolerance <= 0 {
		return fmt.Errorf("limit tolerance must be positive, got %g", c.LimitTolerance)
	}
	return nil
}

// LimitConfig returns the limit evaluator bounds.
func (c Config) LimitConfig() calculus.LimitConfig {
	lim := calculus.DefaultLimitConfig()
	lim.MaxLHopital = c.LimitMaxLHopital
	lim.Tolerance = c.LimitTolerance
	return lim
}

// DefiniteConfig returns the quadrature fallback settings.
func (c Config) DefiniteConfig() calculus.DefiniteConfig {
	return calculus.DefiniteConfig{Method: c.QuadratureMethod, Steps: c.QuadratureSteps}
}
