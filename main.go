// Command lambdacalc evaluates, differentiates, integrates and takes limits
// of expressions, and runs polynomial, complex, matrix, number-theory and
// statistics operations, one at a time or as a batch file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kritika75/LambdaCalc/pkg/engine"
	"github.com/Kritika75/LambdaCalc/pkg/expr"
	"github.com/Kritika75/LambdaCalc/pkg/logging"
	"github.com/Kritika75/LambdaCalc/pkg/quadrature"
)

// Set via -ldflags at build time.
var version = "dev"

var (
	cfg    engine.Config
	logger *logging.Logger
	eng    *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:               "lambdacalc",
	Short:             "Symbolic and numeric math kernel",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.Version = version

	pf := rootCmd.PersistentFlags()
	pf.StringP("variable", "v", "", "free variable name (default x, env LAMBDACALC_VARIABLE)")
	pf.String("format", "", "output format for batch: text, json (env LAMBDACALC_FORMAT)")
	pf.Int("workers", 0, "parallel workers for batch (default NumCPU, env LAMBDACALC_WORKERS)")
	pf.String("log-level", "", "log level: debug, info, warn, error (env LAMBDACALC_LOG_LEVEL)")
	pf.Bool("dev", false, "human-readable development logging (env LAMBDACALC_LOG_DEV)")
	pf.String("method", "", "quadrature fallback: "+strings.Join(quadrature.Names(), ", ")+" (env LAMBDACALC_QUADRATURE_METHOD)")
	pf.Int("steps", 0, "quadrature subintervals (env LAMBDACALC_QUADRATURE_STEPS)")

	evalCmd.Flags().Float64("x", 0, "value bound to the variable")
	diffCmd.Flags().Bool("latex", false, "print LaTeX instead of plain text")
	diffCmd.Flags().IntP("order", "n", 1, "derivative order")
	integrateCmd.Flags().Bool("latex", false, "print LaTeX instead of plain text")
	limitCmd.Flags().StringP("direction", "d", "both", "approach direction: both, left, right")

	polyCmd.Flags().Float64Slice("a", nil, "first polynomial coefficients, lowest degree first")
	polyCmd.Flags().Float64Slice("b", nil, "second polynomial coefficients")
	polyCmd.Flags().Float64("x", 0, "evaluation point")
	polyCmd.Flags().Float64("constant", 0, "integration constant")

	complexCmd.Flags().Float64Slice("a", []float64{0, 0}, "first operand as real,imag")
	complexCmd.Flags().Float64Slice("b", []float64{0, 0}, "second operand as real,imag")

	matrixCmd.Flags().String("a", "", "first matrix, rows separated by ';' (e.g. \"1,2;3,4\")")
	matrixCmd.Flags().String("b", "", "second matrix")

	rootCmd.AddCommand(evalCmd, diffCmd, integrateCmd, definiteCmd, limitCmd,
		polyCmd, complexCmd, matrixCmd, numberCmd, statsCmd, batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup layers flags over environment over defaults and builds the engine.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = engine.LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("variable") {
		cfg.Variable, _ = flags.GetString("variable")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("dev") {
		cfg.LogDev, _ = flags.GetBool("dev")
	}
	if flags.Changed("method") {
		cfg.QuadratureMethod, _ = flags.GetString("method")
	}
	if flags.Changed("steps") {
		cfg.QuadratureSteps, _ = flags.GetInt("steps")
	}

	logger, err = logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		return err
	}
	eng, err = engine.New(cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("configured", zap.Any("config", cfg))
	return nil
}

func variable(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString("variable")
	return v
}

func render(cmd *cobra.Command, node expr.ExprNode) {
	if latex, _ := cmd.Flags().GetBool("latex"); latex {
		fmt.Fprintln(cmd.OutOrStdout(), node.LaTeX())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), node.String())
}

var evalCmd = &cobra.Command{
	Use:   "eval EXPR",
	Short: "Evaluate an expression, optionally at --x",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var x *float64
		if cmd.Flags().Changed("x") {
			v, _ := cmd.Flags().GetFloat64("x")
			x = &v
		}
		v, err := eng.Kernel().Evaluate(args[0], variable(cmd), x)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff EXPR",
	Short: "Differentiate an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("order")
		d, err := eng.Kernel().NthDerivative(args[0], variable(cmd), n)
		if err != nil {
			return err
		}
		render(cmd, d)
		return nil
	},
}

var integrateCmd = &cobra.Command{
	Use:   "integrate EXPR",
	Short: "Find an antiderivative",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := eng.Kernel().Antiderivative(args[0], variable(cmd))
		if err != nil {
			return err
		}
		render(cmd, f)
		return nil
	},
}

var definiteCmd = &cobra.Command{
	Use:   "definite EXPR A B",
	Short: "Integrate over [A, B]",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		bounds, err := parseFloats(args[1:])
		if err != nil {
			return err
		}
		r, err := eng.Kernel().DefiniteIntegral(args[0], variable(cmd), bounds[0], bounds[1])
		if err != nil {
			return err
		}
		out := strconv.FormatFloat(r.Value, 'g', -1, 64)
		if r.Approximate {
			logger.Info("no antiderivative found, value is approximate", zap.String("method", r.Method))
			out += fmt.Sprintf("  (approximate, %s)", r.Method)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var limitCmd = &cobra.Command{
	Use:   "limit EXPR POINT",
	Short: "Evaluate a limit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("point: %w", err)
		}
		dir, _ := cmd.Flags().GetString("direction")
		s, err := engine.FormatLimit(eng.Kernel().ComputeLimit(args[0], variable(cmd), p, dir))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

var polyCmd = &cobra.Command{
	Use:       "poly OP",
	Short:     "Polynomial arithmetic: add, subtract, multiply, divide, derivative, integrate, evaluate",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"add", "subtract", "multiply", "divide", "derivative", "integrate", "evaluate"},
	RunE: func(cmd *cobra.Command, args []string) error {
		req := engine.Request{Operation: "poly." + args[0]}
		req.CoefficientsA, _ = cmd.Flags().GetFloat64Slice("a")
		if cmd.Flags().Changed("b") {
			req.CoefficientsB, _ = cmd.Flags().GetFloat64Slice("b")
		}
		if cmd.Flags().Changed("x") {
			x, _ := cmd.Flags().GetFloat64("x")
			req.X = &x
		}
		req.Constant, _ = cmd.Flags().GetFloat64("constant")
		return dispatch(cmd, req)
	},
}

var complexCmd = &cobra.Command{
	Use:       "complex OP",
	Short:     "Complex arithmetic: add, subtract, multiply, divide, magnitude, conjugate, phase",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"add", "subtract", "multiply", "divide", "magnitude", "conjugate", "phase"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _ := cmd.Flags().GetFloat64Slice("a")
		b, _ := cmd.Flags().GetFloat64Slice("b")
		za, err := complexParts("a", a)
		if err != nil {
			return err
		}
		zb, err := complexParts("b", b)
		if err != nil {
			return err
		}
		return dispatch(cmd, engine.Request{
			Operation: "complex." + args[0],
			RealA:     za[0],
			ImagA:     za[1],
			RealB:     zb[0],
			ImagB:     zb[1],
		})
	},
}

var matrixCmd = &cobra.Command{
	Use:       "matrix OP",
	Short:     "Matrix operations: add, subtract, multiply, transpose, determinant, inverse",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"add", "subtract", "multiply", "transpose", "determinant", "inverse"},
	RunE: func(cmd *cobra.Command, args []string) error {
		req := engine.Request{Operation: "matrix." + args[0]}
		for name, dst := range map[string]*[][]float64{"a": &req.MatrixA, "b": &req.MatrixB} {
			if !cmd.Flags().Changed(name) {
				continue
			}
			s, _ := cmd.Flags().GetString(name)
			m, err := parseMatrix(s)
			if err != nil {
				return fmt.Errorf("--%s: %w", name, err)
			}
			*dst = m
		}
		return dispatch(cmd, req)
	},
}

var numberCmd = &cobra.Command{
	Use:       "number OP A [B]",
	Short:     "Number theory: gcd A B, lcm A B, is_prime N, primes LO HI",
	Args:      cobra.RangeArgs(2, 3),
	ValidArgs: []string{"gcd", "lcm", "is_prime", "primes"},
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, err := parseFloats(args[1:])
		if err != nil {
			return err
		}
		req := engine.Request{Operation: args[0], A: &vals[0]}
		if len(vals) > 1 {
			req.B = &vals[1]
		}
		return dispatch(cmd, req)
	},
}

var statsCmd = &cobra.Command{
	Use:       "stats OP X...",
	Short:     "Statistics: mean, stddev, variance",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: []string{"mean", "stddev", "variance"},
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, err := parseFloats(args[1:])
		if err != nil {
			return err
		}
		return dispatch(cmd, engine.Request{Operation: args[0], Numbers: vals})
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Run a YAML or JSON list of requests ('-' reads stdin)",
	Long: "Run a YAML or JSON list of requests in parallel.\n\nOperations: " +
		strings.Join(engine.Ops(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		reqs, err := engine.LoadRequests(in)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report := eng.Run(ctx, reqs)
		if err := engine.Write(cmd.OutOrStdout(), cfg.Format, report); err != nil {
			return err
		}
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d requests failed", report.Failed, len(reqs))
		}
		return nil
	},
}

func dispatch(cmd *cobra.Command, req engine.Request) error {
	res := eng.Kernel().Dispatch(context.Background(), req)
	if err := res.Err(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), engine.FormatValue(res.Value))
	return nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func complexParts(name string, parts []float64) ([2]float64, error) {
	switch len(parts) {
	case 1:
		return [2]float64{parts[0], 0}, nil
	case 2:
		return [2]float64{parts[0], parts[1]}, nil
	default:
		return [2]float64{}, fmt.Errorf("--%s wants real[,imag], got %d values", name, len(parts))
	}
}

// parseMatrix reads rows separated by ';' with comma-separated entries.
func parseMatrix(s string) ([][]float64, error) {
	var rows [][]float64
	for _, line := range strings.Split(s, ";") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseFloats(strings.Split(line, ","))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
