package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp    = errors.New("unknown operation")
	ErrMissingField = errors.New("missing field")
	ErrInvalidField = errors.New("invalid field")
	ErrNonFinite    = errors.New("result is not finite")
)

// Request is one kernel operation with its plain inputs. Only the fields
// the operation reads need to be set.
type Request struct {
	ID            string      `json:"id,omitempty" yaml:"id,omitempty"`
	Operation     string      `json:"operation" yaml:"operation"`
	Function      string      `json:"function,omitempty" yaml:"function,omitempty"`
	Variable      string      `json:"variable,omitempty" yaml:"variable,omitempty"`
	Point         *float64    `json:"point,omitempty" yaml:"point,omitempty"`
	Direction     string      `json:"direction,omitempty" yaml:"direction,omitempty"`
	CoefficientsA []float64   `json:"coefficientsA,omitempty" yaml:"coefficientsA,omitempty"`
	CoefficientsB []float64   `json:"coefficientsB,omitempty" yaml:"coefficientsB,omitempty"`
	X             *float64    `json:"x,omitempty" yaml:"x,omitempty"`
	Constant      float64     `json:"constant,omitempty" yaml:"constant,omitempty"`
	RealA         float64     `json:"realA,omitempty" yaml:"realA,omitempty"`
	ImagA         float64     `json:"imagA,omitempty" yaml:"imagA,omitempty"`
	RealB         float64     `json:"realB,omitempty" yaml:"realB,omitempty"`
	ImagB         float64     `json:"imagB,omitempty" yaml:"imagB,omitempty"`
	MatrixA       [][]float64 `json:"matrixA,omitempty" yaml:"matrixA,omitempty"`
	MatrixB       [][]float64 `json:"matrixB,omitempty" yaml:"matrixB,omitempty"`
	A             *float64    `json:"a,omitempty" yaml:"a,omitempty"`
	B             *float64    `json:"b,omitempty" yaml:"b,omitempty"`
	Numbers       []float64   `json:"numbers,omitempty" yaml:"numbers,omitempty"`
}

// Result is the outcome of one Request. Exactly one of Value and Error
// is meaningful.
type Result struct {
	ID          string        `json:"id"`
	Operation   string        `json:"operation"`
	Value       any           `json:"value,omitempty"`
	Approximate bool          `json:"approximate,omitempty"`
	Method      string        `json:"method,omitempty"`
	Error       string        `json:"error,omitempty"`
	Elapsed     time.Duration `json:"elapsed_ns"`

	err error
}

// Err returns the error behind Result.Error, if any.
func (r Result) Err() error { return r.err }

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.err == nil && r.Error == "" }

// PolyValue is a polynomial result: its coefficients, lowest degree
// first, and its rendering.
type PolyValue struct {
	Coefficients []float64 `json:"coefficients"`
	Text         string    `json:"text"`
}

func (p PolyValue) String() string { return p.Text }

// DivisionValue is the quotient and remainder of polynomial division.
type DivisionValue struct {
	Quotient  PolyValue `json:"quotient"`
	Remainder PolyValue `json:"remainder"`
}

func (d DivisionValue) String() string {
	return fmt.Sprintf("quotient %s, remainder %s", d.Quotient, d.Remainder)
}

// requestFile is the document shape accepted by LoadRequests when the
// requests are wrapped in a top-level key.
type requestFile struct {
	Requests []Request `yaml:"requests"`
}

// LoadRequests decodes a YAML or JSON document holding either a list of
// requests or a mapping with a "requests" list.
func LoadRequests(r io.Reader) ([]Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var list []Request
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var file requestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse requests: %w", err)
	}
	return file.Requests, nil
}

func required(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return *v, nil
}

func requiredInt(name string, v *float64) (int64, error) {
	f, err := required(name, v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%w: %s must be an integer, got %g", ErrInvalidField, name, f)
	}
	return int64(f), nil
}
