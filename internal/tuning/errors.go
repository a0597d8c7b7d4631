package tuning

import (
	"errors"
	"fmt"
)

// Domain errors for correlation evaluation.
var (
	// ErrInvalidParameters indicates process parameters outside the valid
	// domain (K<=0, T<=0, tau0<0, or a ratio not in RatioLevels).
	ErrInvalidParameters = errors.New("tuning: invalid process parameters")

	// ErrMissingCoefficients indicates a (method, mode, controller,
	// criterion) combination the catalog does not define.
	ErrMissingCoefficients = errors.New("tuning: coefficients not defined for combination")

	// ErrUndefinedPower indicates a 0^x with x negative or fractional,
	// which the regression formulas cannot define.
	ErrUndefinedPower = errors.New("tuning: zero base raised to negative or fractional exponent")
)

// ParameterError reports which process parameter failed validation.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s=%g (%s)", ErrInvalidParameters, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameters
}

// LookupError reports the catalog key that had no coefficient row.
type LookupError struct {
	Key   Key
	Ratio float64
}

func (e *LookupError) Error() string {
	if e.Key.Method == MendezRimolo {
		return fmt.Sprintf("%v: %s %s %s %s (a=%g)",
			ErrMissingCoefficients, e.Key.Method, e.Key.Mode, e.Key.Controller, e.Key.Criterion.Label(), e.Ratio)
	}
	return fmt.Sprintf("%v: %s %s %s %s",
		ErrMissingCoefficients, e.Key.Method, e.Key.Mode, e.Key.Controller, e.Key.Criterion.Label())
}

func (e *LookupError) Unwrap() error {
	return ErrMissingCoefficients
}

// PowerError carries the offending exponent of an undefined 0^x.
type PowerError struct {
	Exponent float64
}

func (e *PowerError) Error() string {
	return fmt.Sprintf("%v: 0^%g", ErrUndefinedPower, e.Exponent)
}

func (e *PowerError) Unwrap() error {
	return ErrUndefinedPower
}
