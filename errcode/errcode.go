package errcode

import "strings"

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK   Code = "ok"
	Busy Code = "busy"

	// Peripheral I/O.
	BusTimeout Code = "bus_timeout"
	Nack       Code = "nack"

	// Frame and region math.
	OutOfBounds Code = "out_of_bounds"

	// Timekeeping.
	StaleTime    Code = "stale_time"
	ClockInvalid Code = "clock_invalid"

	// Display path.
	Degraded Code = "transport_degraded"

	InvalidParams Code = "invalid_params"
	InvalidConfig Code = "invalid_config"
	Unsupported   Code = "unsupported"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// FromBus maps low-level peripheral-bus errors to a Code.
// Heuristic; extend per platform/driver.
func FromBus(err error) Code {
	if err == nil {
		return OK
	}
	if c := Of(err); c != Error {
		return c
	}
	if strings.Contains(err.Error(), "timeout") {
		return BusTimeout
	}
	return Nack
}
