package domain

import (
	"errors"
	"fmt"
)

// ErrLocationUnresolvable means the coordinate maps to no known
// timezone. Chart-fatal; never substituted with a UTC default.
var ErrLocationUnresolvable = errors.New("no timezone covers coordinate")

// ErrInsufficientData means every weighted temperament input was
// unavailable.
var ErrInsufficientData = errors.New("no usable chart inputs")

// InvalidDateError reports a malformed or out-of-supported-range
// date/time component. Chart-fatal, raised before any oracle call.
type InvalidDateError struct {
	Reason string
}

func (e *InvalidDateError) Error() string {
	return "invalid calendar date: " + e.Reason
}

// QueryScope distinguishes which oracle query failed.
type QueryScope string

const (
	QueryBody  QueryScope = "body"
	QueryCusps QueryScope = "cusps"
)

// EphemerisError reports one failed oracle query. Not retried; the
// caller decides whether to degrade the field or abort.
type EphemerisError struct {
	Scope  QueryScope
	Body   Body        // set when Scope == QueryBody
	System HouseSystem // set when Scope == QueryCusps
	Reason string
}

func (e *EphemerisError) Error() string {
	if e.Scope == QueryCusps {
		return fmt.Sprintf("ephemeris query failed: scope=cusps system=%s: %s", e.System, e.Reason)
	}
	return fmt.Sprintf("ephemeris query failed: scope=body body=%s: %s", e.Body, e.Reason)
}
