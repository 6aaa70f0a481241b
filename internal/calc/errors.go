package calc

import (
	"errors"
	"fmt"
)

// ErrMissingResult is returned when a line leaves no value to report.
var ErrMissingResult = errors.New("expected an output, got none")

// ErrNoInput is returned when input ends while a variable value is requested.
var ErrNoInput = errors.New("no input while reading a variable value")

// ArityError reports an operation applied to too few operands.
type ArityError struct {
	Op   string
	Need int
	Have int
}

func (e *ArityError) Error() string {
	missing := e.Need - e.Have
	noun := "operands"
	if missing == 1 {
		noun = "operand"
	}
	return fmt.Sprintf("'%s' requires %d additional %s", e.Op, missing, noun)
}

// ParseError reports a variable reply that is not a number.
type ParseError struct {
	Name  string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected a number for %s, got %q", e.Name, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnconsumedError reports operands left on the stack after the result.
type UnconsumedError struct {
	Remaining int
}

func (e *UnconsumedError) Error() string {
	return fmt.Sprintf("unconsumed values, %d left on the stack", e.Remaining)
}
