// Package calc implements the postfix evaluator: the operation table, the
// operand stack and the per-line session that drives them.
package calc

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Kind classifies an entry of the operation table.
type Kind int

const (
	// KindOperator is a symbolic binary arithmetic operator.
	KindOperator Kind = iota
	// KindFunction is a named function that consumes operands.
	KindFunction
	// KindConstant pushes a fixed value without consuming operands.
	KindConstant
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindOperator:
		return "operator"
	case KindFunction:
		return "function"
	case KindConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// Operation is one entry of the operation table. The same table drives
// token dispatch and completion candidates.
type Operation struct {
	Name  string
	Kind  Kind
	Arity int

	// Apply receives the popped operands in push order: args[0] is the value
	// that appeared first in the input.
	Apply func(args []float64) float64

	// Trace formats the trace line for an application. Nil for constants.
	Trace func(args []float64, result float64) string

	Help string
}

func binary(name string, help string, fn func(a, b float64) float64) Operation {
	return Operation{
		Name:  name,
		Kind:  KindOperator,
		Arity: 2,
		Apply: func(args []float64) float64 { return fn(args[0], args[1]) },
		Trace: func(args []float64, result float64) string {
			return fmt.Sprintf("%s %s %s = %s", FormatNumber(args[0]), name, FormatNumber(args[1]), FormatNumber(result))
		},
		Help: help,
	}
}

func unary(name string, help string, fn func(float64) float64) Operation {
	return Operation{
		Name:  name,
		Kind:  KindFunction,
		Arity: 1,
		Apply: func(args []float64) float64 { return fn(args[0]) },
		Trace: func(args []float64, result float64) string {
			return fmt.Sprintf("%s(%s) = %s", name, FormatNumber(args[0]), FormatNumber(result))
		},
		Help: help,
	}
}

func constant(name string, help string, value float64) Operation {
	return Operation{
		Name:  name,
		Kind:  KindConstant,
		Apply: func([]float64) float64 { return value },
		Help:  help,
	}
}

// logBase returns the logarithm of x in the given base. Bases 2 and 10 go
// through the dedicated functions so exact powers stay exact.
func logBase(x, base float64) float64 {
	switch base {
	case 2:
		return math.Log2(x)
	case 10:
		return math.Log10(x)
	}
	return math.Log(x) / math.Log(base)
}

var operations = []Operation{
	binary("+", "x y + : pushes x plus y", func(a, b float64) float64 { return a + b }),
	binary("-", "x y - : pushes x minus y", func(a, b float64) float64 { return a - b }),
	binary("*", "x y * : pushes x times y", func(a, b float64) float64 { return a * b }),
	binary("/", "x y / : pushes x divided by y", func(a, b float64) float64 { return a / b }),
	binary("%", "x y % : pushes the remainder of x divided by y", math.Mod),
	binary("^", "x y ^ : pushes x raised to the power y", math.Pow),

	// Command set, in completion order.
	{
		Name:  "log",
		Kind:  KindFunction,
		Arity: 2,
		Apply: func(args []float64) float64 { return logBase(args[0], args[1]) },
		Trace: func(args []float64, result float64) string {
			return fmt.Sprintf("log(%s, base = %s) = %s", FormatNumber(args[0]), FormatNumber(args[1]), FormatNumber(result))
		},
		Help: "x b log : pushes the logarithm of x in base b",
	},
	unary("cos", "x cos : pushes the cosine of x (radians)", math.Cos),
	unary("sin", "x sin : pushes the sine of x (radians)", math.Sin),
	unary("tan", "x tan : pushes the tangent of x (radians)", math.Tan),
	unary("sqrt", "x sqrt : pushes the square root of x", math.Sqrt),
	unary("abs", "x abs : pushes the absolute value of x", math.Abs),
	constant("PI", "PI : pushes π", math.Pi),
	constant("EPSILON", "EPSILON : pushes the double precision machine epsilon", Epsilon),
	constant("INFINITY", "INFINITY : pushes positive infinity", math.Inf(1)),
	constant("E", "E : pushes Euler's number", math.E),
}

// Epsilon is the difference between 1 and the smallest double greater than 1.
const Epsilon = 0x1p-52

var operationsByName = lo.KeyBy(operations, func(op Operation) string {
	return op.Name
})

// Lookup finds the operation named exactly by token.
func Lookup(token string) (Operation, bool) {
	op, ok := operationsByName[token]
	return op, ok
}

// Operations returns a copy of the operation table in table order.
func Operations() []Operation {
	result := make([]Operation, len(operations))
	copy(result, operations)
	return result
}

// Commands returns the names of all functions and constants in table order.
// These are the words offered for completion.
func Commands() []string {
	return lo.FilterMap(operations, func(op Operation, _ int) (string, bool) {
		return op.Name, op.Kind != KindOperator
	})
}
