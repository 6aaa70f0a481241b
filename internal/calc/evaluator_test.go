package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run evaluates line, answering variable prompts from replies in order.
func run(t *testing.T, line string, replies ...string) (float64, []string, error) {
	t.Helper()

	var traces []string
	e := NewEvaluator(Options{Tracer: TracerFunc(func(line string) {
		traces = append(traces, line)
	})})

	s := e.Start(line)
	for {
		status, err := s.Advance()
		if status == StatusDone {
			result, _ := s.Result()
			return result, traces, err
		}
		require.NotEmpty(t, replies, "unexpected prompt for %q", s.Pending())
		if err := s.Provide(replies[0]); err != nil {
			return 0, traces, err
		}
		replies = replies[1:]
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		line  string
		want  float64
		trace string
	}{
		{"1 2 +", 3, "1 + 2 = 3"},
		{"5 3 -", 2, "5 - 3 = 2"},
		{"3 -5 -", 8, "3 - -5 = 8"},
		{"4 2.5 *", 10, "4 * 2.5 = 10"},
		{"7 2 /", 3.5, "7 / 2 = 3.5"},
		{"7 3 %", 1, "7 % 3 = 1"},
		{"-7 3 %", -1, "-7 % 3 = -1"},
		{"7 -3 %", 1, "7 % -3 = 1"},
		{"2 10 ^", 1024, "2 ^ 10 = 1024"},
		{"9 0.5 ^", 3, "9 ^ 0.5 = 3"},
		{"0.1 0.2 +", 0.30000000000000004, "0.1 + 0.2 = 0.30000000000000004"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, traces, err := run(t, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{tt.trace}, traces)
		})
	}
}

func TestOperandOrder(t *testing.T) {
	// value1 is the operand that appeared earlier in the input.
	got, traces, err := run(t, "10 4 2 - /")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
	assert.Equal(t, []string{"4 - 2 = 2", "10 / 2 = 5"}, traces)
}

func TestIEEEDivision(t *testing.T) {
	got, _, err := run(t, "1 0 /")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, _, err = run(t, "-1 0 /")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))

	got, traces, err := run(t, "0 0 /")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
	assert.Equal(t, []string{"0 / 0 = NaN"}, traces)
}

func TestFunctions(t *testing.T) {
	tests := []struct {
		line  string
		want  float64
		trace string
	}{
		{"4 sqrt", 2, "sqrt(4) = 2"},
		{"-5 abs", 5, "abs(-5) = 5"},
		{"0 cos", 1, "cos(0) = 1"},
		{"0 sin", 0, "sin(0) = 0"},
		{"0 tan", 0, "tan(0) = 0"},
		{"8 2 log", 3, "log(8, base = 2) = 3"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, traces, err := run(t, tt.line)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.Equal(t, []string{tt.trace}, traces)
		})
	}

	got, _, err := run(t, "1000 10 log")
	require.NoError(t, err)
	assert.InDelta(t, 3, got, 1e-12)

	got, _, err = run(t, "81 3 log")
	require.NoError(t, err)
	assert.InDelta(t, 4, got, 1e-12)

	got, _, err = run(t, "PI cos")
	require.NoError(t, err)
	assert.InDelta(t, -1, got, 1e-15)
}

func TestConstants(t *testing.T) {
	got, traces, err := run(t, "PI")
	require.NoError(t, err)
	assert.Equal(t, math.Pi, got)
	assert.InDelta(t, 3.14159265358979, got, 1e-14)
	assert.Empty(t, traces)

	got, _, err = run(t, "E")
	require.NoError(t, err)
	assert.InDelta(t, 2.71828182845905, got, 1e-14)

	got, _, err = run(t, "EPSILON")
	require.NoError(t, err)
	assert.Equal(t, math.Nextafter(1, 2)-1, got)

	got, _, err = run(t, "INFINITY")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestArityErrors(t *testing.T) {
	tests := []struct {
		line string
		op   string
		have int
		msg  string
	}{
		{"+", "+", 0, "'+' requires 2 additional operands"},
		{"1 *", "*", 1, "'*' requires 1 additional operand"},
		{"sqrt", "sqrt", 0, "'sqrt' requires 1 additional operand"},
		{"2 log", "log", 1, "'log' requires 1 additional operand"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, _, err := run(t, tt.line)
			var arityErr *ArityError
			require.ErrorAs(t, err, &arityErr)
			assert.Equal(t, tt.op, arityErr.Op)
			assert.Equal(t, tt.have, arityErr.Have)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestUnconsumedOperands(t *testing.T) {
	got, _, err := run(t, "1 2")
	var unconsumed *UnconsumedError
	require.ErrorAs(t, err, &unconsumed)
	assert.Equal(t, 1, unconsumed.Remaining)
	// The top value is still reported as the result.
	assert.Equal(t, 2.0, got)
}

func TestMissingResult(t *testing.T) {
	_, _, err := run(t, "   ")
	assert.ErrorIs(t, err, ErrMissingResult)
}

func TestVariables(t *testing.T) {
	t.Run("prompted once per line", func(t *testing.T) {
		got, _, err := run(t, "x x *", "3")
		require.NoError(t, err)
		assert.Equal(t, 9.0, got)
	})

	t.Run("distinct names prompt separately", func(t *testing.T) {
		got, traces, err := run(t, "a b -", "10", "4")
		require.NoError(t, err)
		assert.Equal(t, 6.0, got)
		assert.Equal(t, []string{"10 - 4 = 6"}, traces)
	})

	t.Run("bad reply", func(t *testing.T) {
		_, _, err := run(t, "x 1 +", "abc")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "x", parseErr.Name)
		assert.Equal(t, "abc", parseErr.Input)
	})

	t.Run("scope is one line", func(t *testing.T) {
		e := NewEvaluator(Options{})

		first := e.Start("y")
		status, err := first.Advance()
		require.NoError(t, err)
		require.Equal(t, StatusNeedsValue, status)
		require.NoError(t, first.Provide("7"))
		v, ok := first.Variable("y")
		require.True(t, ok)
		assert.Equal(t, 7.0, v)
		status, err = first.Advance()
		require.NoError(t, err)
		assert.Equal(t, StatusDone, status)

		second := e.Start("y")
		status, err = second.Advance()
		require.NoError(t, err)
		assert.Equal(t, StatusNeedsValue, status)
		assert.Equal(t, "y", second.Pending())
	})
}

func TestSessionStateIsClearedOnError(t *testing.T) {
	e := NewEvaluator(Options{})
	s := e.Start("1 2 3 x +")

	status, err := s.Advance()
	require.NoError(t, err)
	require.Equal(t, StatusNeedsValue, status)
	assert.Equal(t, 3, s.Depth())

	err = s.Provide("nope")
	require.Error(t, err)
	assert.Equal(t, 0, s.Depth())
	assert.Empty(t, s.Pending())

	status, err = s.Advance()
	assert.NoError(t, err)
	assert.Equal(t, StatusDone, status)
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestLiteralForms(t *testing.T) {
	tests := map[string]float64{
		"1e3":   1000,
		".5":    0.5,
		"+2":    2,
		"0x1p4": 16,
		"1e400": math.Inf(1),
	}
	for line, want := range tests {
		t.Run(line, func(t *testing.T) {
			got, _, err := run(t, line)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
