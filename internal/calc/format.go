package calc

import (
	"errors"
	"math"
	"strconv"
)

// FormatNumber renders v in plain decimal notation using the fewest digits
// that round-trip. Infinities render as inf and -inf.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses a float literal. Literals too large to represent
// become signed infinity and tiny ones become zero.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}
