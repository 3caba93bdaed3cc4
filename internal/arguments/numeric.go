package arguments

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/usage"
)

// IntegerType parses a 32-bit integer within [Min, Max].
type IntegerType struct {
	Min int
	Max int
}

// Integer returns an integer type bounded by minimum and maximum.
func Integer(minimum, maximum int) IntegerType {
	return IntegerType{Min: minimum, Max: maximum}
}

// AnyInteger accepts every 32-bit integer.
func AnyInteger() IntegerType {
	return Integer(math.MinInt32, math.MaxInt32)
}

func (t IntegerType) Parse(r *dispatchers.StringReader) (any, error) {
	start := r.Cursor()
	v, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	if v < t.Min {
		r.SetCursor(start)
		return nil, usage.IntegerTooLow(r.String(), start, int64(v), int64(t.Min))
	}
	if v > t.Max {
		r.SetCursor(start)
		return nil, usage.IntegerTooHigh(r.String(), start, int64(v), int64(t.Max))
	}
	return v, nil
}

func (IntegerType) Examples() []string {
	return []string{"0", "123", "-123"}
}

// ListSuggestions offers the bounds of small ranges.
func (t IntegerType) ListSuggestions(_ context.Context, b *dispatchers.SuggestionsBuilder) (*dispatchers.Suggestions, error) {
	if t.Max-t.Min > 20 {
		return b.Build(), nil
	}
	for v := t.Min; v <= t.Max; v++ {
		s := strconv.Itoa(v)
		if strings.HasPrefix(s, b.Remaining()) {
			b.Suggest(s)
		}
	}
	return b.Build(), nil
}

// LongType parses a 64-bit integer within [Min, Max].
type LongType struct {
	Min int64
	Max int64
}

func Long(minimum, maximum int64) LongType {
	return LongType{Min: minimum, Max: maximum}
}

func (t LongType) Parse(r *dispatchers.StringReader) (any, error) {
	start := r.Cursor()
	v, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	if v < t.Min {
		r.SetCursor(start)
		return nil, usage.IntegerTooLow(r.String(), start, v, t.Min)
	}
	if v > t.Max {
		r.SetCursor(start)
		return nil, usage.IntegerTooHigh(r.String(), start, v, t.Max)
	}
	return v, nil
}

func (LongType) Examples() []string {
	return []string{"0", "123", "-123"}
}

// FloatType parses a float64 within [Min, Max].
type FloatType struct {
	Min float64
	Max float64
}

func Float(minimum, maximum float64) FloatType {
	return FloatType{Min: minimum, Max: maximum}
}

func AnyFloat() FloatType {
	return Float(-math.MaxFloat64, math.MaxFloat64)
}

func (t FloatType) Parse(r *dispatchers.StringReader) (any, error) {
	start := r.Cursor()
	v, err := r.ReadFloat()
	if err != nil {
		return nil, err
	}
	if v < t.Min {
		r.SetCursor(start)
		return nil, usage.FloatTooLow(r.String(), start, v, t.Min)
	}
	if v > t.Max {
		r.SetCursor(start)
		return nil, usage.FloatTooHigh(r.String(), start, v, t.Max)
	}
	return v, nil
}

func (FloatType) Examples() []string {
	return []string{"0", "1.2", ".5", "-1", "-.5", "-1234.56"}
}
