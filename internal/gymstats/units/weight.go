package units

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxWeight is the largest weight NUMERIC(5,2) can hold.
const MaxWeight Weight = 99999

var (
	ErrInvalidWeight    = errors.New("invalid weight")
	ErrWeightOutOfRange = errors.New("weight out of range")
)

// Weight is a lifted weight in hundredths of a unit, so 102.5 is stored as 10250.
type Weight int64

// ParseWeight accepts decimals with at most two fraction digits, e.g. "100", "102.5", "99.95".
func ParseWeight(s string) (Weight, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidWeight
	}

	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidWeight
	}
	if hasDot && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("%w: more than two fraction digits in %q", ErrInvalidWeight, s)
	}
	if intPart == "" {
		intPart = "0"
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || whole > int64(MaxWeight)/100 {
		return 0, fmt.Errorf("%w: %q", ErrWeightOutOfRange, s)
	}
	frac, _ := strconv.ParseInt(fracPart, 10, 64)

	w := Weight(whole*100 + frac)
	if neg {
		w = -w
	}
	return w, nil
}

func MustParseWeight(s string) Weight {
	w, err := ParseWeight(s)
	if err != nil {
		panic(err)
	}
	return w
}

// FromFloat rounds f to the nearest hundredth.
func FromFloat(f float64) Weight {
	if f < 0 {
		return Weight(f*100 - 0.5)
	}
	return Weight(f*100 + 0.5)
}

// Valid reports whether w is inside (0, MaxWeight].
func (w Weight) Valid() bool {
	return w > 0 && w <= MaxWeight
}

func (w Weight) Float64() float64 {
	return float64(w) / 100
}

func (w Weight) String() string {
	sign := ""
	v := int64(w)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (w Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts both "102.50" and 102.5.
func (w *Weight) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidWeight, data)
		}
		s = n.String()
	}

	parsed, err := ParseWeight(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
