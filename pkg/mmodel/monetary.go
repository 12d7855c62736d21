package mmodel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/CedrusPay/sluice/pkg/constant"
)

const (
	monetaryDecimalPlaces = 4
	monetaryScale         = 10000
)

// Monetary is a signed fixed-point amount counted in ten-thousandths of a
// unit. The int64 backing keeps arithmetic exact and overflow detectable;
// binary floats never enter balance math.
type Monetary int64

// ParseMonetary parses a decimal literal into a Monetary value.
//
// Accepted: optional leading sign, an integer part of one or more digits and
// an optional fraction of up to four digits. Surrounding whitespace is
// trimmed. Anything else, including bare-fraction forms like ".5", is an
// ErrInvalidMonetary.
func ParseMonetary(value string) (Monetary, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: value is an empty string", constant.ErrInvalidMonetary)
	}

	parts := strings.Split(value, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: value has more than one decimal point", constant.ErrInvalidMonetary)
	}

	integer, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: value has an invalid integer part %q", constant.ErrInvalidMonetary, parts[0])
	}

	var fraction int64

	if len(parts) == 2 && parts[1] != "" {
		if len(parts[1]) > monetaryDecimalPlaces {
			return 0, fmt.Errorf("%w: value has too many decimal places", constant.ErrInvalidMonetary)
		}

		padded := parts[1] + strings.Repeat("0", monetaryDecimalPlaces-len(parts[1]))

		// ParseUint rejects signs and stray characters in the fraction.
		parsed, err := strconv.ParseUint(padded, 10, 63)
		if err != nil {
			return 0, fmt.Errorf("%w: value has an invalid fraction part %q", constant.ErrInvalidMonetary, parts[1])
		}

		fraction = int64(parsed)
	}

	if integer > math.MaxInt64/monetaryScale || integer < math.MinInt64/monetaryScale {
		return 0, fmt.Errorf("%w: value is out of range", constant.ErrInvalidMonetary)
	}

	scaled := Monetary(integer * monetaryScale)

	var result Monetary

	if strings.HasPrefix(value, "-") {
		result, err = scaled.CheckedSub(Monetary(fraction))
	} else {
		result, err = scaled.CheckedAdd(Monetary(fraction))
	}

	if err != nil {
		return 0, fmt.Errorf("%w: value is out of range", constant.ErrInvalidMonetary)
	}

	return result, nil
}

// CheckedAdd returns m + n, or ErrMonetaryOverflow when the sum leaves the
// representable range. m is left untouched either way.
func (m Monetary) CheckedAdd(n Monetary) (Monetary, error) {
	sum := m + n
	if (n > 0 && sum < m) || (n < 0 && sum > m) {
		return 0, constant.ErrMonetaryOverflow
	}

	return sum, nil
}

// CheckedSub returns m - n, or ErrMonetaryOverflow when the difference leaves
// the representable range.
func (m Monetary) CheckedSub(n Monetary) (Monetary, error) {
	diff := m - n
	if (n > 0 && diff > m) || (n < 0 && diff < m) {
		return 0, constant.ErrMonetaryOverflow
	}

	return diff, nil
}

// IsNegative reports whether m is below zero.
func (m Monetary) IsNegative() bool {
	return m < 0
}

// String renders the canonical form: sign only when negative, integer part
// without leading zeros and exactly four fraction digits.
func (m Monetary) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
	}

	// Two's complement negation through uint64 keeps math.MinInt64 printable.
	magnitude := uint64(m)
	if m < 0 {
		magnitude = -magnitude
	}

	return fmt.Sprintf("%s%d.%04d", sign, magnitude/monetaryScale, magnitude%monetaryScale)
}

// MarshalJSON encodes m as its canonical quoted text.
func (m Monetary) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON decodes a quoted decimal literal.
func (m *Monetary) UnmarshalJSON(data []byte) error {
	value, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", constant.ErrInvalidMonetary, data)
	}

	parsed, err := ParseMonetary(value)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
