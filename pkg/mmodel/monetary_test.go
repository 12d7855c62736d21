package mmodel

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CedrusPay/sluice/pkg/constant"
)

func TestParseMonetary_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Monetary
	}{
		{name: "integer", input: "10", expected: 100000},
		{name: "zero", input: "0", expected: 0},
		{name: "one_decimal", input: "10.5", expected: 105000},
		{name: "four_decimals", input: "1.2345", expected: 12345},
		{name: "smallest_fraction", input: "0.0001", expected: 1},
		{name: "negative", input: "-1.5", expected: -15000},
		{name: "negative_fraction_only", input: "-0.0001", expected: -1},
		{name: "explicit_positive_sign", input: "+2.25", expected: 22500},
		{name: "surrounding_whitespace", input: "  3.1415  ", expected: 31415},
		{name: "trailing_dot", input: "1.", expected: 10000},
		{name: "short_fraction_padded", input: "2.5", expected: 25000},
		{name: "max_value", input: "922337203685477.5807", expected: math.MaxInt64},
		{name: "min_value", input: "-922337203685477.5808", expected: math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ParseMonetary(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseMonetary_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace_only", input: "   "},
		{name: "lone_dot", input: "."},
		{name: "leading_dot", input: ".5"},
		{name: "two_dots", input: "1.2.3"},
		{name: "consecutive_dots", input: "1..2"},
		{name: "not_a_number", input: "abc"},
		{name: "letters_in_fraction", input: "1.abcd"},
		{name: "sign_in_fraction", input: "1.-5"},
		{name: "five_decimals", input: "1.12345"},
		{name: "embedded_space", input: "1 2.5"},
		{name: "integer_too_large", input: "9223372036854775807"},
		{name: "fraction_pushes_out_of_range", input: "922337203685477.5808"},
		{name: "below_min", input: "-922337203685477.5809"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseMonetary(tt.input)

			assert.ErrorIs(t, err, constant.ErrInvalidMonetary)
		})
	}
}

func TestMonetary_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    Monetary
		expected string
	}{
		{name: "zero", value: 0, expected: "0.0000"},
		{name: "whole_units", value: 100000, expected: "10.0000"},
		{name: "mixed", value: 123456, expected: "12.3456"},
		{name: "sub_unit", value: 1, expected: "0.0001"},
		{name: "negative_sub_unit", value: -1, expected: "-0.0001"},
		{name: "negative", value: -15000, expected: "-1.5000"},
		{name: "max", value: math.MaxInt64, expected: "922337203685477.5807"},
		{name: "min", value: math.MinInt64, expected: "-922337203685477.5808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

// Round-trip: the canonical text of any value parses back to the same value.
func TestMonetary_RoundTrip(t *testing.T) {
	t.Parallel()

	values := []Monetary{0, 1, -1, 9999, 10000, -10001, 123456789, -987654321, math.MaxInt64, math.MinInt64}

	for _, value := range values {
		parsed, err := ParseMonetary(value.String())

		require.NoError(t, err, "round-tripping %s", value)
		assert.Equal(t, value, parsed)
	}
}

func TestMonetary_CheckedAdd(t *testing.T) {
	t.Parallel()

	sum, err := Monetary(25000).CheckedAdd(Monetary(-5000))
	require.NoError(t, err)
	assert.Equal(t, Monetary(20000), sum)

	_, err = Monetary(math.MaxInt64).CheckedAdd(1)
	assert.ErrorIs(t, err, constant.ErrMonetaryOverflow)

	_, err = Monetary(math.MinInt64).CheckedAdd(-1)
	assert.ErrorIs(t, err, constant.ErrMonetaryOverflow)
}

func TestMonetary_CheckedSub(t *testing.T) {
	t.Parallel()

	diff, err := Monetary(25000).CheckedSub(Monetary(5000))
	require.NoError(t, err)
	assert.Equal(t, Monetary(20000), diff)

	_, err = Monetary(math.MinInt64).CheckedSub(1)
	assert.ErrorIs(t, err, constant.ErrMonetaryOverflow)

	_, err = Monetary(math.MaxInt64).CheckedSub(-1)
	assert.ErrorIs(t, err, constant.ErrMonetaryOverflow)
}

func TestMonetary_IsNegative(t *testing.T) {
	t.Parallel()

	assert.False(t, Monetary(0).IsNegative())
	assert.False(t, Monetary(1).IsNegative())
	assert.True(t, Monetary(-1).IsNegative())
}

func TestMonetary_JSON(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(Monetary(35000))
	require.NoError(t, err)
	assert.Equal(t, `"3.5000"`, string(encoded))

	var decoded Monetary

	require.NoError(t, json.Unmarshal([]byte(`"-1.25"`), &decoded))
	assert.Equal(t, Monetary(-12500), decoded)

	assert.Error(t, json.Unmarshal([]byte(`"1.23456"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`12`), &decoded))
}
