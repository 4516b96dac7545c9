package format

import "testing"

func TestCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		amount   float64
		expected string
	}{
		{
			name:     "zero",
			amount:   0,
			expected: "$0.00",
		},
		{
			name:     "small amount",
			amount:   12.5,
			expected: "$12.50",
		},
		{
			name:     "thousands separator",
			amount:   1234.56,
			expected: "$1,234.56",
		},
		{
			name:     "millions",
			amount:   1234567.89,
			expected: "$1,234,567.89",
		},
		{
			name:     "negative amount",
			amount:   -1234.56,
			expected: "-$1,234.56",
		},
		{
			name:     "rounds to cents",
			amount:   999.999,
			expected: "$1,000.00",
		},
		{
			name:     "exactly one thousand",
			amount:   1000,
			expected: "$1,000.00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Currency(tc.amount)
			if result != tc.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tc.amount, result, tc.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		amount   float64
		expected string
	}{
		{
			name:     "zero",
			amount:   0,
			expected: "0.00",
		},
		{
			name:     "thousands separator",
			amount:   400000,
			expected: "400,000.00",
		},
		{
			name:     "negative amount",
			amount:   -560.33,
			expected: "-560.33",
		},
		{
			name:     "large remaining balance",
			amount:   398972.22,
			expected: "398,972.22",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := NumericCurrency(tc.amount)
			if result != tc.expected {
				t.Errorf("NumericCurrency(%v) = %q, expected %q", tc.amount, result, tc.expected)
			}
		})
	}
}
