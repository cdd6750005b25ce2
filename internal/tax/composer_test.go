package tax

import (
	"testing"

	"github.com/okkersen/skatt/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rr(percent string, priority int) resolvedRate {
	return resolvedRate{
		rate: domain.TaxRate{
			Percent: decimal.RequireFromString(percent),
			Country: "US",
			Region:  "42",
		},
		priority: priority,
	}
}

func TestComposeTiers(t *testing.T) {
	tests := []struct {
		name     string
		rates    []resolvedRate
		percents []string
	}{
		{
			name:     "no rates",
			rates:    nil,
			percents: nil,
		},
		{
			name:     "single rate",
			rates:    []resolvedRate{rr("7.5", 0)},
			percents: []string{"7.5"},
		},
		{
			name:     "same priority adds",
			rates:    []resolvedRate{rr("8.25", 0), rr("5", 0)},
			percents: []string{"13.25"},
		},
		{
			name:     "priorities split tiers",
			rates:    []resolvedRate{rr("8.25", 0), rr("5", 0), rr("11", 1)},
			percents: []string{"13.25", "11"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers := composeTiers(tt.rates)
			require.Len(t, tiers, len(tt.percents))
			for i, want := range tt.percents {
				assert.True(t, tiers[i].percent.Equal(decimal.RequireFromString(want)),
					"tier %d: expected %s, got %s", i, want, tiers[i].percent)
			}
		})
	}
}

func TestEffectivePercent(t *testing.T) {
	tests := []struct {
		name        string
		rates       []resolvedRate
		expected    string
		explanation string
	}{
		{
			name:        "no tiers",
			rates:       nil,
			expected:    "0",
			explanation: "empty rate set taxes nothing",
		},
		{
			name:        "single tier is its own percent",
			rates:       []resolvedRate{rr("8.25", 0), rr("5", 0)},
			expected:    "13.25",
			explanation: "one tier never compounds",
		},
		{
			name:        "two tiers compound",
			rates:       []resolvedRate{rr("8.25", 0), rr("5", 0), rr("11", 1)},
			expected:    "25.7075",
			explanation: "(1.1325 * 1.11 - 1) * 100, not 13.25 + 11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := effectivePercent(composeTiers(tt.rates))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s: %s", tt.expected, got, tt.explanation)
		})
	}
}

func TestTierKey(t *testing.T) {
	tiers := composeTiers([]resolvedRate{rr("8.25", 0), rr("5", 0)})
	require.Len(t, tiers, 1)
	assert.Equal(t, "US - 42 - 8.25US - 42 - 5", tiers[0].key())

	rates := tiers[0].appliedRates()
	require.Len(t, rates, 2)
	assert.Equal(t, "US - 42 - 8.25", rates[0].Code)
	assert.Equal(t, rates[0].Code, rates[0].Title)
}

func TestTierAmounts_Compounding(t *testing.T) {
	tiers := composeTiers([]resolvedRate{rr("13.25", 0), rr("11", 1)})
	amts := tierAmounts(tiers, decimal.RequireFromString("100"))

	require.Len(t, amts, 2)
	assert.True(t, amts[0].Equal(decimal.RequireFromString("13.25")), "got %s", amts[0])
	// Second tier taxes 113.25, not 100.
	assert.True(t, amts[1].Equal(decimal.RequireFromString("12.4575")), "got %s", amts[1])
}

func TestRoundCurrency_HalfEven(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0.825", "0.82"},
		{"0.375", "0.38"},
		{"1.155", "1.16"},
		{"2.805", "2.80"},
		{"1.005", "1.00"},
		{"1.015", "1.02"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := roundCurrency(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"round(%s): expected %s, got %s", tt.in, tt.expected, got)
		})
	}
}
