package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{"rounds half up on decimal representation", 1.005, 2, 1.01},
		{"rounds down", 123.454, 2, 123.45},
		{"rounds up", 123.456789, 2, 123.46},
		{"negative rounds away from zero", -2.345, 2, -2.35},
		{"four places", 30333.415637333, 4, 30333.4156},
		{"zero", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.Round(tt.value, tt.places))
		})
	}

	t.Run("non-finite values pass through", func(t *testing.T) {
		assert.True(t, math.IsNaN(ledger.Round(math.NaN(), 2)))
		assert.True(t, math.IsInf(ledger.Round(math.Inf(1), 2), 1))
	})
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name      string
		now, past float64
		want      float64
	}{
		{"gain", 1100, 1000, 10},
		{"loss", 900, 1000, -10},
		{"past value negative uses its magnitude", -50, -100, 50},
		{"zero past value is defined as zero", 500, 0, 0},
		{"argument order matters", 1000, 1100, -9.090909090909092},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ledger.GrowthRate(tt.now, tt.past), 1e-9)
		})
	}
}
