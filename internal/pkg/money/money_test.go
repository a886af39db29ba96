//go:build unit

package money_test

import (
	"testing"

	"martcore/internal/pkg/money"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "half rounds up", in: 10.005, want: 10.01},
		{name: "below half rounds down", in: 10.004, want: 10.00},
		{name: "already exact", in: 10.10, want: 10.10},
		{name: "negative half rounds away from zero", in: -10.005, want: -10.01},
		{name: "zero", in: 0, want: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, money.Round2(c.in), 1e-9)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 25.00, money.Percent(250, 10), 1e-9)
	// 33.33 * 15% = 4.9995, rounded half-up.
	assert.InDelta(t, 5.00, money.Percent(33.33, 15), 1e-9)
	assert.InDelta(t, 0.00, money.Percent(100, 0), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.InDelta(t, 5.0, money.Clamp(1, 5, 50), 1e-9)
	assert.InDelta(t, 50.0, money.Clamp(80, 5, 50), 1e-9)
	assert.InDelta(t, 20.0, money.Clamp(20, 5, 50), 1e-9)
}
