package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSettled(t *testing.T) {
	tests := []struct {
		remaining string
		want      bool
	}{
		{"0", true},
		{"0.009", true},
		{"-0.009", true},
		{"0.01", false},
		{"-0.01", false},
		{"5", false},
	}

	for _, tt := range tests {
		t.Run(tt.remaining, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSettled(MustMoney(tt.remaining)))
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "125.00", Display(MustMoney("125")))
	assert.Equal(t, "33.33", Display(MustMoney("33.3333333")))
}

func TestFloat64_RoundTrip(t *testing.T) {
	assert.Equal(t, 2.5, Float64(NewQuantityFromFloat64(2.5)))
}
