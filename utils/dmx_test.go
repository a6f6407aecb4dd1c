package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiResConversions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 65535, HiResMax)
	assert.Equal(t, 0, ToHiRes(-4))
	assert.Equal(t, 128<<8, ToHiRes(128))
	assert.Equal(t, 255<<8, ToHiRes(300))

	assert.Equal(t, 128, FromHiRes(128<<8+200))
	assert.Equal(t, 255, FromHiRes(HiResMax+1000))
	assert.Equal(t, 0, FromHiRes(-1))
}

func TestPercentConversions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		percent  float64
		expected int
	}{
		{0, 0},
		{-10, 0},
		{50, 128},
		{100, 255},
		{150, 255},
		{1, 3},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, PercentToDMX(testCase.percent), "percent=%v", testCase.percent)
		assert.Equal(t, testCase.expected<<HiResShift, PercentToHiRes(testCase.percent), "percent=%v", testCase.percent)
	}
}

func TestFadeTimeFraction(t *testing.T) {
	t.Parallel()

	// half-ish range takes half-ish the configured time
	require.Equal(t, 1280, FadeTimeFraction(0, 128, 2550))
	require.Equal(t, 2550, FadeTimeFraction(255, 0, 2550))
	require.Equal(t, 0, FadeTimeFraction(42, 42, 2550))
	require.Equal(t, 0, FadeTimeFraction(0, 255, -5))
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, Clamp(5, 0, 10))
	assert.Equal(t, 10, Clamp(5, 10, 20))
	assert.Equal(t, 2.5, Clamp(7.0, 2.5, -1.0))
}
