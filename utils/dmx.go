package utils

import "math"

const (
	// MaxValue is the highest native DMX value for a channel.
	MaxValue = 255

	// HiResShift is the number of sub-step bits kept below a native value.
	HiResShift = 8

	// HiResMax is the highest high-resolution value (native 255 plus all sub-steps).
	HiResMax = MaxValue<<HiResShift | (1<<HiResShift - 1)
)

// ToDMXValue clamps a value to the native 0-255 range.
func ToDMXValue(value int) int {
	return Clamp(value, 0, MaxValue)
}

// ToHiRes converts a native DMX value to the high-resolution domain the fades work in.
func ToHiRes(value int) int {
	return ToDMXValue(value) << HiResShift
}

// FromHiRes truncates a high-resolution value back to its native DMX value.
func FromHiRes(hiRes int) int {
	return Clamp(hiRes, 0, HiResMax) >> HiResShift
}

// PercentToDMX converts a percentage (0-100) to a native DMX value.
func PercentToDMX(percent float64) int {
	p := Clamp(percent, 0.0, 100.0)
	return int(math.Round(p * MaxValue / 100))
}

// PercentToHiRes converts a percentage (0-100) to a high-resolution value.
func PercentToHiRes(percent float64) int {
	return ToHiRes(PercentToDMX(percent))
}

// FadeTimeFraction scales a full-range fade time to the distance between current and target.
// Both values are native DMX values. A half-range move takes half of fullRangeMs.
func FadeTimeFraction(current, target, fullRangeMs int) int {
	distance := ToDMXValue(target) - ToDMXValue(current)
	if distance < 0 {
		distance = -distance
	}
	if distance == 0 || fullRangeMs <= 0 {
		return 0
	}
	return int(int64(fullRangeMs) * int64(distance) / MaxValue)
}
