package action

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/fogleman/ease"
	"github.com/robmorgan/halo-fade/utils"
)

// HoldForever keeps the target value indefinitely once a fade has reached it.
const HoldForever = -1

// FadeAction fades a channel from its current value to a target value in a given amount of time. After the fade,
// the target is held for a given or indefinite time before the action completes.
//
// The start value and start time are captured on the first call to NewValue, not at construction, so an action can
// be built ahead of time and started precisely when the channel first ticks it.
type FadeAction struct {
	// Time in ms to fade from the start value to the target value
	fadeTime int64

	// Time in ms to hold the target value. -1 is indefinite
	holdTime int64

	targetValue int
	startValue  int
	startTime   int64

	// last value handed back to the channel
	value int

	// ms per high-resolution step, derived once the start value is known
	stepDuration float64
	direction    Direction
	easing       ease.Function
	state        State
}

// FadeOption configures optional fade behaviour.
type FadeOption func(*FadeAction)

// WithEasing shapes the fade with an easing curve instead of a linear ramp. The curve maps progress in [0,1] to
// progress in [0,1]. Curves that overshoot or dip are held at their furthest point, so the output never backs away
// from the target.
func WithEasing(fn ease.Function) FadeOption {
	return func(a *FadeAction) {
		a.easing = fn
	}
}

// NewFadeAction creates a fade to a high-resolution target value. A negative fade time becomes an instant jump and
// any hold time below -1 is treated as holding forever.
func NewFadeAction(fadeTime, targetValue, holdTime int, opts ...FadeOption) *FadeAction {
	a := &FadeAction{
		fadeTime:    int64(fadeTime),
		targetValue: targetValue,
		holdTime:    int64(holdTime),
	}

	if holdTime < HoldForever {
		a.holdTime = HoldForever
	}
	if fadeTime < 0 {
		a.fadeTime = 0
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NewFadeActionFromPercent creates a fade to a target given as a percentage of full output.
func NewFadeActionFromPercent(fadeTime int, percent float64, holdTime int, opts ...FadeOption) *FadeAction {
	return NewFadeAction(fadeTime, utils.PercentToHiRes(percent), holdTime, opts...)
}

// NewFadeActionScaled creates a fade whose duration is proportional to the distance between the current and target
// native values, where fullRangeTime is the time a 0 to 255 fade would take.
func NewFadeActionScaled(fullRangeTime, currentValue, targetValue, holdTime int, opts ...FadeOption) *FadeAction {
	fadeTime := utils.FadeTimeFraction(currentValue, targetValue, fullRangeTime)
	return NewFadeAction(fadeTime, utils.ToHiRes(targetValue), holdTime, opts...)
}

// NewValue returns the value the channel should output at nowMs.
func (a *FadeAction) NewValue(ch ValueReader, nowMs int64) int {
	if a.state == StateNotStarted {
		a.start(ch, nowMs)
	}

	elapsed := nowMs - a.startTime
	if elapsed < 0 {
		elapsed = 0
	}

	if a.fadeTime != 0 && a.value != a.targetValue {
		a.value = a.fadeValue(elapsed)
	}

	if a.value == a.targetValue {
		if a.state == StateFading {
			a.state = StateHolding
		}
		// we reached the target already, check if we need to hold longer
		if a.holdTime > HoldForever && a.holdExpired(elapsed) {
			a.state = StateCompleted
		}
	}

	return a.value
}

func (a *FadeAction) start(ch ValueReader, nowMs int64) {
	a.startTime = nowMs

	if a.fadeTime == 0 {
		a.value = a.targetValue
		a.state = StateHolding
		return
	}

	a.startValue = ch.HiResValue()
	a.value = a.startValue
	a.state = StateFading

	switch {
	case a.startValue == a.targetValue:
		a.stepDuration = 1
	case a.startValue > a.targetValue:
		a.direction = DirectionDown
		a.stepDuration = float64(a.fadeTime) / float64(a.startValue-a.targetValue)
	default:
		a.direction = DirectionUp
		a.stepDuration = float64(a.fadeTime) / float64(a.targetValue-a.startValue)
	}
}

// fadeValue computes floor(elapsed / stepDuration) as an integer ratio so that the target is reached exactly when
// the fade time has elapsed. The result never falls behind the last value, so the output only moves toward the
// target even when the easing curve overshoots or time goes backwards.
func (a *FadeAction) fadeValue(elapsed int64) int {
	distance := a.distance()

	var steps int64
	switch {
	case elapsed >= a.fadeTime:
		steps = distance
	case a.easing != nil:
		progress := float64(elapsed) / float64(a.fadeTime)
		steps = int64(math.Round(a.easing(progress) * float64(distance)))
	default:
		steps = ratio(elapsed, distance, a.fadeTime)
	}

	done := int64(a.value - a.startValue)
	if done < 0 {
		done = -done
	}
	steps = utils.Clamp(steps, done, distance)

	if a.direction == DirectionUp {
		return a.startValue + int(steps)
	}
	return a.startValue - int(steps)
}

func (a *FadeAction) holdExpired(elapsed int64) bool {
	if a.holdTime == 0 && a.fadeTime == 0 {
		return true
	}
	// elapsed >= fade+hold without overflowing the sum
	return (a.holdTime > 0 || a.fadeTime > 0) && elapsed >= a.fadeTime && elapsed-a.fadeTime >= a.holdTime
}

// ratio returns elapsed*distance/fade using a 128 bit product. Callers guarantee 0 <= elapsed < fade and distance >= 0,
// so the quotient always fits.
func ratio(elapsed, distance, fade int64) int64 {
	hi, lo := bits.Mul64(uint64(elapsed), uint64(distance))
	quo, _ := bits.Div64(hi, lo, uint64(fade))
	return int64(quo)
}

func (a *FadeAction) distance() int64 {
	d := int64(a.targetValue - a.startValue)
	if d < 0 {
		return -d
	}
	return d
}

// Completed reports whether the hold period has fully elapsed.
func (a *FadeAction) Completed() bool {
	return a.state == StateCompleted
}

// State returns the lifecycle state of the fade.
func (a *FadeAction) State() State {
	return a.state
}

func (a *FadeAction) Direction() Direction {
	return a.direction
}

// StepDuration returns the ms per high-resolution step, or 0 before the fade has started.
func (a *FadeAction) StepDuration() float64 {
	return a.stepDuration
}

func (a *FadeAction) Target() int {
	return a.targetValue
}

func (a *FadeAction) FadeTime() int {
	return int(a.fadeTime)
}

func (a *FadeAction) HoldTime() int {
	return int(a.holdTime)
}

func (a *FadeAction) String() string {
	return fmt.Sprintf("FadeAction: %d, fade time %dms, hold time %dms", a.targetValue, a.fadeTime, a.holdTime)
}
