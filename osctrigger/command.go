// Package osctrigger lets OSC clients start and stop fades on patched channels.
package osctrigger

import (
	"fmt"
	"math"
	"strings"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/halo-fade/action"
)

// AddressPrefix is the OSC namespace every halo message lives under.
const AddressPrefix = "/halo/"

const (
	// VerbFade replaces a channel's queue: /halo/fade/<channel> <percent> [fadeMs] [holdMs]
	VerbFade = "fade"

	// VerbQueue appends to a channel's queue: /halo/queue/<channel> <percent> <fadeMs> [holdMs]
	VerbQueue = "queue"

	// VerbStop drops a channel's actions: /halo/stop/<channel>
	VerbStop = "stop"
)

// Command is a parsed OSC request.
type Command struct {
	Verb    string
	Channel string
	Percent float64

	// FadeMS is only meaningful when HasFadeTime is set, otherwise the fade time is derived from the distance
	FadeMS      int
	HasFadeTime bool
	HoldMS      int
}

// ParseMessage turns an OSC message into a Command.
func ParseMessage(msg *osc.Message) (Command, error) {
	if !strings.HasPrefix(msg.Address, AddressPrefix) {
		return Command{}, fmt.Errorf("address %s is outside %s", msg.Address, AddressPrefix)
	}

	verb, channel, ok := strings.Cut(strings.TrimPrefix(msg.Address, AddressPrefix), "/")
	if !ok || channel == "" {
		return Command{}, fmt.Errorf("address %s does not name a channel", msg.Address)
	}

	cmd := Command{Verb: verb, Channel: channel, HoldMS: action.HoldForever}
	args := msg.Arguments

	switch verb {
	case VerbStop:
		return cmd, nil
	case VerbFade, VerbQueue:
	default:
		return Command{}, fmt.Errorf("unknown verb %q in %s", verb, msg.Address)
	}

	required := 1
	if verb == VerbQueue {
		required = 2
	}
	if len(args) < required || len(args) > 3 {
		return Command{}, fmt.Errorf("%s expects %d to 3 arguments, got %d", msg.Address, required, len(args))
	}

	percent, err := toFloat(args[0])
	if err != nil {
		return Command{}, fmt.Errorf("%s percent: %w", msg.Address, err)
	}
	cmd.Percent = percent

	if len(args) > 1 {
		fade, err := toFloat(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("%s fade time: %w", msg.Address, err)
		}
		cmd.FadeMS = int(math.Round(fade))
		cmd.HasFadeTime = true
	}

	if len(args) > 2 {
		hold, err := toFloat(args[2])
		if err != nil {
			return Command{}, fmt.Errorf("%s hold time: %w", msg.Address, err)
		}
		cmd.HoldMS = int(math.Round(hold))
	}

	return cmd, nil
}

func toFloat(arg interface{}) (float64, error) {
	switch v := arg.(type) {
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	}
	return 0, fmt.Errorf("expected a number, got %T", arg)
}
