package profile

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ChannelTypeIntensity = "intensity"
	ChannelTypeStrobe    = "strobe"

	ChannelTypeRed   = "red"
	ChannelTypeGreen = "green"
	ChannelTypeBlue  = "blue"
	ChannelTypeWhite = "white"
	ChannelTypeAmber = "amber"
	ChannelTypeUV    = "uv"
	ChannelTypeColor = "color" // Generic color wheel channel (Shehds spots)

	ChannelTypePan       = "pan"
	ChannelTypePanSpeed  = "panspeed"
	ChannelTypeTilt      = "tilt"
	ChannelTypeTiltSpeed = "tiltspeed"

	ChannelTypeGobo = "gobo"

	ChannelTypeMotorPosition = "motor_position"
	ChannelTypeMotorSpeed    = "motor_speed"

	ChannelTypeFunctionSelect = "function_select"
	ChannelTypeFunctionSpeed  = "function_speed"

	ChannelTypeReset   = "reset"
	ChannelTypeUnknown = "unknown"
)

// Profile holds info for a fixture profile including the channel mappings.
type Profile struct {
	Name string `yaml:"name"`

	// The fixture channels, keyed by channel type with a 1-based offset from the fixture's start address
	Channels map[string]int `yaml:"channels"`
}

// Footprint returns the number of DMX addresses the fixture occupies.
func (p Profile) Footprint() int {
	highest := 0
	for _, offset := range p.Channels {
		if offset > highest {
			highest = offset
		}
	}
	return highest
}

// ChannelTypes returns the channel types sorted by offset.
func (p Profile) ChannelTypes() []string {
	types := maps.Keys(p.Channels)
	slices.SortFunc(types, func(a, b string) bool {
		return p.Channels[a] < p.Channels[b]
	})
	return types
}

// Validate checks that every channel has a usable offset and no two channels share one.
func (p Profile) Validate() error {
	if len(p.Channels) == 0 {
		return fmt.Errorf("profile %q has no channels", p.Name)
	}

	seen := make(map[int]string, len(p.Channels))
	for channelType, offset := range p.Channels {
		if offset < 1 {
			return fmt.Errorf("profile %q channel %s has invalid offset %d", p.Name, channelType, offset)
		}
		if other, ok := seen[offset]; ok {
			return fmt.Errorf("profile %q channels %s and %s share offset %d", p.Name, other, channelType, offset)
		}
		seen[offset] = channelType
	}
	return nil
}
