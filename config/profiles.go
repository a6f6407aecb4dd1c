package config

import "github.com/robmorgan/halo-fade/profile"

func initializeFixtureProfiles() map[string]profile.Profile {
	out := map[string]profile.Profile{
		"dimmer": {
			Name: "Generic Dimmer",
			Channels: map[string]int{
				profile.ChannelTypeIntensity: 1,
			},
		},
		"shehds-par": {
			Name: "Shehds LED Flat PAR 12x3W RGBW",
			Channels: map[string]int{
				profile.ChannelTypeIntensity:      1,
				profile.ChannelTypeRed:            2,
				profile.ChannelTypeGreen:          3,
				profile.ChannelTypeBlue:           4,
				profile.ChannelTypeWhite:          5,
				profile.ChannelTypeStrobe:         6,
				profile.ChannelTypeFunctionSelect: 7,
				profile.ChannelTypeUnknown:        8,
			},
		},
		"shehds-led-spot-60w": {
			Name: "Shehds LED Spot 60W",
			Channels: map[string]int{
				profile.ChannelTypePan:            1,
				profile.ChannelTypeTilt:           2,
				profile.ChannelTypeColor:          3,
				profile.ChannelTypeGobo:           4,
				profile.ChannelTypeStrobe:         5,
				profile.ChannelTypeIntensity:      6,
				profile.ChannelTypeMotorSpeed:     7,
				profile.ChannelTypeFunctionSelect: 8,
				profile.ChannelTypeReset:          9,
			},
		},
		"shehds-led-wash-7x18w-rgbwa-uv": {
			Name: "Shehds LED Wash 7x18W RGBWA+UV",
			// 10 channel mode
			Channels: map[string]int{
				profile.ChannelTypePan:       1,
				profile.ChannelTypeTilt:      2,
				profile.ChannelTypeIntensity: 3,
				profile.ChannelTypeRed:       4,
				profile.ChannelTypeGreen:     5,
				profile.ChannelTypeBlue:      6,
				profile.ChannelTypeWhite:     7,
				profile.ChannelTypeAmber:     8,
				profile.ChannelTypeUV:        9,
				profile.ChannelTypeUnknown:   10,
			},
		},
		"shehds-led-bar-beam-8x12w": {
			Name: "Shehds LED Bar Beam 8x12W RGBW",
			// 9 channel mode
			Channels: map[string]int{
				profile.ChannelTypeTilt:           1,
				profile.ChannelTypeTiltSpeed:      2,
				profile.ChannelTypeFunctionSelect: 3,
				profile.ChannelTypeFunctionSpeed:  4,
				profile.ChannelTypeIntensity:      5,
				profile.ChannelTypeRed:            6,
				profile.ChannelTypeGreen:          7,
				profile.ChannelTypeBlue:           8,
				profile.ChannelTypeWhite:          9,
			},
		},
	}

	return out
}
