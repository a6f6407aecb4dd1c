package config

// PatchedFixture stores config info for a dmx fixture. A fixture without a profile is a single dimmer channel.
type PatchedFixture struct {
	Name     string `yaml:"name"`
	Address  int    `yaml:"address"`
	Universe int    `yaml:"universe"`
	Profile  string `yaml:"profile,omitempty"`
}

func PatchFixtures() []PatchedFixture {
	s := make([]PatchedFixture, 0)

	s = append(s, patchFrontMiddlePars()...)
	s = append(s, patchFrontTopPars()...)
	s = append(s, patchUplightPars()...)
	s = append(s, patchBeamBars()...)
	s = append(s, patchSpotLights()...)

	return s
}

func patchFrontMiddlePars() []PatchedFixture {
	return []PatchedFixture{
		{Name: "left_middle_par", Address: 115, Universe: 1, Profile: "shehds-par"},
		{Name: "right_middle_par", Address: 139, Universe: 1, Profile: "shehds-par"},
	}
}

func patchFrontTopPars() []PatchedFixture {
	return []PatchedFixture{
		{Name: "left_top_par", Address: 67, Universe: 1, Profile: "shehds-par"},
		{Name: "right_top_par", Address: 76, Universe: 1, Profile: "shehds-par"},
	}
}

func patchUplightPars() []PatchedFixture {
	return []PatchedFixture{
		{Name: "left_uplight_par", Address: 123, Universe: 1, Profile: "shehds-par"},
		{Name: "right_uplight_par", Address: 131, Universe: 1, Profile: "shehds-par"},
	}
}

func patchBeamBars() []PatchedFixture {
	return []PatchedFixture{
		{Name: "left_beam_bar", Address: 163, Universe: 1, Profile: "shehds-led-bar-beam-8x12w"},
		{Name: "right_beam_bar", Address: 57, Universe: 1, Profile: "shehds-led-bar-beam-8x12w"},
	}
}

func patchSpotLights() []PatchedFixture {
	return []PatchedFixture{
		{Name: "left_spot", Address: 20, Universe: 1, Profile: "shehds-led-spot-60w"},
		{Name: "right_spot", Address: 31, Universe: 1, Profile: "shehds-led-spot-60w"},
	}
}
