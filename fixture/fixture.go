package fixture

import (
	"fmt"

	"github.com/robmorgan/halo-fade/config"
	"github.com/robmorgan/halo-fade/profile"
)

// Fixture is a patched device. Each channel of its profile becomes an addressable Channel named
// "<fixture>/<channel type>"; a fixture without a profile is a single channel named after the fixture.
type Fixture struct {
	Name     string
	Universe int

	// The DMX starting address
	Address int
	Profile string

	// The fixture channels keyed by channel type
	Channels map[string]*Channel
}

func newFixture(patch config.PatchedFixture, prof *profile.Profile) *Fixture {
	f := &Fixture{
		Name:     patch.Name,
		Universe: patch.Universe,
		Address:  patch.Address,
		Profile:  patch.Profile,
		Channels: make(map[string]*Channel),
	}

	if prof == nil {
		f.Channels[""] = NewChannel(patch.Name, patch.Universe, patch.Address)
		return f
	}

	for _, channelType := range prof.ChannelTypes() {
		address := patch.Address + prof.Channels[channelType] - 1
		name := fmt.Sprintf("%s/%s", patch.Name, channelType)
		f.Channels[channelType] = NewChannel(name, patch.Universe, address)
	}
	return f
}

// GetChannelCount returns the number of channels the fixture uses
func (f *Fixture) GetChannelCount() int {
	return len(f.Channels)
}
