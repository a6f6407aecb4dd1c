package fixture

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	commonerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/halo-fade/action"
	"github.com/robmorgan/halo-fade/config"
	"github.com/robmorgan/halo-fade/logger"
	"github.com/sirupsen/logrus"
)

// ErrChannelNotFound is returned when a channel name is not patched.
var ErrChannelNotFound = errors.New("channel not found")

// Manager is the fixture manager interface
type Manager interface {
	GetByName(name string) (*Channel, error)
	GetChannelNames() []string
	GetFixture(name string) (*Fixture, error)
	FadeTo(name string, a action.Action, replace bool) error
	Stop(name string) error
	Update(nowMs int64) []Update
	Snapshot() []ChannelState
	GetDMXState() *DMXState
}

// NameMap holds string-keyed channels
type NameMap map[string]*Channel

// StateManager holds the patched fixtures and their channels
type StateManager struct {
	fixtures map[string]*Fixture
	items    NameMap

	// sorted channel names so every tick visits channels in the same order
	names []string

	// serialises ticks against each other, channels guard their own state
	updateLock sync.Mutex
	dmxState   *DMXState
}

// NewManager patches the configured fixtures
func NewManager(cfg config.HaloConfig) (Manager, error) {
	m := StateManager{
		fixtures: make(map[string]*Fixture),
		items:    make(NameMap),
		dmxState: NewDMXState(),
	}

	type slot struct{ universe, address int }
	used := make(map[slot]string)

	for i := range cfg.PatchedFixtures {
		x := &cfg.PatchedFixtures[i]

		if _, ok := m.fixtures[x.Name]; ok {
			return nil, commonerrors.WithStackTrace(fmt.Errorf("duplicate fixtures found! name=%s", x.Name))
		}

		var f *Fixture
		if x.Profile == "" {
			f = newFixture(*x, nil)
		} else {
			prof, ok := cfg.FixtureProfiles[x.Profile]
			if !ok {
				return nil, commonerrors.WithStackTrace(fmt.Errorf("unknown profile %s for fixture %s", x.Profile, x.Name))
			}
			f = newFixture(*x, &prof)
		}

		for _, ch := range f.Channels {
			s := slot{ch.Universe, ch.Address}
			if other, ok := used[s]; ok {
				return nil, commonerrors.WithStackTrace(fmt.Errorf("channel %s overlaps %s at universe %d address %d", ch.Name, other, ch.Universe, ch.Address))
			}
			if _, ok := m.items[ch.Name]; ok {
				return nil, commonerrors.WithStackTrace(fmt.Errorf("duplicate channels found! name=%s", ch.Name))
			}
			if err := m.dmxState.Set(ch.Universe, ch.Address, 0); err != nil {
				return nil, commonerrors.WithStackTrace(err)
			}
			used[s] = ch.Name
			m.items[ch.Name] = ch
			m.names = append(m.names, ch.Name)
		}
		m.fixtures[x.Name] = f
	}
	sort.Strings(m.names)

	return &m, nil
}

// GetByName looks up a channel by name
func (m *StateManager) GetByName(name string) (*Channel, error) {
	ch, ok := m.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, name)
	}
	return ch, nil
}

// GetChannelNames returns all the channel names in sorted order
func (m *StateManager) GetChannelNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// GetFixture looks up a patched fixture by name
func (m *StateManager) GetFixture(name string) (*Fixture, error) {
	if f, found := m.fixtures[name]; found {
		return f, nil
	}
	return nil, fmt.Errorf("the patch does not contain a fixture with the name: %s", name)
}

// FadeTo hands an action to a channel, either replacing its queue or appending to it.
func (m *StateManager) FadeTo(name string, a action.Action, replace bool) error {
	ch, err := m.GetByName(name)
	if err != nil {
		return err
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{"channel": name, "replace": replace}).Debugf("queued %s", a)
	if replace {
		ch.SetAction(a)
	} else {
		ch.AddAction(a)
	}
	return nil
}

// Stop drops all actions on a channel
func (m *StateManager) Stop(name string) error {
	ch, err := m.GetByName(name)
	if err != nil {
		return err
	}
	ch.Stop()
	return nil
}

// Update ticks every channel at nowMs, writes the results to the DMX state and returns the channels that changed or
// completed an action.
func (m *StateManager) Update(nowMs int64) []Update {
	m.updateLock.Lock()
	defer m.updateLock.Unlock()

	logger := logger.GetProjectLogger()

	var updates []Update
	for _, name := range m.names {
		u := m.items[name].Update(nowMs)
		if !u.Changed && u.Completed == nil {
			continue
		}
		if err := m.dmxState.Set(u.Universe, u.Address, u.Value); err != nil {
			logger.WithFields(logrus.Fields{"channel": name}).Errorf("could not set dmx state: %v", err)
		}
		updates = append(updates, u)
	}
	return updates
}

// Snapshot returns the state of every channel in sorted order
func (m *StateManager) Snapshot() []ChannelState {
	out := make([]ChannelState, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, m.items[name].State())
	}
	return out
}

// GetDMXState returns the current dmx state
func (m *StateManager) GetDMXState() *DMXState {
	return m.dmxState
}
