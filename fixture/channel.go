package fixture

import (
	"sync"

	"github.com/robmorgan/halo-fade/action"
	"github.com/robmorgan/halo-fade/utils"
)

const StatusIdle = "idle"

// Channel represents a single DMX channel and the queue of actions driving it.
//
// Halo stores channel values in the high-resolution domain (native value << 8) so fades can move in sub-steps.
type Channel struct {
	Name     string
	Universe int
	Address  int

	mu      sync.Mutex
	value   int
	actions []action.Action
}

// Update describes what happened to a channel during a single tick.
type Update struct {
	Channel  string
	Universe int
	Address  int

	// Native DMX value after the tick
	Value   int
	Changed bool

	// Completed is the action retired during this tick, if any
	Completed action.Action
}

// ChannelState is a point in time view of a channel for monitoring.
type ChannelState struct {
	Name     string
	Universe int
	Address  int
	Value    int
	Status   string
	Pending  int
}

// hiResValue hands a channel's value to an action without taking the channel lock again.
type hiResValue int

func (v hiResValue) HiResValue() int {
	return int(v)
}

func NewChannel(name string, universe, address int) *Channel {
	return &Channel{
		Name:     name,
		Universe: universe,
		Address:  address,
	}
}

// HiResValue returns the current high-resolution value.
func (c *Channel) HiResValue() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Value returns the current native DMX value.
func (c *Channel) Value() int {
	return utils.FromHiRes(c.HiResValue())
}

// SetValue jumps straight to a native value. Queued actions keep running from it on the next tick.
func (c *Channel) SetValue(value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = utils.ToHiRes(value)
}

// AddAction appends an action to the queue. It starts once every action ahead of it has completed.
func (c *Channel) AddAction(a action.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions = append(c.actions, a)
}

// SetAction replaces the queue with a single action, abandoning whatever was running.
func (c *Channel) SetAction(a action.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions = []action.Action{a}
}

// Stop drops all queued actions and leaves the channel at its current value.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions = nil
}

// HasRunningActions reports whether any action is queued on the channel.
func (c *Channel) HasRunningActions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.actions) > 0
}

// Update evaluates the head of the action queue at nowMs and retires it once it completes.
func (c *Channel) Update(nowMs int64) Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := Update{
		Channel:  c.Name,
		Universe: c.Universe,
		Address:  c.Address,
	}

	if len(c.actions) > 0 {
		current := c.actions[0]
		newValue := utils.Clamp(current.NewValue(hiResValue(c.value), nowMs), 0, utils.HiResMax)
		u.Changed = newValue != c.value
		c.value = newValue

		if current.Completed() {
			c.actions = c.actions[1:]
			u.Completed = current
		}
	}

	u.Value = utils.FromHiRes(c.value)
	return u
}

// State returns a snapshot of the channel for monitoring.
func (c *Channel) State() ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := StatusIdle
	if len(c.actions) > 0 {
		status = action.StateNotStarted.String()
		if s, ok := c.actions[0].(interface{ State() action.State }); ok {
			status = s.State().String()
		}
	}

	return ChannelState{
		Name:     c.Name,
		Universe: c.Universe,
		Address:  c.Address,
		Value:    utils.FromHiRes(c.value),
		Status:   status,
		Pending:  len(c.actions),
	}
}
