package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robmorgan/halo-fade/config"
	"github.com/robmorgan/halo-fade/logger"
	"github.com/sirupsen/logrus"
)

// DMXState holds the DMX512 values for each channel
type DMXState struct {
	universes map[int][]byte
	lock      sync.Mutex
}

func NewDMXState() *DMXState {
	return &DMXState{universes: make(map[int][]byte)}
}

// Get returns the value of a channel, or 0 for a universe that has never been written.
func (s *DMXState) Get(universe, address int) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.universes[universe] == nil || address < 1 || address > config.MaxAddress {
		return 0
	}
	return int(s.universes[universe][address-1])
}

// Set writes a native value to a channel.
func (s *DMXState) Set(universe, address, value int) error {
	if address < 1 || address > config.MaxAddress {
		return fmt.Errorf("dmx address (%d) not in range, universe=%d", address, universe)
	}
	if value < 0 || value > 255 {
		return fmt.Errorf("dmx value (%d) not in range, universe=%d address=%d", value, universe, address)
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.initializeUniverse(universe)
	s.universes[universe][address-1] = byte(value)
	return nil
}

func (s *DMXState) initializeUniverse(universe int) {
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, config.MaxAddress)
	}
}

// Universes returns a copy of every universe's buffer.
func (s *DMXState) Universes() map[int][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[int][]byte, len(s.universes))
	for k, v := range s.universes {
		buf := make([]byte, len(v))
		copy(buf, v)
		out[k] = buf
	}
	return out
}

// OLAClient is the interface for communicating with OLA
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// SendDMXWorker sends OLA the current dmxState across all universes
func SendDMXWorker(ctx context.Context, client OLAClient, tick time.Duration, manager Manager, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer client.Close()

	logger := logger.GetProjectLogger()

	t := time.NewTimer(tick)
	defer t.Stop()
	logger.Debugf("SendDMXWorker started, tick=%v", tick)

	for {
		select {
		case <-ctx.Done():
			logger.Info("SendDMXWorker shutdown")
			return ctx.Err()
		case <-t.C:
			for universe, values := range manager.GetDMXState().Universes() {
				if _, err := client.SendDmx(universe, values); err != nil {
					logger.WithFields(logrus.Fields{"universe": universe}).Errorf("could not send dmx: %v", err)
				}
			}
			t.Reset(tick)
		}
	}
}
