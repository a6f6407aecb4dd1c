package fixture

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robmorgan/halo-fade/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOLAClient struct {
	mu     sync.Mutex
	sent   map[int][]byte
	closed bool
}

func (c *fakeOLAClient) SendDmx(universe int, values []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent[universe] = values
	return true, nil
}

func (c *fakeOLAClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeOLAClient) get(universe int) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[universe]
}

func TestDMXState(t *testing.T) {
	t.Parallel()

	s := NewDMXState()
	require.NoError(t, s.Set(1, 512, 255))
	require.Error(t, s.Set(1, 0, 1))
	require.Error(t, s.Set(1, 513, 1))
	require.Error(t, s.Set(1, 1, 256))

	assert.Equal(t, 255, s.Get(1, 512))
	assert.Equal(t, 0, s.Get(7, 1))

	// copies are detached from the live state
	universes := s.Universes()
	require.Len(t, universes[1], config.MaxAddress)
	universes[1][511] = 0
	assert.Equal(t, 255, s.Get(1, 512))
}

func TestSendDMXWorker(t *testing.T) {
	t.Parallel()

	m, err := NewManager(config.HaloConfig{
		PatchedFixtures: []config.PatchedFixture{{Name: "house", Universe: 3, Address: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, m.GetDMXState().Set(3, 2, 77))

	client := &fakeOLAClient{sent: make(map[int][]byte)}
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}
	wg.Add(1)

	done := make(chan error, 1)
	go func() {
		done <- SendDMXWorker(ctx, client, time.Millisecond, m, &wg)
	}()

	require.Eventually(t, func() bool {
		sent := client.get(3)
		return len(sent) == config.MaxAddress && sent[1] == 77
	}, time.Second, time.Millisecond)

	cancel()
	wg.Wait()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, client.closed)
}
