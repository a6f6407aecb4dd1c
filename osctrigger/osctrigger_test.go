package osctrigger

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/halo-fade/action"
	"github.com/robmorgan/halo-fade/config"
	"github.com/robmorgan/halo-fade/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		msg      *osc.Message
		expected Command
	}{
		{
			osc.NewMessage("/halo/fade/left_middle_par/intensity", float32(50)),
			Command{Verb: VerbFade, Channel: "left_middle_par/intensity", Percent: 50, HoldMS: action.HoldForever},
		},
		{
			osc.NewMessage("/halo/fade/house", int32(100), int32(1500), int32(250)),
			Command{Verb: VerbFade, Channel: "house", Percent: 100, FadeMS: 1500, HasFadeTime: true, HoldMS: 250},
		},
		{
			osc.NewMessage("/halo/queue/house", float64(12.5), float32(300.4)),
			Command{Verb: VerbQueue, Channel: "house", Percent: 12.5, FadeMS: 300, HasFadeTime: true, HoldMS: action.HoldForever},
		},
		{
			osc.NewMessage("/halo/stop/house"),
			Command{Verb: VerbStop, Channel: "house", HoldMS: action.HoldForever},
		},
	}

	for _, testCase := range testCases {
		cmd, err := ParseMessage(testCase.msg)
		require.NoError(t, err, testCase.msg.Address)
		assert.Equal(t, testCase.expected, cmd)
	}
}

func TestParseMessageErrors(t *testing.T) {
	t.Parallel()

	bad := []*osc.Message{
		osc.NewMessage("/other/fade/house", float32(1)),
		osc.NewMessage("/halo/fade"),
		osc.NewMessage("/halo/fade/", float32(1)),
		osc.NewMessage("/halo/blink/house", float32(1)),
		osc.NewMessage("/halo/fade/house"),
		osc.NewMessage("/halo/queue/house", float32(1)),
		osc.NewMessage("/halo/fade/house", "bright"),
		osc.NewMessage("/halo/fade/house", float32(1), int32(1), int32(1), int32(1)),
	}

	for _, msg := range bad {
		_, err := ParseMessage(msg)
		assert.Error(t, err, msg.String())
	}
}

func newTestManager(t *testing.T) fixture.Manager {
	m, err := fixture.NewManager(config.HaloConfig{
		PatchedFixtures: []config.PatchedFixture{{Name: "house", Universe: 1, Address: 1}},
	})
	require.NoError(t, err)
	return m
}

func TestExecuteDerivesFadeTime(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	s := NewServer(m, 2550)

	require.NoError(t, s.Execute(Command{Verb: VerbFade, Channel: "house", Percent: 50, HoldMS: 0}))

	// 0 -> 128 over a 2550ms full range takes 1280ms
	m.Update(0)
	updates := m.Update(640)
	require.Len(t, updates, 1)
	assert.Equal(t, 64, updates[0].Value)

	updates = m.Update(1280)
	require.Len(t, updates, 1)
	assert.Equal(t, 128, updates[0].Value)
	assert.NotNil(t, updates[0].Completed)
}

func TestExecuteQueueAndStop(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	s := NewServer(m, 2550)
	ch, err := m.GetByName("house")
	require.NoError(t, err)

	require.NoError(t, s.Execute(Command{Verb: VerbQueue, Channel: "house", Percent: 100, FadeMS: 0, HasFadeTime: true, HoldMS: 0}))
	require.NoError(t, s.Execute(Command{Verb: VerbQueue, Channel: "house", Percent: 0, FadeMS: 100, HasFadeTime: true, HoldMS: 0}))
	assert.Equal(t, 2, ch.State().Pending)

	// a fade replaces whatever is queued
	require.NoError(t, s.Execute(Command{Verb: VerbFade, Channel: "house", Percent: 20, FadeMS: 0, HasFadeTime: true, HoldMS: -1}))
	assert.Equal(t, 1, ch.State().Pending)

	require.NoError(t, s.Execute(Command{Verb: VerbStop, Channel: "house"}))
	assert.False(t, ch.HasRunningActions())

	assert.ErrorIs(t, s.Execute(Command{Verb: VerbFade, Channel: "garage", Percent: 1}), fixture.ErrChannelNotFound)
}

func TestServeOverUDP(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	s := NewServer(m, 2550)
	ch, err := m.GetByName("house")
	require.NoError(t, err)

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	port := conn.LocalAddr().(*net.UDPAddr).Port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, conn)
	}()

	client := osc.NewClient("127.0.0.1", port)
	require.NoError(t, client.Send(osc.NewMessage("/halo/fade/house", float32(100), int32(0), int32(-1))))

	require.Eventually(t, ch.HasRunningActions, time.Second, 5*time.Millisecond)
	m.Update(0)
	assert.Equal(t, 255, ch.Value())

	cancel()
	require.NoError(t, <-done)
}
