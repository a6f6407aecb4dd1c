package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPayload(t *testing.T) {
	t.Parallel()

	event := Event{
		Timestamp: time.Date(2026, 2, 2, 22, 18, 12, 0, time.FixedZone("CET", 3600)),
		Type:      EventCompleted,
		Channel:   "left_middle_par/intensity",
		Universe:  1,
		Address:   115,
		Value:     200,
		Action:    "FadeAction: 51200, fade time 1000ms, hold time 0ms",
	}

	b, err := FormatPayload(event)
	require.NoError(t, err)

	var parsed Payload
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, "2026-02-02T21:18:12Z", parsed.Timestamp)
	assert.Equal(t, "COMPLETED", parsed.Event)
	assert.Equal(t, "left_middle_par/intensity", parsed.Channel)
	assert.Equal(t, 115, parsed.Address)
	assert.Equal(t, 200, parsed.Value)
}

func TestFormatPayloadOmitsEmptyAction(t *testing.T) {
	t.Parallel()

	b, err := FormatPayload(Event{Type: EventCompleted, Channel: "house"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "action")
}

func TestFakePublisher(t *testing.T) {
	t.Parallel()

	f := NewFakePublisher()
	require.NoError(t, f.Publish(Event{Type: EventCompleted, Channel: "house"}))
	require.Len(t, f.Published(), 1)
	require.Len(t, f.Payloads, 1)

	f.PublishError = errors.New("broker down")
	require.Error(t, f.Publish(Event{Channel: "stage"}))
	assert.Len(t, f.Published(), 1)

	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()

	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(Event{}))
	assert.NoError(t, p.Close())
}
