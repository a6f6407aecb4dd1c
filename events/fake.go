package events

import "sync"

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	// Events contains all events that were published.
	Events []Event

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the event.
func (f *FakePublisher) Publish(event Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.PublishError != nil {
		return f.PublishError
	}

	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Events = append(f.Events, event)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// Published returns a copy of the recorded events.
func (f *FakePublisher) Published() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.Events))
	copy(out, f.Events)
	return out
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
