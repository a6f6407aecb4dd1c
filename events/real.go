package events

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
	topic  string
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker, clientID, topic string) (*RealPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{
		client: client,
		topic:  topic,
	}, nil
}

// Publish sends a channel event to the broker, QoS 0 and not retained.
func (p *RealPublisher) Publish(event Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
