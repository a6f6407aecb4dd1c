package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/halo-fade/profile"
	"gopkg.in/yaml.v3"
)

// MaxAddress is the number of addresses in a DMX universe.
const MaxAddress = 512

// HaloConfig represents options that configure the global behavior of the program
type HaloConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
	Fade    FadeConfig    `yaml:"fade"`
	OLA     OLAConfig     `yaml:"ola"`
	OSC     OSCConfig     `yaml:"osc"`
	MQTT    MQTTConfig    `yaml:"mqtt"`

	// The fixture profiles
	FixtureProfiles map[string]profile.Profile `yaml:"profiles"`

	// PatchedFixtures stores all of the patched fixtures
	PatchedFixtures []PatchedFixture `yaml:"fixtures"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// EngineConfig controls the render loop.
type EngineConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// FadeConfig holds defaults for fades requested without an explicit time.
type FadeConfig struct {
	// Time a full 0-255 fade takes, shorter moves are scaled down proportionally
	FullRangeMS int `yaml:"full_range_ms"`
}

type OLAConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	TickMS  int    `yaml:"tick_ms"`
}

type OSCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

// NewHaloConfig creates a HaloConfig with reasonable defaults for real usage
func NewHaloConfig() (HaloConfig, error) {
	cfg := DefaultConfig()
	return cfg, cfg.Validate()
}

// DefaultConfig returns a fully populated config with the default patch.
func DefaultConfig() HaloConfig {
	return HaloConfig{
		Logging: LoggingConfig{Level: "info"},
		Engine:  EngineConfig{TickMS: 25},
		Fade:    FadeConfig{FullRangeMS: 2550},
		OLA: OLAConfig{
			Enabled: true,
			Address: "localhost:9010",
			TickMS:  40,
		},
		OSC: OSCConfig{
			Enabled: true,
			Address: "127.0.0.1:8765",
		},
		MQTT: MQTTConfig{
			Enabled:  false,
			Broker:   "tcp://localhost:1883",
			ClientID: "halo-fade",
			Topic:    "halo/fade/events",
		},
		FixtureProfiles: initializeFixtureProfiles(),
		PatchedFixtures: PatchFixtures(),
	}
}

// LoadConfigFile reads a YAML config file on top of the defaults. Unknown fields are rejected.
func LoadConfigFile(path string) (HaloConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return HaloConfig{}, errors.WithStackTrace(fmt.Errorf("read config file: %w", err))
	}
	return ParseConfig(b)
}

// ParseConfig decodes YAML config on top of the defaults and validates the result. Empty input yields the defaults.
func ParseConfig(b []byte) (HaloConfig, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	// an empty document leaves the defaults untouched
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return HaloConfig{}, errors.WithStackTrace(fmt.Errorf("decode config yaml: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return HaloConfig{}, err
	}
	return cfg, nil
}

// Validate checks the config for values the rest of the program cannot work with.
func (c HaloConfig) Validate() error {
	if c.Engine.TickMS <= 0 {
		return fmt.Errorf("engine.tick_ms must be positive, got %d", c.Engine.TickMS)
	}
	if c.Fade.FullRangeMS < 0 {
		return fmt.Errorf("fade.full_range_ms must not be negative, got %d", c.Fade.FullRangeMS)
	}
	if c.OLA.Enabled && (c.OLA.Address == "" || c.OLA.TickMS <= 0) {
		return fmt.Errorf("ola needs an address and a positive tick_ms when enabled")
	}
	if c.OSC.Enabled && c.OSC.Address == "" {
		return fmt.Errorf("osc.address is required when osc is enabled")
	}
	if c.MQTT.Enabled && (c.MQTT.Broker == "" || c.MQTT.Topic == "") {
		return fmt.Errorf("mqtt needs a broker and a topic when enabled")
	}

	for name, p := range c.FixtureProfiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
	}

	for _, fixture := range c.PatchedFixtures {
		if err := c.validateFixture(fixture); err != nil {
			return err
		}
	}
	return nil
}

func (c HaloConfig) validateFixture(f PatchedFixture) error {
	if f.Name == "" {
		return fmt.Errorf("fixture at universe %d address %d has no name", f.Universe, f.Address)
	}
	if f.Universe < 1 {
		return fmt.Errorf("fixture %s has invalid universe %d", f.Name, f.Universe)
	}

	footprint := 1
	if f.Profile != "" {
		p, ok := c.FixtureProfiles[f.Profile]
		if !ok {
			return fmt.Errorf("fixture %s uses unknown profile %s", f.Name, f.Profile)
		}
		footprint = p.Footprint()
	}

	if f.Address < 1 || f.Address+footprint-1 > MaxAddress {
		return fmt.Errorf("fixture %s does not fit in the universe (address %d, %d channels)", f.Name, f.Address, footprint)
	}
	return nil
}
