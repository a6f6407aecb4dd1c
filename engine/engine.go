// Package engine runs the render loop that ticks every channel's actions.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/robmorgan/halo-fade/events"
	"github.com/robmorgan/halo-fade/fixture"
	"github.com/robmorgan/halo-fade/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// HaloLoop evaluates the patch at a fixed tick rate.
type HaloLoop struct {
	clock     clock.WithTicker
	tickRate  time.Duration
	manager   fixture.Manager
	publisher events.Publisher
}

// New creates a render loop. A nil publisher drops completion events.
func New(clk clock.WithTicker, tickRate time.Duration, manager fixture.Manager, publisher events.Publisher) *HaloLoop {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &HaloLoop{
		clock:     clk,
		tickRate:  tickRate,
		manager:   manager,
		publisher: publisher,
	}
}

func (gl *HaloLoop) GetTickRate() time.Duration {
	return gl.tickRate
}

// Run ticks the patch until ctx is cancelled.
func (gl *HaloLoop) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := logger.GetProjectLogger()
	logger.Infof("render loop started, tick=%v", gl.tickRate)

	ticker := gl.clock.NewTicker(gl.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("render loop shutdown")
			return
		case <-ticker.C():
			gl.Step()
		}
	}
}

// Step runs a single tick at the clock's current time and returns what changed.
func (gl *HaloLoop) Step() []fixture.Update {
	now := gl.clock.Now()
	updates := gl.manager.Update(now.UnixMilli())

	logger := logger.GetProjectLogger()
	for _, u := range updates {
		if u.Completed == nil {
			continue
		}

		fields := logrus.Fields{"channel": u.Channel, "universe": u.Universe, "address": u.Address, "value": u.Value}
		logger.WithFields(fields).Debugf("completed %s", u.Completed)

		err := gl.publisher.Publish(events.Event{
			Timestamp: now,
			Type:      events.EventCompleted,
			Channel:   u.Channel,
			Universe:  u.Universe,
			Address:   u.Address,
			Value:     u.Value,
			Action:    u.Completed.String(),
		})
		if err != nil {
			logger.WithFields(fields).Errorf("could not publish completion: %v", err)
		}
	}
	return updates
}
