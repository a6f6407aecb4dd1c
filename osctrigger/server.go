package osctrigger

import (
	"context"
	"fmt"
	"net"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/halo-fade/action"
	"github.com/robmorgan/halo-fade/fixture"
	"github.com/robmorgan/halo-fade/logger"
	"github.com/robmorgan/halo-fade/utils"
	"github.com/sirupsen/logrus"
)

// Controller is the part of the fixture manager the OSC server drives.
type Controller interface {
	GetByName(name string) (*fixture.Channel, error)
	FadeTo(name string, a action.Action, replace bool) error
	Stop(name string) error
}

// Server dispatches incoming OSC packets to a Controller.
type Server struct {
	controller Controller

	// used to derive a fade time when a message does not carry one
	fullRangeMS int
}

func NewServer(controller Controller, fullRangeMS int) *Server {
	return &Server{
		controller:  controller,
		fullRangeMS: fullRangeMS,
	}
}

// ListenAndServe listens on a UDP address and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	logger.GetProjectLogger().Infof("Listening for OSC via UDP on %s...", conn.LocalAddr())
	return s.Serve(ctx, conn)
}

// Serve reads packets from conn until ctx is cancelled. The connection is closed on return.
func (s *Server) Serve(ctx context.Context, conn net.PacketConn) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	server := &osc.Server{Dispatcher: s}
	err := server.Serve(conn)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Dispatch implements osc.Dispatcher.
func (s *Server) Dispatch(packet osc.Packet) {
	switch packet := packet.(type) {
	case *osc.Message:
		s.handle(packet)
	case *osc.Bundle:
		for _, msg := range packet.Messages {
			s.handle(msg)
		}
		for _, bundle := range packet.Bundles {
			s.Dispatch(bundle)
		}
	}
}

func (s *Server) handle(msg *osc.Message) {
	logger := logger.GetProjectLogger()

	cmd, err := ParseMessage(msg)
	if err != nil {
		logger.Warnf("ignoring OSC message: %v", err)
		return
	}

	if err := s.Execute(cmd); err != nil {
		logger.WithFields(logrus.Fields{"channel": cmd.Channel, "verb": cmd.Verb}).Errorf("OSC command failed: %v", err)
	}
}

// Execute applies a command to the controller.
func (s *Server) Execute(cmd Command) error {
	if cmd.Verb == VerbStop {
		return s.controller.Stop(cmd.Channel)
	}

	var fade *action.FadeAction
	if cmd.HasFadeTime {
		fade = action.NewFadeActionFromPercent(cmd.FadeMS, cmd.Percent, cmd.HoldMS)
	} else {
		ch, err := s.controller.GetByName(cmd.Channel)
		if err != nil {
			return err
		}
		fade = action.NewFadeActionScaled(s.fullRangeMS, ch.Value(), utils.PercentToDMX(cmd.Percent), cmd.HoldMS)
	}

	return s.controller.FadeTo(cmd.Channel, fade, cmd.Verb == VerbFade)
}
