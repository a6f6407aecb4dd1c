package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/nickysemenza/gola"
	"github.com/robmorgan/halo-fade/config"
	"github.com/robmorgan/halo-fade/engine"
	"github.com/robmorgan/halo-fade/events"
	"github.com/robmorgan/halo-fade/fixture"
	"github.com/robmorgan/halo-fade/logger"
	"github.com/robmorgan/halo-fade/monitor"
	"github.com/robmorgan/halo-fade/osctrigger"
	"k8s.io/utils/clock"
)

// Options are the command line settings.
type Options struct {
	ConfigPath string
	LogLevel   string
	TUI        bool

	// TUI mode writes logs here so they do not tear up the dashboard
	LogFile string
}

func main() {
	opts := Options{}
	flag.StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file, defaults are used when empty")
	flag.StringVar(&opts.LogLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.BoolVar(&opts.TUI, "tui", false, "show the channel monitor")
	flag.StringVar(&opts.LogFile, "log-file", "halo-fade.log", "log file used while the channel monitor is shown")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, opts); err != nil {
		logger.GetProjectLogger().Fatalf("halo-fade exited. err='%v'", err)
	}
}

func loadConfig(opts Options) (config.HaloConfig, error) {
	if opts.ConfigPath == "" {
		return config.NewHaloConfig()
	}
	return config.LoadConfigFile(opts.ConfigPath)
}

// Run starts the fade engine and its inputs and outputs, and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// initialize the logger
	logger := logger.GetProjectLogger()

	logger.Info("Initializing config...")
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if err := setLevel(level); err != nil {
		return err
	}

	if opts.TUI {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.WithStackTrace(err)
		}
		defer f.Close()
		logger.SetOutput(f)
		defer logger.SetOutput(os.Stderr)
	}

	logger.Info("Initializing fixture manager...")
	fm, err := fixture.NewManager(cfg)
	if err != nil {
		return err
	}
	logger.Infof("Patched %d channels", len(fm.GetChannelNames()))

	publisher := newPublisher(cfg.MQTT)
	defer publisher.Close()

	wg := sync.WaitGroup{}

	logger.Info("Starting render loop...")
	loop := engine.New(clock.RealClock{}, time.Duration(cfg.Engine.TickMS)*time.Millisecond, fm, publisher)
	wg.Add(1)
	go loop.Run(ctx, &wg)

	if cfg.OLA.Enabled {
		// configure OLA for DMX output
		logger.Info("Connecting to OLA...")
		client, err := gola.New(cfg.OLA.Address)
		if err != nil {
			logger.Errorf("could not connect to OLA: %v", err)
		} else {
			wg.Add(1)
			go fixture.SendDMXWorker(ctx, client, time.Duration(cfg.OLA.TickMS)*time.Millisecond, fm, &wg)
		}
	}

	if cfg.OSC.Enabled {
		server := osctrigger.NewServer(fm, cfg.Fade.FullRangeMS)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ListenAndServe(ctx, cfg.OSC.Address); err != nil {
				logger.Errorf("OSC server stopped: %v", err)
			}
		}()
	}

	if opts.TUI {
		if err := monitor.Run(ctx, fm); err != nil {
			logger.Errorf("monitor exited: %v", err)
		}
	} else {
		<-ctx.Done()
	}

	logger.Println("shutting down halo-fade")
	cancel()
	wg.Wait()
	return nil
}

func setLevel(level string) error {
	if level == "" {
		return nil
	}
	return logger.SetLevel(level)
}

func newPublisher(cfg config.MQTTConfig) events.Publisher {
	if !cfg.Enabled {
		return events.NopPublisher{}
	}

	logger := logger.GetProjectLogger()
	logger.Infof("Connecting to MQTT broker %s...", cfg.Broker)
	publisher, err := events.NewRealPublisher(cfg.Broker, cfg.ClientID, cfg.Topic)
	if err != nil {
		logger.Errorf("could not connect to MQTT, completion events will not be published: %v", err)
		return events.NopPublisher{}
	}
	return publisher
}
