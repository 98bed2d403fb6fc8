package faultblink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/larsks/faultblink/internal/blink"
	"github.com/larsks/faultblink/internal/cli"
	"github.com/larsks/faultblink/internal/diag"
	"github.com/larsks/faultblink/internal/drivers"
	"github.com/larsks/faultblink/internal/fault"
	"github.com/larsks/faultblink/internal/led"
	"github.com/larsks/faultblink/internal/mqtt"
	"github.com/larsks/faultblink/internal/pattern"
	"github.com/larsks/faultblink/internal/reporter"
)

type (
	mqttClient interface {
		mqtt.Publisher
		WaitForConnection(ctx context.Context, timeout time.Duration) bool
		Disconnect(quiesce uint)
	}

	// Handler runs faultblink with a loaded Config.
	Handler struct {
		console      io.Writer
		createDevice func(driver string, config map[string]any) (led.Device, error)
		openSerial   func(path string, baud int) (diag.Sink, error)
		openDisplay  func(dryRun bool) (diag.Sink, error)
		newMQTT      func(config mqtt.Config) (mqttClient, error)
	}
)

// NewHandler creates a Handler that writes console diagnostics to console,
// or to stderr if console is nil.
func NewHandler(console io.Writer) *Handler {
	if console == nil {
		console = os.Stderr
	}
	return &Handler{
		console:      console,
		createDevice: drivers.Create,
		openSerial:   diag.OpenSerial,
		openDisplay:  diag.OpenDisplay,
		newMQTT: func(config mqtt.Config) (mqttClient, error) {
			return mqtt.NewClient(config)
		},
	}
}

// Start runs until SIGINT or SIGTERM.
func (h *Handler) Start(c cli.Configurable) error {
	cfg, ok := c.(*Config)
	if !ok {
		return fmt.Errorf("%w: %T", ErrWrongConfigType, c)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return h.Run(ctx, cfg)
}

// Run signals the configured fault until ctx is cancelled. The LED is left
// off and every sink closed on return.
func (h *Handler) Run(ctx context.Context, cfg *Config) error {
	device, err := h.createDevice(cfg.Driver, cfg.DeviceConfig())
	if err != nil {
		return err
	}
	defer device.Close() //nolint:errcheck

	if err := device.Init(); err != nil {
		return err
	}
	defer func() {
		if err := device.TurnOff(); err != nil {
			log.Printf("failed to turn off %s: %v", device, err)
		}
	}()

	stream, client, err := h.openStream(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.Printf("failed to close diagnostic sinks: %v", err)
		}
		if client != nil {
			client.Disconnect(250)
		}
	}()

	blinker, err := blink.New(device, stream, blink.WithPeriod(cfg.Period), blink.WithLenient(cfg.Lenient))
	if err != nil {
		return err
	}

	log.Printf("signalling on %s via %v", device, stream.Sinks())
	err = h.signal(ctx, cfg, blinker, stream, client)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return nil
	}
	return err
}

func (h *Handler) signal(ctx context.Context, cfg *Config, blinker *blink.Blinker, stream *diag.Stream, client mqttClient) error {
	if cfg.Pattern != "" {
		if cfg.Message != "" {
			if err := stream.Println(cfg.Message); err != nil {
				log.Printf("failed to write diagnostic: %v", err)
			}
		}
		return h.runPattern(ctx, blinker, pattern.Pattern(cfg.Pattern))
	}

	kind, err := cfg.faultKind()
	if err != nil {
		return err
	}

	if client != nil {
		p, _ := kind.Pattern()
		event := mqtt.NewFaultEvent(kind.String(), int(kind), cfg.Message, p.String())
		if err := mqtt.PublishFaultEvent(client, cfg.MQTT.FaultTopic, event); err != nil {
			log.Printf("failed to publish fault event: %v", err)
		}
	}

	rep := reporter.New(blinker, stream)
	if cfg.Code != "" {
		return rep.ReportCode(ctx, int(kind), cfg.Message)
	}
	return rep.Report(ctx, kind, cfg.Message)
}

// runPattern blinks p in the background until ctx is cancelled or the
// blinker gives up on its own.
func (h *Handler) runPattern(ctx context.Context, blinker *blink.Blinker, p pattern.Pattern) error {
	if err := blinker.Start(p); err != nil {
		return err
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-blinker.Done():
		err = blinker.Err()
	}

	if stopErr := blinker.Stop(); stopErr != nil {
		log.Printf("failed to stop blinker: %v", stopErr)
	}
	return err
}

func (h *Handler) openStream(ctx context.Context, cfg *Config) (*diag.Stream, mqttClient, error) {
	stream := diag.NewStream()
	if cfg.Console {
		stream.Add(diag.Sink{Name: "console", Writer: h.console})
	}

	if cfg.Serial.Port != "" {
		sink, err := h.openSerial(cfg.Serial.Port, cfg.Serial.Baud)
		if err != nil {
			return nil, nil, err
		}
		stream.Add(sink)
	}

	if cfg.Display.Enabled {
		sink, err := h.openDisplay(cfg.Display.DryRun)
		if err != nil {
			stream.Close() //nolint:errcheck
			return nil, nil, err
		}
		stream.Add(sink)
	}

	if cfg.MQTT.ServerURL == "" {
		return stream, nil, nil
	}

	client, err := h.newMQTT(mqtt.Config{
		ServerURL: cfg.MQTT.ServerURL,
		ClientID:  cfg.MQTT.ClientID,
	})
	if err != nil {
		stream.Close() //nolint:errcheck
		return nil, nil, err
	}
	if !client.WaitForConnection(ctx, cfg.MQTT.ConnectTimeout) {
		log.Printf("MQTT broker %s not reachable after %s; continuing", cfg.MQTT.ServerURL, cfg.MQTT.ConnectTimeout)
	}
	stream.Add(diag.MQTT(client, cfg.MQTT.Topic))

	return stream, client, nil
}

func (c *Config) faultKind() (fault.Kind, error) {
	if c.Code != "" {
		code, err := strconv.Atoi(c.Code)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCode, c.Code)
		}
		return fault.Kind(code), nil
	}
	return fault.ParseKind(c.Kind)
}
