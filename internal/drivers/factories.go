package drivers

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/larsks/faultblink/internal/led"
)

// PinConfig is the configuration shared by all drivers.
type PinConfig struct {
	Pin  string `mapstructure:"pin"`
	Chip string `mapstructure:"chip"`
}

func parsePinConfig(config map[string]any) (*PinConfig, error) {
	cfg := &PinConfig{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.Pin == "" {
		cfg.Pin = led.DefaultPin
	}
	if _, err := led.ParsePin(cfg.Pin); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// DummyFactory creates in-memory recorders
type DummyFactory struct{}

func (f *DummyFactory) CreateDriver(config map[string]any) (led.Device, error) {
	cfg, err := parsePinConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dummy config: %w", err)
	}
	return led.NewRecorder(cfg.Pin), nil
}

func (f *DummyFactory) ValidateConfig(config map[string]any) error {
	_, err := parsePinConfig(config)
	return err
}

// GPIOFactory creates periph.io-backed LEDs
type GPIOFactory struct{}

func (f *GPIOFactory) CreateDriver(config map[string]any) (led.Device, error) {
	cfg, err := parsePinConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpio config: %w", err)
	}

	device, err := led.NewGPIO(cfg.Pin)
	if err != nil {
		return nil, fmt.Errorf("failed to create gpio driver with pin %s: %w", cfg.Pin, err)
	}
	return device, nil
}

func (f *GPIOFactory) ValidateConfig(config map[string]any) error {
	_, err := parsePinConfig(config)
	return err
}

// CdevFactory creates LEDs on a GPIO character device
type CdevFactory struct{}

func (f *CdevFactory) CreateDriver(config map[string]any) (led.Device, error) {
	cfg, err := parsePinConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpiocdev config: %w", err)
	}

	device, err := led.NewCdevLine(cfg.Chip, cfg.Pin)
	if err != nil {
		return nil, fmt.Errorf("failed to create gpiocdev driver with pin %s: %w", cfg.Pin, err)
	}
	return device, nil
}

func (f *CdevFactory) ValidateConfig(config map[string]any) error {
	_, err := parsePinConfig(config)
	return err
}

func init() {
	Register("dummy", &DummyFactory{})   //nolint:errcheck
	Register("gpio", &GPIOFactory{})     //nolint:errcheck
	Register("gpiocdev", &CdevFactory{}) //nolint:errcheck
}
