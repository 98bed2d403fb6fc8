package faultblink

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"

	"github.com/larsks/faultblink/internal/blink"
	"github.com/larsks/faultblink/internal/config"
	"github.com/larsks/faultblink/internal/diag"
	"github.com/larsks/faultblink/internal/drivers"
	"github.com/larsks/faultblink/internal/fault"
	"github.com/larsks/faultblink/internal/led"
	"github.com/larsks/faultblink/internal/pattern"
)

type (
	SerialConfig struct {
		Port string `mapstructure:"port"`
		Baud int    `mapstructure:"baud"`
	}

	// DisplayConfig selects an SSD1306 OLED as a diagnostic sink.
	DisplayConfig struct {
		Enabled bool `mapstructure:"enabled"`
		DryRun  bool `mapstructure:"dry-run"`
	}

	MQTTConfig struct {
		ServerURL      string        `mapstructure:"server-url"`
		ClientID       string        `mapstructure:"client-id"`
		Topic          string        `mapstructure:"topic"`
		FaultTopic     string        `mapstructure:"fault-topic"`
		ConnectTimeout time.Duration `mapstructure:"connect-timeout"`
	}

	// Config holds the faultblink configuration
	Config struct {
		ConfigFile   string         `mapstructure:"config"`
		Driver       string         `mapstructure:"driver"`
		DriverConfig map[string]any `mapstructure:"driver-config"`
		Pin          string         `mapstructure:"pin"`
		Chip         string         `mapstructure:"chip"`
		Period       time.Duration  `mapstructure:"period"`
		Lenient      bool           `mapstructure:"lenient"`
		Kind         string         `mapstructure:"kind"`
		Code         string         `mapstructure:"code"`
		Pattern      string         `mapstructure:"pattern"`
		Message      string         `mapstructure:"message"`
		Console      bool           `mapstructure:"console"`
		Serial       SerialConfig   `mapstructure:"serial"`
		Display      DisplayConfig  `mapstructure:"display"`
		MQTT         MQTTConfig     `mapstructure:"mqtt"`
	}
)

const (
	defaultDriver      = "dummy"
	defaultFaultTopic  = "faultblink/fault"
	defaultMQTTTimeout = 5 * time.Second
)

func getDefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "faultblink", "faultblink.toml")
}

func defaults() map[string]any {
	return map[string]any{
		"driver":               defaultDriver,
		"pin":                  led.DefaultPin,
		"chip":                 led.DefaultChip,
		"period":               blink.DefaultPeriod,
		"lenient":              false,
		"console":              true,
		"serial.baud":          diag.DefaultBaudRate,
		"display.enabled":      false,
		"display.dry-run":      false,
		"mqtt.client-id":       "faultblink",
		"mqtt.topic":           diag.DefaultTopic,
		"mqtt.fault-topic":     defaultFaultTopic,
		"mqtt.connect-timeout": defaultMQTTTimeout,
	}
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Driver:  defaultDriver,
		Pin:     led.DefaultPin,
		Chip:    led.DefaultChip,
		Period:  blink.DefaultPeriod,
		Console: true,
		Serial: SerialConfig{
			Baud: diag.DefaultBaudRate,
		},
		MQTT: MQTTConfig{
			ClientID:       "faultblink",
			Topic:          diag.DefaultTopic,
			FaultTopic:     defaultFaultTopic,
			ConnectTimeout: defaultMQTTTimeout,
		},
	}
}

// AddFlags adds command-line flags for all configuration options
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", getDefaultConfigFile(), "Config file to use")
	fs.StringVar(&c.Driver, "driver", c.Driver, fmt.Sprintf("LED driver (%s)", strings.Join(drivers.ListDrivers(), ", ")))
	fs.StringToString("driver-config", nil, "Extra driver options (key=value,...)")
	fs.StringVarP(&c.Pin, "pin", "p", c.Pin, "LED pin (GPIO<n>[:active-low])")
	fs.StringVar(&c.Chip, "chip", c.Chip, "GPIO chip for the gpiocdev driver")
	fs.DurationVar(&c.Period, "period", c.Period, "How long each pattern step is held")
	fs.BoolVar(&c.Lenient, "lenient", c.Lenient, "Check pattern characters while blinking instead of up front")
	fs.StringVarP(&c.Kind, "kind", "k", c.Kind, "Fault kind (mem-load-failed, connection-refused, deadbeef, unknown)")
	fs.StringVar(&c.Code, "code", c.Code, "Numeric fault code")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "Blink a raw 0/1 pattern instead of reporting a fault")
	fs.StringVarP(&c.Message, "message", "m", c.Message, "Diagnostic message")
	fs.BoolVar(&c.Console, "console", c.Console, "Write diagnostics to stderr")
	fs.StringVar(&c.Serial.Port, "serial.port", c.Serial.Port, "Serial port for diagnostics")
	fs.IntVar(&c.Serial.Baud, "serial.baud", c.Serial.Baud, "Serial baud rate")
	fs.BoolVar(&c.Display.Enabled, "display.enabled", c.Display.Enabled, "Show diagnostics on an SSD1306 OLED")
	fs.BoolVar(&c.Display.DryRun, "display.dry-run", c.Display.DryRun, "Use an in-memory display instead of hardware")
	fs.StringVar(&c.MQTT.ServerURL, "mqtt.server-url", c.MQTT.ServerURL, "MQTT broker for diagnostics (mqtt://host:port)")
	fs.StringVar(&c.MQTT.ClientID, "mqtt.client-id", c.MQTT.ClientID, "MQTT client id")
	fs.StringVar(&c.MQTT.Topic, "mqtt.topic", c.MQTT.Topic, "MQTT topic for diagnostic lines")
	fs.StringVar(&c.MQTT.FaultTopic, "mqtt.fault-topic", c.MQTT.FaultTopic, "MQTT topic for the retained fault event")
	fs.DurationVar(&c.MQTT.ConnectTimeout, "mqtt.connect-timeout", c.MQTT.ConnectTimeout, "How long to wait for the MQTT broker before blinking")
}

// LoadConfigWithFlagSet loads configuration with the precedence
// defaults < config file < explicit flags.
func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	configFile := c.ConfigFile
	if configFile == getDefaultConfigFile() {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			configFile = ""
		}
	} else if configFile != "" {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", config.ErrConfigFileNotFound, configFile)
		}
	}

	loader := config.NewConfigLoader()
	loader.SetConfigFile(configFile)
	loader.SetDefaults(defaults())
	loader.SetStrictMode(true)

	if err := loader.LoadConfigWithFlagSet(c, fs); err != nil {
		return err
	}
	c.ConfigFile = configFile

	return c.Validate()
}

// Validate checks that exactly one fault source is set and that it parses.
func (c *Config) Validate() error {
	set := 0
	for _, v := range []string{c.Kind, c.Code, c.Pattern} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return ErrNoFault
	case set > 1:
		return ErrConflictingMode
	}

	if c.Kind != "" {
		if _, err := fault.ParseKind(c.Kind); err != nil {
			return err
		}
	}
	if c.Code != "" {
		if _, err := strconv.Atoi(c.Code); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCode, c.Code)
		}
	}
	if c.Pattern != "" && !c.Lenient {
		if _, err := pattern.Parse(c.Pattern); err != nil {
			return err
		}
	}
	if c.Period < blink.MinPeriod {
		return fmt.Errorf("%w: got %s, use a duration such as \"500ms\"", blink.ErrInvalidPeriod, c.Period)
	}

	return drivers.ValidateConfig(c.Driver, c.DeviceConfig())
}

// DeviceConfig merges driver-config with the pin and chip settings.
func (c *Config) DeviceConfig() map[string]any {
	out := make(map[string]any, len(c.DriverConfig)+2)
	for k, v := range c.DriverConfig {
		out[k] = v
	}
	if _, ok := out["pin"]; !ok && c.Pin != "" {
		out["pin"] = c.Pin
	}
	if c.Driver == "gpiocdev" {
		if _, ok := out["chip"]; !ok && c.Chip != "" {
			out["chip"] = c.Chip
		}
	}
	return out
}
