package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigLoader loads configuration with the precedence
// defaults < config file < explicitly set flags.
type ConfigLoader struct {
	configFile string
	defaults   map[string]any
	strictMode bool
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		defaults: make(map[string]any),
	}
}

// SetConfigFile sets the configuration file path. An empty path means no file.
func (cl *ConfigLoader) SetConfigFile(configFile string) {
	cl.configFile = configFile
}

// SetDefault sets a default value for a configuration key.
func (cl *ConfigLoader) SetDefault(key string, value any) {
	cl.defaults[key] = value
}

// SetDefaults sets multiple default values at once.
func (cl *ConfigLoader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		cl.defaults[key] = value
	}
}

// SetStrictMode makes unknown configuration keys an error.
func (cl *ConfigLoader) SetStrictMode(strict bool) {
	cl.strictMode = strict
}

// LoadConfigWithFlagSet loads into config, which must be a pointer to a
// struct with mapstructure tags. Only flags the user actually set on fs
// override file values.
func (cl *ConfigLoader) LoadConfigWithFlagSet(config any, fs *pflag.FlagSet) error {
	v := viper.New()

	for key, value := range cl.defaults {
		v.SetDefault(key, value)
	}

	if cl.configFile != "" {
		v.SetConfigFile(cl.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFileRead, cl.configFile, err)
		}
	}

	if fs != nil {
		fs.Visit(func(flag *pflag.Flag) {
			// dotted flag names such as --serial.baud land in nested tables
			v.Set(flag.Name, flagValue(fs, flag))
		})
	}

	decoderConfig := &mapstructure.DecoderConfig{
		Result:           config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      cl.strictMode,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return fmt.Errorf("%w: failed to create decoder: %v", ErrConfigUnmarshal, err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		if cl.configFile != "" {
			return fmt.Errorf("%w: %s: %v", ErrConfigUnmarshal, cl.configFile, err)
		}
		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return nil
}

// flagValue returns the typed value of a flag rather than its string form.
func flagValue(fs *pflag.FlagSet, flag *pflag.Flag) any {
	s := flag.Value.String()

	switch flag.Value.Type() {
	case "uint", "uint8", "uint16", "uint32", "uint64":
		if val, err := strconv.ParseUint(s, 10, 64); err == nil {
			return val
		}
	case "int", "int8", "int16", "int32", "int64":
		if val, err := strconv.ParseInt(s, 10, 64); err == nil {
			return val
		}
	case "bool":
		if val, err := strconv.ParseBool(s); err == nil {
			return val
		}
	case "float32", "float64":
		if val, err := strconv.ParseFloat(s, 64); err == nil {
			return val
		}
	case "duration":
		if val, err := time.ParseDuration(s); err == nil {
			return val
		}
	case "stringSlice", "stringArray":
		if sliceFlag, ok := flag.Value.(pflag.SliceValue); ok {
			return sliceFlag.GetSlice()
		}
	case "stringToString":
		// String() is CSV-quoted, so read the parsed map back instead
		if m, err := fs.GetStringToString(flag.Name); err == nil {
			out := make(map[string]any, len(m))
			for k, val := range m {
				out[k] = val
			}
			return out
		}
	}

	return s
}
