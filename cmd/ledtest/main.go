package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/larsks/faultblink/internal/drivers"
	"github.com/larsks/faultblink/internal/led"
	_ "github.com/larsks/faultblink/internal/logsetup"
)

type createFunc func(driver string, config map[string]any) (led.Device, error)

func main() {
	os.Exit(run(os.Args[1:], drivers.Create, os.Stderr))
}

func run(args []string, create createFunc, stderr io.Writer) int {
	fs := pflag.NewFlagSet("ledtest", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	driver := fs.String("driver", "gpiocdev", "LED driver")
	chip := fs.String("chip", "", "GPIO chip for the gpiocdev driver")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: ledtest [--driver NAME] [--chip NAME] pin[:polarity]:on|off [...]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}

	devices := make(map[string]led.Device)
	defer func() {
		for pin, device := range devices {
			if err := device.Close(); err != nil {
				log.Printf("failed to close %s: %v", pin, err)
			}
		}
	}()

	for _, arg := range fs.Args() {
		if err := apply(arg, devices, func(pin string) (led.Device, error) {
			config := map[string]any{"pin": pin}
			if *chip != "" {
				config["chip"] = *chip
			}
			return create(*driver, config)
		}); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

// apply handles one pin:action argument. The action follows the last colon
// so that the pin part may carry a polarity. Devices are opened once per pin
// and kept in devices for the caller to close.
func apply(arg string, devices map[string]led.Device, open func(pin string) (led.Device, error)) error {
	i := strings.LastIndex(arg, ":")
	if i < 0 {
		return fmt.Errorf("invalid argument: %s", arg)
	}
	pin, action := arg[:i], arg[i+1:]

	device, ok := devices[pin]
	if !ok {
		var err error
		device, err = open(pin)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", pin, err)
		}
		if err := device.Init(); err != nil {
			return errors.Join(fmt.Errorf("failed to initialize %s: %w", pin, err), device.Close())
		}
		devices[pin] = device
	}

	var err error
	switch strings.ToLower(action) {
	case "on", "1", "true":
		err = device.TurnOn()
	case "off", "0", "false":
		err = device.TurnOff()
	default:
		err = fmt.Errorf("invalid value %q", action)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", pin, err)
	}
	return nil
}
