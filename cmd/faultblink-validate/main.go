package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/larsks/faultblink/internal/faultblink"
	"github.com/larsks/faultblink/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("faultblink-validate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	versionFlag := fs.Bool("version", false, "Show version and exit")
	helpFlag := fs.BoolP("help", "h", false, "Show help")

	// The faultblink flags are registered so that overrides such as
	// --kind can be checked together with the file.
	cfg := faultblink.NewConfig()
	cfg.AddFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		version.Fprint(stdout)
		return 0
	}

	if *helpFlag {
		usage(fs, stderr)
		return 0
	}

	if !fs.Changed("config") {
		fmt.Fprintf(stderr, "Error: --config flag is required\n\n")
		usage(fs, stderr)
		return 1
	}

	if err := cfg.LoadConfigWithFlagSet(fs); err != nil {
		fmt.Fprintf(stderr, "Validation failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "✓ Configuration file %s is valid (%s on %s, %s)\n", cfg.ConfigFile, describe(cfg), cfg.Pin, cfg.Driver)
	return 0
}

func describe(cfg *faultblink.Config) string {
	switch {
	case cfg.Pattern != "":
		return "pattern " + cfg.Pattern
	case cfg.Code != "":
		return "code " + cfg.Code
	default:
		return "kind " + cfg.Kind
	}
}

func usage(fs *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: faultblink-validate --config FILE [overrides]\n\n")
	fmt.Fprintf(w, "Checks a faultblink configuration file without touching any hardware.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
