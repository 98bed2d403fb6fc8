package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/larsks/faultblink/internal/version"
	"github.com/spf13/pflag"
)

// Configurable is a service configuration that registers its own flags and
// then loads itself from defaults, a config file, and those flags.
type Configurable interface {
	AddFlags(fs *pflag.FlagSet)
	LoadConfigWithFlagSet(fs *pflag.FlagSet) error
}

// CommandHandler starts a service with its loaded configuration.
type CommandHandler interface {
	Start(config Configurable) error
}

// Command is what a command line asked for.
type Command int

const (
	CommandStart Command = iota
	CommandVersion
	CommandHelp
)

// BaseCLI provides common CLI functionality
type BaseCLI struct {
	name   string
	stdout io.Writer
	stderr io.Writer
}

// NewBaseCLI creates a BaseCLI for the program called name.
func NewBaseCLI(name string, stdout, stderr io.Writer) *BaseCLI {
	return &BaseCLI{
		name:   name,
		stdout: stdout,
		stderr: stderr,
	}
}

// CommandArgs represents parsed command line arguments
type CommandArgs struct {
	Command Command
	Config  Configurable
	Usage   string
}

// ParseArgsStandard parses args against pflag.CommandLine.
func (c *BaseCLI) ParseArgsStandard(args []string, configFactory func() Configurable) (*CommandArgs, error) {
	return c.ParseArgsStandardWithFlagSet(args, configFactory, pflag.CommandLine)
}

// ParseArgsStandardWithFlagSet parses args against fs. The config is only
// loaded for CommandStart.
func (c *BaseCLI) ParseArgsStandardWithFlagSet(args []string, configFactory func() Configurable, fs *pflag.FlagSet) (*CommandArgs, error) {
	versionFlag := fs.Bool("version", false, "Show version and exit")

	cfg := configFactory()
	cfg.AddFlags(fs)

	// usage is printed by Execute, not by pflag
	fs.Usage = func() {}

	cmdArgs := &CommandArgs{
		Command: CommandStart,
		Config:  cfg,
		Usage:   fmt.Sprintf("usage: %s [flags]\n\n%s", c.name, fs.FlagUsages()),
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cmdArgs.Command = CommandHelp
			return cmdArgs, nil
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *versionFlag {
		cmdArgs.Command = CommandVersion
		return cmdArgs, nil
	}

	if err := cfg.LoadConfigWithFlagSet(fs); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cmdArgs, nil
}

// Execute prints the version or usage, or starts handler.
func (c *BaseCLI) Execute(cmdArgs *CommandArgs, handler CommandHandler) error {
	switch cmdArgs.Command {
	case CommandVersion:
		version.Fprint(c.stdout)
		return nil
	case CommandHelp:
		fmt.Fprint(c.stdout, cmdArgs.Usage) //nolint:errcheck
		return nil
	}
	return handler.Start(cmdArgs.Config)
}

// StandardMain parses os.Args, then runs handler or prints the version.
// Any error is fatal.
func StandardMain(name string, configFactory func() Configurable, handler CommandHandler) {
	cli := NewBaseCLI(name, os.Stdout, os.Stderr)

	cmdArgs, err := cli.ParseArgsStandard(os.Args[1:], configFactory)
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}

	if err := cli.Execute(cmdArgs, handler); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
}
