package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/limaJavier/enigma/pkg/config"
	"github.com/limaJavier/enigma/pkg/session"
	"github.com/samber/lo"
)

// environment holds the defaults that flags override.
type environment struct {
	Format    string `env:"ENIGMA_FORMAT" envDefault:"auto"`
	GroupSize int    `env:"ENIGMA_GROUP_SIZE" envDefault:"5"`
	Uppercase bool   `env:"ENIGMA_UPPERCASE"`
	Verbose   bool   `env:"ENIGMA_VERBOSE"`
}

func loadEnvironment(options env.Options) (environment, error) {
	var defaults environment
	if err := env.ParseWithOptions(&defaults, options); err != nil {
		return environment{}, fmt.Errorf("parse env: %w", err)
	}
	return defaults, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("enigma: ")

	defaults, err := loadEnvironment(env.Options{})
	if err != nil {
		log.Fatal(err)
	}
	if err := run(os.Args[1:], defaults, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, defaults environment, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("enigma", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: enigma [flags] CONFIG [INPUT [OUTPUT]]")
		flags.PrintDefaults()
	}

	formatPtr := flags.String("format", defaults.Format, `Configuration file format. Allowed values are "text", "json", "yaml" and "auto", where "auto" picks one by file extension`)
	groupPtr := flags.Int("group", defaults.GroupSize, "Length of the output blocks; 0 writes each message line as a single block")
	upperPtr := flags.Bool("upper", defaults.Uppercase, "Fold message lines to upper case before converting them")
	verbosePtr := flags.Bool("verbose", defaults.Verbose, "Trace every applied setting line on the standard error")
	describePtr := flags.String("describe", "", `Print the loaded machine configuration in the given format ("text", "json" or "yaml") and exit`)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	format := strings.ToLower(*formatPtr)
	describe := strings.ToLower(*describePtr)
	args = flags.Args()

	// Validate arguments
	if !lo.Contains(config.Formats, format) {
		return fmt.Errorf("%v is not a valid configuration format", format)
	} else if describe != "" && !lo.Contains([]string{config.FormatText, config.FormatJson, config.FormatYaml}, describe) {
		return fmt.Errorf("%v is not a valid description format", describe)
	} else if len(args) < 1 || len(args) > 3 {
		return fmt.Errorf("only 1, 2, or 3 command-line arguments allowed")
	}

	// Build machine
	machineConfig, err := config.Load(args[0], format)
	if err != nil {
		return err
	}
	machine, err := machineConfig.Build()
	if err != nil {
		return fmt.Errorf("invalid configuration %v: %w", args[0], err)
	}

	if describe != "" {
		return config.Encode(stdout, config.FromMachine(machine), describe)
	}

	// Open streams
	input := stdin
	if len(args) > 1 {
		file, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("could not open %v: %w", args[1], err)
		}
		defer file.Close()
		input = file
	}

	output := stdout
	var outputFile *os.File
	if len(args) > 2 {
		outputFile, err = os.Create(args[2])
		if err != nil {
			return fmt.Errorf("could not open %v: %w", args[2], err)
		}
		defer outputFile.Close()
		output = outputFile
	}

	options := session.Options{GroupSize: *groupPtr, Uppercase: *upperPtr}
	if *verbosePtr {
		options.Logger = log.New(stderr, "enigma: ", 0)
	}
	if err := session.New(machine, options).Run(input, output); err != nil {
		return err
	}

	if outputFile != nil {
		if err := outputFile.Close(); err != nil {
			return fmt.Errorf("could not write %v: %w", args[2], err)
		}
	}
	return nil
}
