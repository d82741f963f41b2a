package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/limaJavier/enigma/pkg/config"
	"github.com/limaJavier/enigma/pkg/enigma"
	"github.com/limaJavier/enigma/pkg/session"
	"github.com/samber/lo"
)

const (
	configDirectory = "../../testdata/configs/"
	resultsFile     = "benchmark_results.csv"
	maxPlugboard    = 10
)

type ResultType int

const (
	matched ResultType = iota
	mismatched
)

var (
	messageLengths = []int{100, 1_000, 10_000, 100_000}
	resultTypes    = map[ResultType]string{
		matched:    "matched",
		mismatched: "mismatched",
	}
)

type ConfigMetadata struct {
	Name     string
	Rotors   int
	Pawls    int
	Alphabet int
	config   config.MachineConfig
}

type BenchmarkResult struct {
	Config   ConfigMetadata
	Setting  session.Setting
	Length   int
	Duration time.Duration
	Result   ResultType
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("benchmark: ")

	configs := getConfigs(configDirectory)
	results := make([]BenchmarkResult, 0, len(configs)*len(messageLengths))

	for _, metadata := range configs {
		for _, length := range messageLengths {
			machine := lo.Must(metadata.config.Build())
			setting, err := randomSetting(machine)
			if err != nil {
				log.Printf("skipping %v: %v", metadata.Name, err)
				break
			}
			fmt.Printf("Benchmarking config \"%v\" with setting \"%v\" and %v symbols\n", metadata.Name, setting, length)

			message := randomMessage(machine.Alphabet(), length)
			duration, result, err := measure(metadata.config, setting, message)
			if err != nil {
				log.Fatalf("an error occurred while benchmarking config \"%v\" with setting \"%v\": %v", metadata.Name, setting, err)
			}

			results = append(results, BenchmarkResult{
				Config:   metadata,
				Setting:  setting,
				Length:   length,
				Duration: duration,
				Result:   result,
			})
		}
	}

	toCsv(results)
}

func getConfigs(directory string) []ConfigMetadata {
	files, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	configs := make([]ConfigMetadata, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filename := directory + file.Name()
		machineConfig, err := config.Load(filename, config.FormatAuto)
		if err != nil {
			log.Fatalf("cannot parse config file: %v", err)
		}
		machine, err := machineConfig.Build()
		if err != nil {
			log.Fatalf("invalid config file %v: %v", filename, err)
		}

		configs = append(configs, ConfigMetadata{
			Name:     filename,
			Rotors:   machine.NumRotors(),
			Pawls:    machine.NumPawls(),
			Alphabet: machine.Alphabet().Size(),
			config:   machineConfig,
		})
	}

	return configs
}

// randomSetting picks a reflector, fixed rotors for the slots left of the
// pawls, moving rotors for the rest, random positions and a random plugboard.
func randomSetting(machine *enigma.Machine) (session.Setting, error) {
	descriptors := machine.Catalog().Descriptors()
	namesOf := func(kind enigma.RotorKind) []string {
		return lo.FilterMap(descriptors, func(descriptor enigma.RotorDescriptor, _ int) (string, bool) {
			return descriptor.Name, descriptor.Kind == kind
		})
	}
	reflectors, fixed, moving := namesOf(enigma.KindReflector), namesOf(enigma.KindFixed), namesOf(enigma.KindMoving)

	numFixed := machine.NumRotors() - machine.NumPawls() - 1
	if len(reflectors) == 0 {
		return session.Setting{}, fmt.Errorf("catalog has no reflector")
	} else if len(fixed) < numFixed {
		return session.Setting{}, fmt.Errorf("catalog has %d fixed rotors, %d needed", len(fixed), numFixed)
	} else if len(moving) < machine.NumPawls() {
		return session.Setting{}, fmt.Errorf("catalog has %d moving rotors, %d needed", len(moving), machine.NumPawls())
	}

	rotors := append([]string{lo.Sample(reflectors)}, lo.Samples(fixed, numFixed)...)
	rotors = append(rotors, lo.Samples(moving, machine.NumPawls())...)

	symbols := []rune(machine.Alphabet().String())
	positions := lo.Times(machine.NumRotors()-1, func(_ int) rune { return lo.Sample(symbols) })

	return session.Setting{
		Rotors:    rotors,
		Positions: string(positions),
		Plugboard: randomPlugboard(symbols),
	}, nil
}

func randomPlugboard(symbols []rune) string {
	pairs := lo.Chunk(lo.Samples(symbols, 2*min(maxPlugboard, len(symbols)/2)), 2)
	return strings.Join(lo.Map(pairs, func(pair []rune, _ int) string {
		return "(" + string(pair) + ")"
	}), " ")
}

func randomMessage(alphabet *enigma.Alphabet, length int) string {
	return lo.RandomString(length, []rune(alphabet.String()))
}

// measure encodes message on one machine and decodes it on a second machine
// built from the same config, timing the encoding.
func measure(machineConfig config.MachineConfig, setting session.Setting, message string) (duration time.Duration, result ResultType, err error) {
	encoder, err := machineConfig.Build()
	if err != nil {
		return 0, mismatched, err
	}
	decoder, err := machineConfig.Build()
	if err != nil {
		return 0, mismatched, err
	}
	if err := setting.Apply(encoder); err != nil {
		return 0, mismatched, err
	}
	if err := setting.Apply(decoder); err != nil {
		return 0, mismatched, err
	}

	start := time.Now()
	encoded, err := encoder.ConvertMessage(message)
	duration = time.Since(start)
	if err != nil {
		return 0, mismatched, err
	}

	decoded, err := decoder.ConvertMessage(encoded)
	if err != nil {
		return 0, mismatched, err
	}

	result = matched
	if decoded != message {
		result = mismatched
	}
	return duration, result, nil
}

func throughput(length int, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(length) / (float64(duration.Nanoseconds()) / float64(time.Millisecond))
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := writeCsv(file, results); err != nil {
		log.Panicf("%v", err)
	}
}

func writeCsv(output io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(output)

	header := []string{"Config", "Setting", "Rotors", "Pawls", "Alphabet", "Length", "Duration(us)", "Throughput(chars/ms)", "RoundTrip"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Config.Name,
			result.Setting.String(),
			fmt.Sprintf("%d", result.Config.Rotors),
			fmt.Sprintf("%d", result.Config.Pawls),
			fmt.Sprintf("%d", result.Config.Alphabet),
			fmt.Sprintf("%d", result.Length),
			fmt.Sprintf("%d", result.Duration.Microseconds()),
			fmt.Sprintf("%.1f", throughput(result.Length, result.Duration)),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
