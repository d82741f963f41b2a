package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Supported configuration formats.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJson = "json"
	FormatYaml = "yaml"
)

var Formats = []string{FormatAuto, FormatText, FormatJson, FormatYaml}

// FromJson loads a configuration file in JSON format.
func FromJson(file string) (MachineConfig, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return MachineConfig{}, fmt.Errorf("could not open %v: %w", file, err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return MachineConfig{}, fmt.Errorf("cannot parse %v: %w", file, err)
	}
	return decode(inputJson)
}

// FromYaml loads a configuration file in YAML format.
func FromYaml(file string) (MachineConfig, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return MachineConfig{}, fmt.Errorf("could not open %v: %w", file, err)
	}

	var inputYaml map[string]any
	if err := yaml.Unmarshal(bytes, &inputYaml); err != nil {
		return MachineConfig{}, fmt.Errorf("cannot parse %v: %w", file, err)
	}
	return decode(inputYaml)
}

// decode maps a generic document onto MachineConfig, rejecting unknown keys.
// A missing alphabet defaults to A-Z.
func decode(raw map[string]any) (MachineConfig, error) {
	var config MachineConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return MachineConfig{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return MachineConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if config.Alphabet == "" {
		config.Alphabet = defaultAlphabet
	}
	return config, nil
}

const defaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DetectFormat picks a format from the file extension, defaulting to text.
func DetectFormat(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return FormatJson
	case ".yaml", ".yml":
		return FormatYaml
	default:
		return FormatText
	}
}

// Load reads file in the given format; FormatAuto or "" detects it from the extension.
func Load(file, format string) (MachineConfig, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(file)
	}

	switch format {
	case FormatText:
		return FromText(file)
	case FormatJson:
		return FromJson(file)
	case FormatYaml:
		return FromYaml(file)
	default:
		return MachineConfig{}, fmt.Errorf("%v is not a valid configuration format", format)
	}
}

// Encode writes config in the given format.
func Encode(writer io.Writer, config MachineConfig, format string) error {
	switch format {
	case FormatText, FormatAuto, "":
		return WriteText(writer, config)
	case FormatJson:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(config)
	case FormatYaml:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(config); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%v is not a valid configuration format", format)
	}
}
