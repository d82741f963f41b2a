package session

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/limaJavier/enigma/pkg/config"
	"github.com/limaJavier/enigma/pkg/enigma"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdataDirectory = "../../testdata/"

const hiawathaSetting = "* B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)"

func newDefaultMachine(t *testing.T) *enigma.Machine {
	t.Helper()
	machineConfig, err := config.FromText(testdataDirectory + "configs/default.conf")
	require.NoError(t, err)
	machine, err := machineConfig.Build()
	require.NoError(t, err)
	return machine
}

func runSession(t *testing.T, options Options, input string) (string, error) {
	t.Helper()
	var output bytes.Buffer
	err := New(newDefaultMachine(t), options).Run(strings.NewReader(input), &output)
	return output.String(), err
}

func TestRunMessageFile(t *testing.T) {
	g := NewWithT(t)

	//** Arrange
	input, err := os.Open(testdataDirectory + "messages/default.in")
	require.NoError(t, err)
	defer input.Close()
	expected, err := os.ReadFile(testdataDirectory + "messages/default.out")
	require.NoError(t, err)
	var output bytes.Buffer

	//** Act
	err = New(newDefaultMachine(t), DefaultOptions()).Run(input, &output)

	//** Assert
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(output.String()).To(Equal(string(expected)))
}

func TestRunDecodesItsOwnOutput(t *testing.T) {
	g := NewWithT(t)
	plain := "FROMHISSHOULDERHIAWATHA\nTOOKTHECAMERAOFROSEWOOD\n"

	encoded, err := runSession(t, Options{}, hiawathaSetting+"\n"+plain)
	g.Expect(err).NotTo(HaveOccurred())
	decoded, err := runSession(t, Options{}, hiawathaSetting+"\n"+encoded)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(decoded).To(Equal(plain))
}

func TestRunGrouping(t *testing.T) {
	scenarios := []struct {
		name      string
		groupSize int
		expected  string
	}{
		{name: "blocks of five", groupSize: 5, expected: "QVPQS OKOIL PUBKJ ZPISF XDW\n"},
		{name: "blocks of four", groupSize: 4, expected: "QVPQ SOKO ILPU BKJZ PISF XDW\n"},
		{name: "ungrouped", groupSize: 0, expected: "QVPQSOKOILPUBKJZPISFXDW\n"},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			g := NewWithT(t)

			output, err := runSession(t, Options{GroupSize: scenario.groupSize}, hiawathaSetting+"\nFROM HIS SHOULDER HIAWATHA\n")

			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(output).To(Equal(scenario.expected))
		})
	}
}

func TestRunUppercase(t *testing.T) {
	g := NewWithT(t)

	output, err := runSession(t, Options{GroupSize: 5, Uppercase: true}, hiawathaSetting+"\nfrom his Shoulder hiawatha\n")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(output).To(Equal("QVPQS OKOIL PUBKJ ZPISF XDW\n"))
}

func TestRunLowercaseWithoutFolding(t *testing.T) {
	_, err := runSession(t, DefaultOptions(), hiawathaSetting+"\nfrom his shoulder\n")

	var symbolErr *enigma.NotInAlphabetError
	require.ErrorAs(t, err, &symbolErr)
	assert.Equal(t, 'f', symbolErr.Symbol)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRunMissingSetting(t *testing.T) {
	scenarios := []struct {
		name  string
		input string
		line  int
	}{
		{name: "message first", input: "HELLO\n" + hiawathaSetting + "\n", line: 1},
		{name: "after blank lines", input: "\n   \nHELLO\n", line: 3},
		{name: "empty input", input: "", line: 1},
		{name: "only blank lines", input: "\n\n", line: 3},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			output, err := runSession(t, DefaultOptions(), scenario.input)

			var missingErr *missingSettingError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, scenario.line, missingErr.line)
			assert.Contains(t, err.Error(), "missing setting line")
			assert.Empty(t, output)
		})
	}
}

func TestRunBadSettings(t *testing.T) {
	scenarios := map[string]string{
		"too few rotors":       "* B Beta III IV AXLE",
		"unknown rotor":        "* B Beta III IV X AXLE",
		"duplicate rotor":      "* B Beta III III I AXLE",
		"reflector misplaced":  "* Beta B III IV I AXLE",
		"short positions":      "* B Beta III IV I AXL",
		"foreign position":     "* B Beta III IV I AX1E",
		"loose plugboard pair": "* B Beta III IV I AXLE HQ",
		"repeated plugboard":   "* B Beta III IV I AXLE (HQ) (HE)",
	}

	for name, setting := range scenarios {
		t.Run(name, func(t *testing.T) {
			_, err := runSession(t, DefaultOptions(), setting+"\nHELLO\n")

			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestRunKeepsOutputBeforeError(t *testing.T) {
	g := NewWithT(t)

	output, err := runSession(t, DefaultOptions(), hiawathaSetting+"\nFROMHISSHOULDERHIAWATHA\nHELL0\n")

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("line 3"))
	g.Expect(output).To(Equal("QVPQS OKOIL PUBKJ ZPISF XDW\n"))
}

func TestRunLogsSettings(t *testing.T) {
	g := NewWithT(t)
	var trace bytes.Buffer
	options := DefaultOptions()
	options.Logger = log.New(&trace, "", 0)

	_, err := runSession(t, options, hiawathaSetting+"\nHELLO\n")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(trace.String()).To(Equal("line 1: rotors B Beta III IV I at AXLE, plugboard (HQ) (EX) (IP) (TR) (BY)\n"))
}

func TestParseSetting(t *testing.T) {
	//** Arrange
	line := "  *B Beta III   IV I AXLE (HQ) (EX)"

	//** Act
	setting, err := ParseSetting(line, 5)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "Beta", "III", "IV", "I"}, setting.Rotors)
	assert.Equal(t, "AXLE", setting.Positions)
	assert.Equal(t, "(HQ) (EX)", setting.Plugboard)
	assert.Equal(t, "* B Beta III IV I AXLE (HQ) (EX)", setting.String())
}

func TestParseSettingWithoutPlugboard(t *testing.T) {
	setting, err := ParseSetting("* B Beta III IV I AXLE", 5)

	require.NoError(t, err)
	assert.Empty(t, setting.Plugboard)
	assert.Equal(t, "* B Beta III IV I AXLE", setting.String())
}

func TestParseSettingErrors(t *testing.T) {
	_, err := ParseSetting("B Beta III IV I AXLE", 5)
	assert.Error(t, err)

	_, err = ParseSetting("* B Beta III IV I", 5)
	assert.Error(t, err)

	_, err = ParseSetting("* B Beta III IV I AXLE (HQ) EX", 5)
	assert.Error(t, err)
}

func TestSettingApply(t *testing.T) {
	machine := newDefaultMachine(t)
	setting, err := ParseSetting("* C Gamma VI VII VIII QMZY (AZ)", 5)
	require.NoError(t, err)

	require.NoError(t, setting.Apply(machine))

	assert.True(t, machine.Configured())
	assert.Equal(t, "QMZY", machine.Positions())
	assert.Equal(t, "(AZ)", machine.Plugboard().String())
}

func TestSettingApplyUnconfiguresOnError(t *testing.T) {
	machine := newDefaultMachine(t)
	require.NoError(t, Setting{Rotors: []string{"B", "Beta", "III", "IV", "I"}, Positions: "AAAA"}.Apply(machine))

	err := Setting{Rotors: []string{"B", "Beta", "III", "IV", "Z"}, Positions: "AAAA"}.Apply(machine)

	var configErr *enigma.ConfigError
	assert.True(t, errors.As(err, &configErr))
	assert.False(t, machine.Configured())
}

func TestFormatGroups(t *testing.T) {
	scenarios := []struct {
		message  string
		size     int
		expected string
	}{
		{message: "", size: 5, expected: ""},
		{message: "ABC", size: 5, expected: "ABC"},
		{message: "ABCDE", size: 5, expected: "ABCDE"},
		{message: "ABCDEF", size: 5, expected: "ABCDE F"},
		{message: "ABCDEFGHIJ", size: 5, expected: "ABCDE FGHIJ"},
		{message: "ABCDEFG", size: 3, expected: "ABC DEF G"},
		{message: "ABCDEFG", size: 0, expected: "ABCDEFG"},
		{message: "ABCDEFG", size: -1, expected: "ABCDEFG"},
	}

	for _, scenario := range scenarios {
		assert.Equal(t, scenario.expected, FormatGroups(scenario.message, scenario.size), scenario.message)
	}
}
