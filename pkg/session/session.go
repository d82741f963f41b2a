package session

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode"

	"github.com/limaJavier/enigma/pkg/enigma"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultGroupSize = 5

type Options struct {
	// GroupSize is the length of the output blocks; zero or less writes each
	// line as one block.
	GroupSize int
	// Uppercase folds message lines to upper case before converting them.
	Uppercase bool
	// Logger traces applied settings when not nil.
	Logger *log.Logger
}

// DefaultOptions groups output in blocks of five and leaves case untouched.
func DefaultOptions() Options {
	return Options{GroupSize: DefaultGroupSize}
}

// Session feeds a stream of setting directives and message lines through a
// machine. A Session is not safe for concurrent use.
type Session struct {
	machine *enigma.Machine
	options Options
	caser   cases.Caser
}

type missingSettingError struct {
	line int
}

func (err *missingSettingError) Error() string {
	return fmt.Sprintf("line %d: missing setting line", err.line)
}

func New(machine *enigma.Machine, options Options) *Session {
	return &Session{
		machine: machine,
		options: options,
		caser:   cases.Upper(language.Und),
	}
}

// Run reads input line by line and writes one converted line per message line.
// Setting lines reconfigure the machine and produce no output. Blank lines
// before the first setting are skipped; later ones are echoed as blank lines.
func (session *Session) Run(input io.Reader, output io.Writer) error {
	writer := bufio.NewWriter(output)
	err := session.process(input, writer)
	if flushErr := writer.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("cannot write output: %w", flushErr)
	}
	return err
}

func (session *Session) process(input io.Reader, writer io.Writer) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	configured := false
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if IsSetting(line) {
			if err := session.applySetting(line, lineNumber); err != nil {
				return err
			}
			configured = true
			continue
		}

		if !configured {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return &missingSettingError{line: lineNumber}
		}

		converted, err := session.convertLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if _, err := fmt.Fprintln(writer, FormatGroups(converted, session.options.GroupSize)); err != nil {
			return fmt.Errorf("cannot write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	if !configured {
		return &missingSettingError{line: lineNumber + 1}
	}
	return nil
}

func (session *Session) applySetting(line string, lineNumber int) error {
	setting, err := ParseSetting(line, session.machine.NumRotors())
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNumber, err)
	}
	if err := setting.Apply(session.machine); err != nil {
		return fmt.Errorf("line %d: %w", lineNumber, err)
	}

	if session.options.Logger != nil {
		session.options.Logger.Printf("line %d: rotors %v at %v, plugboard %v",
			lineNumber, strings.Join(setting.Rotors, " "), setting.Positions, session.machine.Plugboard())
	}
	return nil
}

func (session *Session) convertLine(line string) (string, error) {
	message := strings.Map(func(symbol rune) rune {
		if unicode.IsSpace(symbol) {
			return -1
		}
		return symbol
	}, line)
	if session.options.Uppercase {
		message = session.caser.String(message)
	}
	return session.machine.ConvertMessage(message)
}

// FormatGroups splits message into blocks of size symbols separated by single
// spaces. The last block may be shorter.
func FormatGroups(message string, size int) string {
	if size <= 0 {
		return message
	}
	return strings.Join(lo.ChunkString(message, size), " ")
}
