// Package session runs the interactive Chinese/English translation loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
	"github.com/nguyenvanduocit/zhtrans/pkg/translator"
)

const (
	Prompt   = "Enter word to translate: "
	Farewell = "Goodbye!"
)

var banner = []string{
	"Interactive Translation Tool (Chinese <-> English)",
	"Type 'exit' or 'quit' to stop, or press Ctrl+C",
}

// ErrInternalFault marks the only failures that end a session with a non-zero
// exit code.
var ErrInternalFault = errors.New("internal fault")

type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

type ExitCode int

const (
	ExitOK    ExitCode = 0
	ExitFault ExitCode = 1
)

var exitCommands = []string{"exit", "quit", "q"}

// IsExitCommand reports whether the trimmed line is one of the exit sentinels,
// ignoring case.
func IsExitCommand(line string) bool {
	line = strings.TrimSpace(line)
	for _, cmd := range exitCommands {
		if strings.EqualFold(line, cmd) {
			return true
		}
	}
	return false
}

// Session holds everything one interactive loop needs. It is not safe for
// concurrent use; run separate sessions instead.
type Session struct {
	id         string
	in         io.Reader
	out        io.Writer
	translator translator.Translator
	logger     *logrus.Logger

	state    State
	exitCode ExitCode
}

func New(tr translator.Translator, in io.Reader, out io.Writer, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
	}
	return &Session{
		id:         uuid.NewString(),
		in:         in,
		out:        out,
		translator: tr,
		logger:     logger,
		state:      Running,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

// Run reads and translates lines until an exit command, end of input or
// cancellation of ctx. Cancelling ctx models an interrupt: it ends the session
// while waiting for input but never aborts a translation already in flight.
// Graceful endings return ExitOK and a nil error.
func (s *Session) Run(ctx context.Context) (ExitCode, error) {
	if s.state == Terminated {
		return s.exitCode, nil
	}

	log := s.logger.WithField("session_id", s.id)
	lines, stop := readLines(s.in)
	defer stop()

	for _, l := range banner {
		fmt.Fprintln(s.out, l)
	}
	fmt.Fprintln(s.out)

	for {
		fmt.Fprint(s.out, Prompt)

		// An interrupt during the previous translation wins over buffered input.
		if ctx.Err() != nil {
			log.Debug("interrupted before reading input")
			return s.terminate("\n\n" + Farewell)
		}

		var in input
		select {
		case <-ctx.Done():
			log.Debug("interrupted while waiting for input")
			return s.terminate("\n\n" + Farewell)
		case in = <-lines:
		}

		if in.err != nil {
			if errors.Is(in.err, io.EOF) {
				log.Debug("end of input")
				return s.terminate("\n" + Farewell)
			}
			return s.fail(fmt.Errorf("%w: read input: %w", ErrInternalFault, in.err))
		}

		line := strings.TrimSpace(in.line)
		if line == "" {
			continue
		}

		if IsExitCommand(line) {
			log.Debug("exit command received")
			return s.terminate(Farewell)
		}

		if err := s.translateLine(ctx, log, line); err != nil {
			return s.fail(err)
		}
	}
}

func (s *Session) translateLine(ctx context.Context, log *logrus.Entry, line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: translator panicked: %v", ErrInternalFault, r)
		}
	}()

	res, err := Dispatch(context.WithoutCancel(ctx), s.translator, line)
	if err != nil {
		if translator.IsServiceError(err) {
			log.WithError(err).Warn("translation failed")
			fmt.Fprintf(s.out, "Translation error: %v\n\n", err)
			return nil
		}
		return fmt.Errorf("%w: %w", ErrInternalFault, err)
	}

	log.WithField("direction", res.Direction).Debug("translated")
	fmt.Fprintf(s.out, "%s\n\n", res.Translation)
	return nil
}

func (s *Session) terminate(farewell string) (ExitCode, error) {
	s.state = Terminated
	s.exitCode = ExitOK
	fmt.Fprintln(s.out, farewell)
	return s.exitCode, nil
}

func (s *Session) fail(err error) (ExitCode, error) {
	s.state = Terminated
	s.exitCode = ExitFault
	fmt.Fprintf(s.out, "\nError: %v\n", err)
	return s.exitCode, err
}

// Result is the outcome of translating one line.
type Result struct {
	Text        string        `json:"text"`
	Translation string        `json:"translation"`
	Direction   string        `json:"direction"`
	Source      detector.Lang `json:"source"`
	Target      detector.Lang `json:"target"`
}

// Dispatch detects the direction of text and asks tr for the translation.
func Dispatch(ctx context.Context, tr translator.Translator, text string) (Result, error) {
	dir := detector.Detect(text)
	source, target := dir.Langs()

	translated, err := tr.Translate(ctx, text, source, target)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Text:        text,
		Translation: translated,
		Direction:   dir.String(),
		Source:      source,
		Target:      target,
	}, nil
}

type input struct {
	line string
	err  error
}

// readLines feeds lines from r until it fails; the final value carries the
// error, io.EOF at end of input. stop releases the reader goroutine once it
// next tries to deliver.
func readLines(r io.Reader) (<-chan input, func()) {
	out := make(chan input)
	done := make(chan struct{})

	go func() {
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				select {
				case out <- input{line: line}:
				case <-done:
					return
				}
			}
			if err != nil {
				select {
				case out <- input{err: err}:
				case <-done:
				}
				return
			}
		}
	}()

	return out, func() { close(done) }
}
