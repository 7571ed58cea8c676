package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// ErrInterrupted is returned by ReadLine when the user presses Ctrl-C at the prompt.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of user input per call. io.EOF ends the session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader returns a line editor when in and out are both terminals and
// a plain scanner otherwise, so piped input keeps working.
func NewLineReader(in io.Reader, out io.Writer) LineReader {
	if fi, ok := in.(*os.File); ok {
		if fo, ok := out.(*os.File); ok {
			if isatty.IsTerminal(fi.Fd()) && isatty.IsTerminal(fo.Fd()) {
				l := liner.NewLiner()
				l.SetCtrlCAborts(true)
				l.SetMultiLineMode(false)
				return &linerReader{l: l}
			}
		}
	}
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scannerReader{scanner: sc, out: out}
}

type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(s.out, prompt); err != nil {
		return "", err
	}
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scannerReader) Close() error { return nil }

type linerReader struct {
	l *liner.State
}

func (lr *linerReader) ReadLine(prompt string) (string, error) {
	line, err := lr.l.Prompt(strings.TrimRight(prompt, "\n"))
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrInterrupted
	case err != nil:
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		lr.l.AppendHistory(line)
	}
	return line, nil
}

func (lr *linerReader) Close() error { return lr.l.Close() }
