package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console is the program's line oriented I/O.
type Console interface {
	Output(line string)
	GetInput() (string, error)
}

var ErrNoInput = errors.New("No more input")

// StreamConsole reads input lines from r and writes output lines to w.
type StreamConsole struct {
	w       io.Writer
	scanner *bufio.Scanner
}

func NewStreamConsole(r io.Reader, w io.Writer) *StreamConsole {
	c := &StreamConsole{w: w}
	if r != nil {
		c.scanner = bufio.NewScanner(r)
	}
	return c
}

func (c *StreamConsole) Output(line string) {
	fmt.Fprintln(c.w, line)
}

func (c *StreamConsole) GetInput() (string, error) {
	if c.scanner == nil || !c.scanner.Scan() {
		if c.scanner != nil && c.scanner.Err() != nil {
			return "", c.scanner.Err()
		}
		return "", ErrNoInput
	}
	return strings.TrimRight(c.scanner.Text(), "\r"), nil
}

// Recorder is an in-memory console, fed from a fixed list of input lines.
type Recorder struct {
	Inputs  []string
	Outputs []string
}

func (r *Recorder) Output(line string) {
	r.Outputs = append(r.Outputs, line)
}

func (r *Recorder) GetInput() (string, error) {
	if len(r.Inputs) == 0 {
		return "", ErrNoInput
	}
	line := r.Inputs[0]
	r.Inputs = r.Inputs[1:]
	return line, nil
}
