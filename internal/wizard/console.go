package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiYellow = "\x1b[33m"
)

type lineResult struct {
	line string
	err  error
}

// Console reads user input line by line and writes prompts and messages.
// It is not safe for concurrent use.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	color   bool
	pending chan lineResult
}

// NewConsole wraps an input/output pair. Color is enabled when out is a terminal.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		color: isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Writer returns the output stream.
func (c *Console) Writer() io.Writer { return c.out }

// Interactive reports whether output goes to a terminal.
func (c *Console) Interactive() bool { return c.color }

func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

// Notice prints a highlighted single-line message.
func (c *Console) Notice(msg string) {
	if c.color {
		c.Println(ansiYellow + msg + ansiReset)
		return
	}
	c.Println(msg)
}

// Heading prints a bold title line.
func (c *Console) Heading(title string) {
	if c.color {
		c.Println(ansiBold + title + ansiReset)
		return
	}
	c.Println(title)
}

// ReadLine prints prompt and waits for one line of input. The line ending is
// removed. It returns io.EOF once the input is exhausted and ctx.Err() when
// the context ends first; a read abandoned that way is resumed by the next call.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(c.out, prompt)
		if !strings.HasSuffix(prompt, " ") && !strings.HasSuffix(prompt, "\n") {
			_, _ = fmt.Fprint(c.out, " ")
		}
	}
	if c.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		c.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-c.pending:
		c.pending = nil
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && line != "" {
				return line, nil
			}
			return "", res.err
		}
		return line, nil
	}
}
