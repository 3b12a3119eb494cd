// Package prompt implements the session operator over line-oriented text
// input and output, for terminals without TUI support and for scripted runs.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/printer"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// DefaultWidth is the column width used to wrap previews.
const DefaultWidth = 72

// Operator asks the operator questions one line at a time. End of input
// ends the session.
type Operator struct {
	lines    <-chan string
	done     chan struct{}
	stop     sync.Once
	out      io.Writer
	defaults session.Options

	// Width wraps previews; 0 means DefaultWidth.
	Width int
}

// New returns an Operator reading answers from in and writing prompts to out.
// defaults answer the reflection and auto-print questions on an empty line.
func New(in io.Reader, out io.Writer, defaults session.Options) *Operator {
	done := make(chan struct{})
	return &Operator{lines: scanLines(in, done), done: done, out: out, defaults: defaults}
}

// Close stops handing lines to the operator. The reader goroutine exits at
// its next line or at EOF.
func (o *Operator) Close() error {
	o.stop.Do(func() { close(o.done) })
	return nil
}

// scanLines reads r line by line in the background so reads can be
// abandoned when the context is cancelled. The channel closes at EOF or
// once done is closed.
func scanLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

func (o *Operator) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-o.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// Choose implements session.Chooser.
func (o *Operator) Choose(ctx context.Context, counts vignette.Counts) (session.Options, error) {
	fmt.Fprintln(o.out, "\nVignette Options")
	fmt.Fprintln(o.out, "Select vignette length:")
	first := vignette.Category(0)
	for _, c := range vignette.Categories {
		n := counts[c]
		note := ""
		if n == 0 {
			note = ", unavailable"
		} else if first == 0 {
			first = c
		}
		fmt.Fprintf(o.out, "  %d) %s (%d remaining%s)\n", int(c), c.Label(), n, note)
	}

	category, err := o.askCategory(ctx, counts, first)
	if err != nil {
		return session.Options{}, quitOnEOF(err)
	}
	reflection, err := o.askYesNo(ctx, "Include a reflection question?", o.defaults.IncludeReflection)
	if err != nil {
		return session.Options{}, quitOnEOF(err)
	}
	auto, err := o.askYesNo(ctx, "Skip screen display and print directly?", o.defaults.Auto)
	if err != nil {
		return session.Options{}, quitOnEOF(err)
	}
	return session.Options{Category: category, IncludeReflection: reflection, Auto: auto}, nil
}

// askCategory reads until it gets a category with vignettes remaining or a
// quit. An empty answer picks first, when there is one.
func (o *Operator) askCategory(ctx context.Context, counts vignette.Counts, first vignette.Category) (vignette.Category, error) {
	for {
		if first != 0 {
			fmt.Fprintf(o.out, "Length [1-3, q to exit] (default %d): ", int(first))
		} else {
			fmt.Fprint(o.out, "No vignettes remain. Enter q to exit: ")
		}
		answer, err := o.readLine(ctx)
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(answer) {
		case "q", "quit", "exit":
			return 0, session.ErrQuit
		case "":
			if first != 0 {
				return first, nil
			}
			continue
		}

		c, err := vignette.ParseCategory(answer)
		if err != nil {
			fmt.Fprintln(o.out, "Enter 1, 2 or 3.")
			continue
		}
		if counts[c] == 0 {
			fmt.Fprintf(o.out, "No %s vignettes remain.\n", c)
			continue
		}
		return c, nil
	}
}

func (o *Operator) askYesNo(ctx context.Context, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(o.out, "%s %s ", question, hint)
		answer, err := o.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(o.out, "Answer y or n.")
	}
}

// Preview implements session.Previewer. End of input declines.
func (o *Operator) Preview(ctx context.Context, c vignette.Composition) (bool, error) {
	width := o.Width
	if width <= 0 {
		width = DefaultWidth
	}
	rule := strings.Repeat("=", width)

	fmt.Fprintln(o.out, "\n"+rule)
	for _, line := range strings.Split(c.Text(), "\n") {
		fmt.Fprintln(o.out, printer.Wrap(line, width))
	}
	fmt.Fprintln(o.out, rule)

	ok, err := o.askYesNo(ctx, "Would you like to print this vignette?", true)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	return ok, err
}

// Announce implements session.Announcer.
func (o *Operator) Announce(_ context.Context, n session.Notice) {
	fmt.Fprintf(o.out, "\n*** %s ***\n%s\n", n.Title, n.Message)
}

func quitOnEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return session.ErrQuit
	}
	return err
}
