package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contactbook/internal/contact"
)

// defaultChoice is selected when the user just presses enter at the menu.
const defaultChoice = "0"

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainOption configures a Plain console.
type PlainOption func(*Plain)

// WithTimeFormat sets the layout for the Created column.
func WithTimeFormat(layout string) PlainOption {
	return func(p *Plain) {
		if layout != "" {
			p.timeFormat = layout
		}
	}
}

// WithBanner sets a message printed once before the first menu.
func WithBanner(msg string) PlainOption {
	return func(p *Plain) {
		p.banner = msg
	}
}

// Plain runs the menu as a line-oriented prompt: it prints the menu, reads
// a choice and the action's fields one line at a time, and prints results.
type Plain struct {
	book       Book
	in         *bufio.Scanner
	out        io.Writer
	timeFormat string
	banner     string
	scanErr    error
}

// NewPlain creates a Plain console reading from r and writing to w.
func NewPlain(book Book, r io.Reader, w io.Writer, opts ...PlainOption) *Plain {
	p := &Plain{
		book:       book,
		in:         bufio.NewScanner(r),
		out:        w,
		timeFormat: contact.DefaultTimeFormat,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loops until the user exits, input ends, or ctx is cancelled.
// End of input is a normal exit. Cancelling ctx interrupts a pending
// prompt; a line that arrives afterwards is not acted on.
func (p *Plain) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines := p.readLines(done)

	if p.banner != "" {
		p.println(Panel("", p.banner, outcomeColors[OutcomeSuccess]))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.println(Panel("Menu:", MenuText(), lipgloss.AdaptiveColor{Light: "2", Dark: "10"}))
		choice, err := p.ask(ctx, lines, fmt.Sprintf("Choose an option [%s] (%s)", choiceKeys(), defaultChoice))
		if err != nil {
			return endOfInput(err)
		}
		if choice == "" {
			choice = defaultChoice
		}

		item, found := Lookup(choice)
		if !found {
			p.println(fmt.Sprintf("Please select one of the available options: %s", choiceKeys()))
			continue
		}
		if item.Action == ActionExit {
			p.println(Panel("", "Goodbye!", outcomeColors[OutcomeFailure]))
			return nil
		}

		fields := item.Action.Fields()
		values := make([]string, len(fields))
		for i, f := range fields {
			v, err := p.ask(ctx, lines, f.Prompt)
			if err != nil {
				return endOfInput(err)
			}
			values[i] = v
		}

		p.println(Render(Execute(p.book, item.Action, values), p.timeFormat))
	}
}

// readLines scans input on its own goroutine so a prompt can also wait on
// ctx. The channel is closed at end of input, after scanErr is set.
func (p *Plain) readLines(done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for p.in.Scan() {
			select {
			case lines <- p.in.Text():
			case <-done:
				return
			}
		}
		p.scanErr = p.in.Err()
	}()
	return lines
}

// ask prints prompt and waits for one trimmed line. It returns io.EOF at end
// of input and ctx.Err() once ctx is cancelled.
func (p *Plain) ask(ctx context.Context, lines <-chan string, prompt string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", prompt)
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			_, _ = fmt.Fprintln(p.out)
			if p.scanErr != nil {
				return "", p.scanErr
			}
			return "", io.EOF
		}
		// Both may be ready at once; cancellation wins.
		if err := ctx.Err(); err != nil {
			_, _ = fmt.Fprintln(p.out)
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// endOfInput treats running out of input as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (p *Plain) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

func choiceKeys() string {
	keys := make([]string, len(Items))
	for i, it := range Items {
		keys[i] = it.Key
	}
	return strings.Join(keys, "/")
}
