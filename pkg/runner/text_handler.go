package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ContentRenderer transforms question text before it is printed,
// e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)

// TextHandler implements the interactive line based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	// Interactive is true when reading from a terminal. The "> " prompt is
	// only printed then.
	Interactive bool

	out       *termenv.Output
	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader:      bufio.NewReader(r),
		Writer:      w,
		Interactive: isTerminal(r),
		out:         termenv.NewOutput(w),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (h *TextHandler) Output(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventQuestion:
		h.printPrompt(*ev.Prompt)
	case EventError:
		fmt.Fprintln(h.Writer, h.out.String("! "+ev.Message).Foreground(termenv.ANSIRed))
	case EventSummary:
		fmt.Fprintln(h.Writer, h.out.String("Summary").Bold())
		for _, line := range ev.Summary {
			answer := line.Answer
			if !line.Answered {
				answer = "(skipped)"
			}
			fmt.Fprintf(h.Writer, "  - %s: %s\n", line.Text, answer)
		}
	case EventDone:
		fmt.Fprintln(h.Writer, h.out.String(ev.Message).Foreground(termenv.ANSIGreen))
	}
	return nil
}

func (h *TextHandler) printPrompt(p Prompt) {
	text := p.Text
	if h.Renderer != nil {
		if rendered, err := h.Renderer(text); err == nil {
			text = rendered
		}
	}
	fmt.Fprintln(h.Writer)
	fmt.Fprintln(h.Writer, strings.TrimSpace(text))
	if !p.Required {
		fmt.Fprintln(h.Writer, h.out.String("(optional, press enter to skip)").Faint())
	}
	for _, c := range p.Choices {
		fmt.Fprintf(h.Writer, "  [%s] %s\n", c.Key, c.Label)
	}
	if hint := inputHint(p); hint != "" {
		fmt.Fprintln(h.Writer, h.out.String(hint).Faint())
	}
}

func inputHint(p Prompt) string {
	switch {
	case p.Multiple:
		return "Select one or more keys separated by commas."
	case p.Kind.IsMedia():
		hint := fmt.Sprintf("Enter the reference of the %s capture.", p.Kind)
		if p.MaxDurationSec > 0 {
			hint += fmt.Sprintf(" Max %ds.", p.MaxDurationSec)
		}
		if p.MaxCount > 0 {
			hint += fmt.Sprintf(" Max %d items.", p.MaxCount)
		}
		return hint
	case p.InputType != "" && p.InputType != "text":
		return fmt.Sprintf("Expected: %s.", p.InputType)
	}
	return ""
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honor ctx cancellation.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	if h.Interactive {
		fmt.Fprint(h.Writer, "> ")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}
