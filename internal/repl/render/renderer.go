package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/atinylittleshell/rpn/internal/calc"
)

// Renderer writes evaluation output. Indentation is written as raw tabs
// outside the styled text so terminals keep their own tab stops.
type Renderer struct {
	writer    io.Writer
	termWidth func() int // Function to get current terminal width
}

// Ensure Renderer receives evaluator traces.
var _ calc.Tracer = (*Renderer)(nil)

// New creates a new Renderer instance
func New(writer io.Writer, termWidth func() int) *Renderer {
	return &Renderer{
		writer:    writer,
		termWidth: termWidth,
	}
}

// Writer returns the underlying writer.
func (r *Renderer) Writer() io.Writer {
	return r.writer
}

// Trace renders one operation trace line.
func (r *Renderer) Trace(line string) {
	fmt.Fprintf(r.writer, "\t\t%s\n", TraceStyle.Render(line))
}

// RenderResult renders the value a line reduced to.
func (r *Renderer) RenderResult(value float64) {
	fmt.Fprintf(r.writer, "\t%s %s\n", StyledSymbol(SymbolResult), ResultStyle.Render(calc.FormatNumber(value)))
}

// RenderDiagnostic renders an evaluation error for a discarded line.
func (r *Renderer) RenderDiagnostic(err error) {
	fmt.Fprintf(r.writer, "\t%s %s\n", StyledSymbol(SymbolError), ErrorStyle.Render(describe(err)))
}

// RenderSystemMessage renders a system message
func (r *Renderer) RenderSystemMessage(message string) {
	fmt.Fprintf(r.writer, "%s %s\n", StyledSymbol(SymbolSystemMessage), SystemMessageStyle.Render(message))
}

// RenderBanner renders the welcome screen sized to the terminal.
func (r *Renderer) RenderBanner(info WelcomeInfo) {
	RenderWelcome(r.writer, info, r.getTerminalWidth())
}

func (r *Renderer) getTerminalWidth() int {
	if r.termWidth == nil {
		return 80
	}
	if width := r.termWidth(); width > 0 {
		return width
	}
	return 80
}

// describe turns evaluation errors into a user-facing message.
func describe(err error) string {
	var unconsumed *calc.UnconsumedError
	switch {
	case errors.As(err, &unconsumed):
		return fmt.Sprintf("line discarded: %v", err)
	case errors.Is(err, calc.ErrMissingResult):
		return "line discarded: nothing to output"
	default:
		return err.Error()
	}
}
