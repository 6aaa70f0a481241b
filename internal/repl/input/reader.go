package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ErrInterrupted is returned by ReadLine when the user abandons the line with Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// Input is the terminal to read keys from. Defaults to os.Stdin.
	Input *os.File
	// Output is where the editor is drawn. Defaults to os.Stdout.
	Output io.Writer
	// KeyMap provides key bindings. If nil, DefaultKeyMap is used.
	KeyMap *KeyMap
	// RenderConfig provides styling. If nil, DefaultRenderConfig is used.
	RenderConfig *RenderConfig
	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Reader reads lines from an interactive terminal, one Bubble Tea program per line.
type Reader struct {
	input        *os.File
	output       io.Writer
	keymap       *KeyMap
	renderConfig *RenderConfig
	provider     CompletionProvider
	history      []string
	logger       *zap.Logger
}

// NewReader creates a Reader.
func NewReader(opts ReaderOptions) *Reader {
	r := &Reader{
		input:        opts.Input,
		output:       opts.Output,
		keymap:       opts.KeyMap,
		renderConfig: opts.RenderConfig,
		logger:       opts.Logger,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.keymap == nil {
		r.keymap = DefaultKeyMap()
	} else {
		r.keymap = r.keymap.Clone()
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// SetCompletionProvider sets the source of tab completions and help text.
func (r *Reader) SetCompletionProvider(provider CompletionProvider) {
	r.provider = provider
}

// BindExitKey makes keys end input the same way an empty line does.
func (r *Reader) BindExitKey(keys ...string) {
	r.keymap.AddKeys(ActionExit, keys...)
}

// SetHistory replaces the history, most recent first.
func (r *Reader) SetHistory(lines []string) {
	r.history = append([]string(nil), lines...)
}

// AddHistory records a line as the most recent history entry.
// Blank lines and immediate repeats are skipped.
func (r *Reader) AddHistory(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if len(r.history) > 0 && r.history[0] == line {
		return
	}
	r.history = append([]string{line}, r.history...)
}

// History returns the recorded lines, most recent first.
func (r *Reader) History() []string {
	return r.history
}

// ReadLine shows prompt and blocks until the user submits a line. It returns
// io.EOF when input ends and ErrInterrupted on Ctrl+C.
func (r *Reader) ReadLine(ctx context.Context, prompt string) (string, error) {
	width := 80
	if w, _, err := term.GetSize(int(r.input.Fd())); err == nil && w > 0 {
		width = w
	}

	model := New(Config{
		Prompt:             prompt,
		HistoryValues:      r.history,
		CompletionProvider: r.provider,
		KeyMap:             r.keymap,
		RenderConfig:       r.renderConfig,
		Width:              width,
		Logger:             r.logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithInput(r.input),
		tea.WithOutput(r.output),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to read line: %w", err)
	}

	result := final.(Model).Result()
	r.logger.Debug("line editor finished", zap.Int("result", int(result.Type)))

	switch result.Type {
	case ResultSubmit:
		return result.Value, nil
	case ResultInterrupt:
		return "", ErrInterrupted
	default:
		return "", io.EOF
	}
}

// ScannerReader reads lines from a non-interactive source such as a pipe.
// Prompts are written to Output when it is set.
type ScannerReader struct {
	scanner *bufio.Scanner
	output  io.Writer
}

// NewScannerReader creates a ScannerReader over in. output may be nil.
func NewScannerReader(in io.Reader, output io.Writer) *ScannerReader {
	return &ScannerReader{
		scanner: bufio.NewScanner(in),
		output:  output,
	}
}

// ReadLine returns the next line without its terminator, or io.EOF.
func (s *ScannerReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.output != nil {
		fmt.Fprint(s.output, prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read line: %w", err)
		}
		return "", io.EOF
	}
	line := strings.TrimSuffix(s.scanner.Text(), "\r")
	if s.output != nil {
		fmt.Fprintln(s.output, line)
	}
	return line, nil
}
