// Package repl provides the interactive loop of rpn. It reads lines from a
// LineReader, evaluates each one in a calc.Session, asks for the values of
// unknown identifiers and renders traces, results and diagnostics.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atinylittleshell/rpn/internal/calc"
	"github.com/atinylittleshell/rpn/internal/history"
	"github.com/atinylittleshell/rpn/internal/repl/completion"
	"github.com/atinylittleshell/rpn/internal/repl/config"
	"github.com/atinylittleshell/rpn/internal/repl/input"
	"github.com/atinylittleshell/rpn/internal/repl/render"
	"go.uber.org/zap"
)

// LineReader reads one line of input after showing prompt. It returns io.EOF
// when input has ended.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// historyReader is implemented by readers that support history navigation.
type historyReader interface {
	SetHistory(lines []string)
	AddHistory(line string)
}

// completingReader is implemented by readers that support tab completion.
type completingReader interface {
	SetCompletionProvider(provider input.CompletionProvider)
}

// exitKeyReader is implemented by readers that can bind exit keys.
type exitKeyReader interface {
	BindExitKey(keys ...string)
}

// Options holds configuration options for creating a new REPL.
type Options struct {
	// Config holds the REPL configuration. If nil, config.DefaultConfig is used.
	Config *config.Config

	// Reader supplies input lines. Required.
	Reader LineReader

	// Output receives the banner, traces, results and diagnostics.
	// Defaults to os.Stdout.
	Output io.Writer

	// TermWidth reports the terminal width for the banner. May be nil.
	TermWidth func() int

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// REPL is the interactive read-evaluate-print loop.
type REPL struct {
	config    *config.Config
	reader    LineReader
	renderer  *render.Renderer
	evaluator *calc.Evaluator
	provider  *completion.Provider
	history   *history.HistoryManager
	logger    *zap.Logger

	// lines entered during this session, oldest first
	sessionLines []string
	historyLines int
}

// NewREPL creates a new REPL. History failures are logged and leave the
// REPL without persistent history.
func NewREPL(opts Options) (*REPL, error) {
	if opts.Reader == nil {
		return nil, errors.New("repl: a line reader is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	renderer := render.New(output, opts.TermWidth)

	r := &REPL{
		config:   cfg,
		reader:   opts.Reader,
		renderer: renderer,
		evaluator: calc.NewEvaluator(calc.Options{
			Tracer: renderer,
			Logger: logger.Named("calc"),
		}),
		provider: completion.NewProvider(cfg.Commands),
		logger:   logger,
	}

	if cfg.HistoryFile != "" {
		historyManager, err := history.NewHistoryManager(cfg.HistoryFile)
		if err != nil {
			logger.Warn("failed to open history, continuing without it", zap.String("path", cfg.HistoryFile), zap.Error(err))
		} else {
			r.history = historyManager
		}
	}

	r.setupReader()

	return r, nil
}

// setupReader registers completion, exit keys and the stored history with
// readers that support them.
func (r *REPL) setupReader() {
	if cr, ok := r.reader.(completingReader); ok {
		cr.SetCompletionProvider(r.provider)
	}
	if er, ok := r.reader.(exitKeyReader); ok && len(r.config.ExitKeys) > 0 {
		er.BindExitKey(r.config.ExitKeys...)
	}

	if r.history == nil {
		return
	}
	lines, err := r.history.Recent(r.config.HistoryLimit)
	if err != nil {
		r.logger.Warn("failed to load history", zap.Error(err))
		return
	}
	r.historyLines = len(lines)
	if hr, ok := r.reader.(historyReader); ok {
		hr.SetHistory(lines)
	}
	r.logger.Debug("loaded history", zap.Int("lines", len(lines)))
}

// Config returns the REPL configuration.
func (r *REPL) Config() *config.Config {
	return r.config
}

// History returns the history manager, or nil when history is disabled.
func (r *REPL) History() *history.HistoryManager {
	return r.history
}

// SessionLines returns the lines entered during this session, oldest first.
func (r *REPL) SessionLines() []string {
	return r.sessionLines
}

// Run prints the banner and evaluates lines until an empty line or the end of
// input. It returns nil on a normal exit. With FailFast set, the first
// evaluation error is returned.
func (r *REPL) Run(ctx context.Context) error {
	r.renderer.RenderBanner(render.WelcomeInfo{
		Version:      r.config.BuildVersion,
		HistoryLines: r.historyLines,
	})

	for {
		line, err := r.reader.ReadLine(ctx, r.config.Prompt)
		if errors.Is(err, input.ErrInterrupted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			r.logger.Debug("input ended")
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}

		r.record(line)

		if err := r.processLine(ctx, line); err != nil {
			if ctx.Err() != nil {
				return err
			}
			r.logger.Warn("line discarded", zap.String("line", line), zap.Error(err))
			if r.config.FailFast {
				return err
			}
			r.renderer.RenderDiagnostic(err)
		}
	}
}

// processLine evaluates one line, prompting for unknown identifiers. A
// result is rendered whenever one was popped, even if the line then fails.
func (r *REPL) processLine(ctx context.Context, line string) error {
	r.logger.Debug("evaluating line", zap.String("line", line))

	session := r.evaluator.Start(line)
	for {
		status, err := session.Advance()
		if status == calc.StatusDone {
			if value, ok := session.Result(); ok {
				r.renderer.RenderResult(value)
			}
			return err
		}

		name := session.Pending()
		reply, err := r.reader.ReadLine(ctx, r.config.VariablePromptFor(name))
		switch {
		case errors.Is(err, input.ErrInterrupted):
			session.Abort()
			r.renderer.RenderSystemMessage("line cancelled")
			return nil
		case errors.Is(err, io.EOF):
			session.Abort()
			return fmt.Errorf("%w: %s", calc.ErrNoInput, name)
		case err != nil:
			session.Abort()
			return err
		}

		if err := session.Provide(reply); err != nil {
			return err
		}
	}
}

// record adds a line to the session and to the reader's navigation history.
func (r *REPL) record(line string) {
	r.sessionLines = append(r.sessionLines, line)
	if hr, ok := r.reader.(historyReader); ok {
		hr.AddHistory(line)
	}
}

// Close persists the session's lines and releases the history database.
// Failures are logged and otherwise ignored.
func (r *REPL) Close() error {
	if r.history == nil {
		return nil
	}

	if len(r.sessionLines) > 0 {
		if err := r.history.Append(r.sessionLines...); err != nil {
			r.logger.Warn("failed to save history", zap.Error(err))
		} else if err := r.history.Trim(r.config.HistoryLimit); err != nil {
			r.logger.Warn("failed to trim history", zap.Error(err))
		}
		r.sessionLines = nil
	}

	if err := r.history.Close(); err != nil {
		r.logger.Warn("failed to close history", zap.Error(err))
	}
	r.history = nil
	return nil
}
