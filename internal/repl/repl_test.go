package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/atinylittleshell/rpn/internal/calc"
	"github.com/atinylittleshell/rpn/internal/history"
	"github.com/atinylittleshell/rpn/internal/repl/config"
	"github.com/atinylittleshell/rpn/internal/repl/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// step is one scripted answer to ReadLine.
type step struct {
	line string
	err  error
}

func line(s string) step { return step{line: s} }

// scriptedReader replays steps and records the prompts it was shown.
// It returns io.EOF once the script is exhausted.
type scriptedReader struct {
	steps   []step
	prompts []string

	history  []string
	provider input.CompletionProvider
	exitKeys []string
}

func (s *scriptedReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.steps) == 0 {
		return "", io.EOF
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	return next.line, next.err
}

func (s *scriptedReader) SetHistory(lines []string) {
	s.history = append([]string(nil), lines...)
}

func (s *scriptedReader) AddHistory(line string) {
	s.history = append([]string{line}, s.history...)
}

func (s *scriptedReader) SetCompletionProvider(provider input.CompletionProvider) {
	s.provider = provider
}

func (s *scriptedReader) BindExitKey(keys ...string) {
	s.exitKeys = append(s.exitKeys, keys...)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.HistoryFile = ""
	cfg.BuildVersion = "test"
	return cfg
}

func newTestREPL(t *testing.T, cfg *config.Config, steps ...step) (*REPL, *scriptedReader, *bytes.Buffer) {
	t.Helper()

	reader := &scriptedReader{steps: steps}
	var out bytes.Buffer

	r, err := NewREPL(Options{
		Config: cfg,
		Reader: reader,
		Output: &out,
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	return r, reader, &out
}

func TestNewREPL_RequiresReader(t *testing.T) {
	_, err := NewREPL(Options{})
	assert.Error(t, err)
}

func TestNewREPL_DefaultOptions(t *testing.T) {
	cfg := testConfig()
	r, reader, _ := newTestREPL(t, cfg)

	assert.Equal(t, "> ", r.Config().Prompt)
	assert.Nil(t, r.History())
	assert.NotNil(t, reader.provider)
	assert.Equal(t, []string{"ctrl+x"}, reader.exitKeys)
}

func TestRun_Banner(t *testing.T) {
	r, _, out := newTestREPL(t, testConfig())

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "RPN test")
	assert.Contains(t, out.String(), "Press [Enter] or [Ctrl + X] without typing anything to exit properly.")
}

func TestRun_EvaluatesLines(t *testing.T) {
	r, reader, out := newTestREPL(t, testConfig(), line("1 2 +"), line("4 sqrt 3 *"))

	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, out.String(), "\t\t1 + 2 = 3\n\t= 3\n")
	assert.Contains(t, out.String(), "\t\tsqrt(4) = 2\n\t\t2 * 3 = 6\n\t= 6\n")
	assert.Equal(t, []string{"> ", "> ", "> "}, reader.prompts)
	assert.Equal(t, []string{"1 2 +", "4 sqrt 3 *"}, r.SessionLines())
}

func TestRun_ExitsOnEmptyLine(t *testing.T) {
	r, reader, out := newTestREPL(t, testConfig(), line(""), line("1 2 +"))

	require.NoError(t, r.Run(context.Background()))
	assert.NotContains(t, out.String(), "= 3")
	assert.Len(t, reader.steps, 1)
	assert.Empty(t, r.SessionLines())
}

func TestRun_Variables(t *testing.T) {
	t.Run("asked once per line", func(t *testing.T) {
		r, reader, out := newTestREPL(t, testConfig(), line("x x *"), line("4"))

		require.NoError(t, r.Run(context.Background()))
		assert.Equal(t, []string{"> ", "\tx? ", "> "}, reader.prompts)
		assert.Contains(t, out.String(), "\t\t4 * 4 = 16\n\t= 16\n")
	})

	t.Run("forgotten on the next line", func(t *testing.T) {
		r, reader, out := newTestREPL(t, testConfig(), line("x"), line("2"), line("x"), line("5"))

		require.NoError(t, r.Run(context.Background()))
		assert.Equal(t, []string{"> ", "\tx? ", "> ", "\tx? ", "> "}, reader.prompts)
		assert.Contains(t, out.String(), "\t= 2\n")
		assert.Contains(t, out.String(), "\t= 5\n")
	})

	t.Run("reply that is not a number", func(t *testing.T) {
		r, _, out := newTestREPL(t, testConfig(), line("y 1 +"), line("abc"), line("1 1 +"))

		require.NoError(t, r.Run(context.Background()))
		assert.Contains(t, out.String(), `expected a number for y, got "abc"`)
		assert.Contains(t, out.String(), "\t= 2\n")
	})
}

func TestRun_RecoverableErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"unconsumed operands", "1 2", "line discarded: unconsumed values, 1 left on the stack"},
		{"missing operands", "+", "'+' requires 2 additional operands"},
		{"nothing to output", "   ", "line discarded: nothing to output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, reader, out := newTestREPL(t, testConfig(), line(tt.line), line("2 3 *"))

			require.NoError(t, r.Run(context.Background()))
			assert.Contains(t, out.String(), "\t! "+tt.want)
			assert.Contains(t, out.String(), "\t= 6\n")
			assert.Empty(t, reader.steps)
		})
	}
}

func TestRun_UnconsumedPrintsResultFirst(t *testing.T) {
	r, _, out := newTestREPL(t, testConfig(), line("1 2"))

	require.NoError(t, r.Run(context.Background()))
	assert.Regexp(t, `\t= 2\n\t! line discarded`, out.String())
}

func TestRun_FailFast(t *testing.T) {
	t.Run("unconsumed operands", func(t *testing.T) {
		cfg := testConfig()
		cfg.FailFast = true
		r, reader, out := newTestREPL(t, cfg, line("1 2"), line("2 3 *"))

		err := r.Run(context.Background())
		var unconsumed *calc.UnconsumedError
		require.ErrorAs(t, err, &unconsumed)
		assert.Equal(t, 1, unconsumed.Remaining)
		assert.Contains(t, out.String(), "\t= 2\n")
		assert.NotContains(t, out.String(), "\t! ")
		assert.Len(t, reader.steps, 1)
	})

	t.Run("missing operands", func(t *testing.T) {
		cfg := testConfig()
		cfg.FailFast = true
		r, _, _ := newTestREPL(t, cfg, line("3 +"))

		var arity *calc.ArityError
		require.ErrorAs(t, r.Run(context.Background()), &arity)
		assert.Equal(t, "+", arity.Op)
		assert.Equal(t, 1, arity.Have)
	})

	t.Run("end of input at a variable prompt", func(t *testing.T) {
		cfg := testConfig()
		cfg.FailFast = true
		r, _, _ := newTestREPL(t, cfg, line("x 1 +"))

		err := r.Run(context.Background())
		assert.ErrorIs(t, err, calc.ErrNoInput)
		assert.Contains(t, err.Error(), "x")
	})
}

func TestRun_Interrupt(t *testing.T) {
	t.Run("at the main prompt", func(t *testing.T) {
		r, _, out := newTestREPL(t, testConfig(), step{err: input.ErrInterrupted}, line("1 1 +"))

		require.NoError(t, r.Run(context.Background()))
		assert.Contains(t, out.String(), "\t= 2\n")
	})

	t.Run("at a variable prompt", func(t *testing.T) {
		cfg := testConfig()
		cfg.FailFast = true
		r, _, out := newTestREPL(t, cfg, line("x"), step{err: input.ErrInterrupted}, line("1 1 +"))

		require.NoError(t, r.Run(context.Background()))
		assert.Contains(t, out.String(), "line cancelled")
		assert.Contains(t, out.String(), "\t= 2\n")
	})
}

func TestRun_ReaderFailure(t *testing.T) {
	boom := errors.New("terminal gone")
	r, _, _ := newTestREPL(t, testConfig(), step{err: boom})

	assert.ErrorIs(t, r.Run(context.Background()), boom)
}

func TestRun_ContextCancelled(t *testing.T) {
	r, _, _ := newTestREPL(t, testConfig(), line("1 1 +"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestHistory_PersistedAcrossSessions(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history.db")

	cfg := testConfig()
	cfg.HistoryFile = historyPath
	first, firstReader, _ := newTestREPL(t, cfg, line("1 2 +"), line("x"), line("3"))

	require.NotNil(t, first.History())
	require.NoError(t, first.Run(context.Background()))
	assert.Equal(t, []string{"x", "1 2 +"}, firstReader.history)
	require.NoError(t, first.Close())

	second, secondReader, out := newTestREPL(t, cfg)
	assert.Equal(t, []string{"x", "1 2 +"}, secondReader.history)
	require.NoError(t, second.Run(context.Background()))
	assert.Contains(t, out.String(), "2 lines")
}

func TestHistory_TrimmedToLimit(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history.db")

	cfg := testConfig()
	cfg.HistoryFile = historyPath
	cfg.HistoryLimit = 2
	r, _, _ := newTestREPL(t, cfg, line("1"), line("2"), line("3"))
	require.NoError(t, r.Run(context.Background()))
	require.NoError(t, r.Close())

	manager, err := history.NewHistoryManager(historyPath)
	require.NoError(t, err)
	defer manager.Close()

	lines, err := manager.Recent(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2"}, lines)
}

func TestHistory_UnavailableIsIgnored(t *testing.T) {
	cfg := testConfig()
	// A path below a regular file cannot be created
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.HistoryFile = filepath.Join(blocker, "history.db")

	r, _, out := newTestREPL(t, cfg, line("1 1 +"))
	assert.Nil(t, r.History())
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "\t= 2\n")
}
