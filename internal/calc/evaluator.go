package calc

import (
	"strings"

	"go.uber.org/zap"
)

// Status is the state a Session reports after Advance.
type Status int

const (
	// StatusNeedsValue means the session stopped at an unknown identifier
	// and waits for Provide.
	StatusNeedsValue Status = iota
	// StatusDone means every token was applied and the result was popped.
	StatusDone
)

// Tracer receives one line per applied operation.
type Tracer interface {
	Trace(line string)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(line string)

// Trace calls f(line).
func (f TracerFunc) Trace(line string) {
	f(line)
}

type nopTracer struct{}

func (nopTracer) Trace(string) {}

// Options configures an Evaluator.
type Options struct {
	// Tracer receives operation traces. If nil, traces are dropped.
	Tracer Tracer
	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Evaluator starts one Session per input line.
type Evaluator struct {
	tracer Tracer
	logger *zap.Logger
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts Options) *Evaluator {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = nopTracer{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{tracer: tracer, logger: logger}
}

// Start tokenizes line and returns a session positioned before the first token.
func (e *Evaluator) Start(line string) *Session {
	return &Session{
		tokens:    strings.Fields(line),
		stack:     NewStack(),
		variables: make(map[string]float64),
		tracer:    e.tracer,
		logger:    e.logger,
	}
}

// Session evaluates one input line. It owns the operand stack and the
// variable mapping for that line.
type Session struct {
	tokens    []string
	next      int
	stack     *Stack
	variables map[string]float64

	pending   string
	result    float64
	hasResult bool
	finished  bool

	tracer Tracer
	logger *zap.Logger
}

// Advance applies tokens left to right. It returns StatusNeedsValue when a
// token is neither an operation, a number nor a known variable; Pending then
// names it. Once every token is applied the result is popped and StatusDone
// returned. Any error ends the session and clears its state.
func (s *Session) Advance() (Status, error) {
	if s.finished {
		return StatusDone, nil
	}
	if s.pending != "" {
		return StatusNeedsValue, nil
	}

	for s.next < len(s.tokens) {
		token := s.tokens[s.next]
		needsValue, err := s.apply(token)
		if err != nil {
			s.finish()
			return StatusDone, err
		}
		if needsValue {
			s.pending = token
			return StatusNeedsValue, nil
		}
		s.next++
	}

	return StatusDone, s.conclude()
}

// Pending returns the identifier waiting for a value, or "".
func (s *Session) Pending() string {
	return s.pending
}

// Provide parses reply as the value of the pending identifier, binds it for
// the rest of the line and pushes it.
func (s *Session) Provide(reply string) error {
	if s.pending == "" {
		return nil
	}
	name := s.pending
	value, err := ParseNumber(strings.TrimSpace(reply))
	if err != nil {
		s.finish()
		return &ParseError{Name: name, Input: reply, Err: err}
	}

	s.variables[name] = value
	s.stack.Push(value)
	s.pending = ""
	s.next++
	return nil
}

// Abort ends the session without a result.
func (s *Session) Abort() {
	s.finish()
}

// Result returns the popped line result once the session is done.
func (s *Session) Result() (float64, bool) {
	return s.result, s.hasResult
}

// Depth returns the current number of operands.
func (s *Session) Depth() int {
	return s.stack.Len()
}

// Variable returns the value bound to name on this line.
func (s *Session) Variable(name string) (float64, bool) {
	v, ok := s.variables[name]
	return v, ok
}

func (s *Session) apply(token string) (bool, error) {
	if op, ok := Lookup(token); ok {
		return false, s.applyOperation(op)
	}

	if value, err := ParseNumber(token); err == nil {
		s.stack.Push(value)
		return false, nil
	}

	if value, ok := s.variables[token]; ok {
		s.stack.Push(value)
		return false, nil
	}

	return true, nil
}

func (s *Session) applyOperation(op Operation) error {
	if s.stack.Len() < op.Arity {
		return &ArityError{Op: op.Name, Need: op.Arity, Have: s.stack.Len()}
	}

	args := make([]float64, op.Arity)
	for i := op.Arity - 1; i >= 0; i-- {
		args[i], _ = s.stack.Pop()
	}

	result := op.Apply(args)
	s.stack.Push(result)

	if op.Trace != nil {
		s.tracer.Trace(op.Trace(args, result))
	}
	return nil
}

func (s *Session) conclude() error {
	defer s.finish()

	value, ok := s.stack.Pop()
	if !ok {
		return ErrMissingResult
	}
	s.result = value
	s.hasResult = true

	if remaining := s.stack.Len(); remaining > 0 {
		s.logger.Debug("unconsumed operands", zap.Float64s("stack", s.stack.Values()))
		return &UnconsumedError{Remaining: remaining}
	}
	return nil
}

func (s *Session) finish() {
	s.finished = true
	s.pending = ""
	s.stack.Clear()
	clear(s.variables)
}
