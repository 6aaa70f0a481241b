package calc

// Stack is the operand stack of a single input line.
type Stack struct {
	values []float64
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{values: []float64{}}
}

// Push appends a value on top of the stack.
func (s *Stack) Push(v float64) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. The second return value is false
// when the stack is empty.
func (s *Stack) Pop() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, true
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	return s.values[len(s.values)-1], true
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []float64 {
	result := make([]float64, len(s.values))
	copy(result, s.values)
	return result
}

// Clear removes every value.
func (s *Stack) Clear() {
	s.values = s.values[:0]
}
