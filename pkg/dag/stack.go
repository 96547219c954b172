package dag

import "errors"

var (
	// ErrStackOverflow is the panic value of a Push on a full Stack.
	ErrStackOverflow = errors.New("dag: stack overflow")

	// ErrStackUnderflow is the panic value of a Pop on an empty Stack.
	ErrStackUnderflow = errors.New("dag: stack underflow")
)

// Stack is a fixed-capacity LIFO buffer of vertex indices. It records the
// DFS postorder of a LongestPath run; its capacity equals the vertex count
// and it never grows.
type Stack struct {
	items []int
	top   int
}

// NewStack creates an empty stack holding at most capacity elements.
func NewStack(capacity int) *Stack {
	return &Stack{items: make([]int, capacity)}
}

// Push adds v on top of the stack. Pushing onto a full stack is a contract
// violation and panics with ErrStackOverflow.
func (s *Stack) Push(v int) {
	if s.top == len(s.items) {
		panic(ErrStackOverflow)
	}
	s.items[s.top] = v
	s.top++
}

// Pop removes and returns the top element. Popping an empty stack panics
// with ErrStackUnderflow.
func (s *Stack) Pop() int {
	if s.top == 0 {
		panic(ErrStackUnderflow)
	}
	s.top--
	return s.items[s.top]
}

// IsEmpty reports whether the stack holds no elements.
func (s *Stack) IsEmpty() bool { return s.top == 0 }

// Len returns the number of elements on the stack.
func (s *Stack) Len() int { return s.top }

// Cap returns the fixed capacity of the stack.
func (s *Stack) Cap() int { return len(s.items) }
