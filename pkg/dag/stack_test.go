package dag

import "testing"

func TestStack(t *testing.T) {
	s := NewStack(3)
	if !s.IsEmpty() {
		t.Fatal("new stack should be empty")
	}
	if s.Cap() != 3 {
		t.Errorf("Cap() = %d, want 3", s.Cap())
	}

	s.Push(1)
	s.Push(2)
	s.Push(3)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	for _, want := range []int{3, 2, 1} {
		if got := s.Pop(); got != want {
			t.Errorf("Pop() = %d, want %d", got, want)
		}
	}
	if !s.IsEmpty() {
		t.Error("stack should be empty after popping everything")
	}
}

func TestStackOverflow(t *testing.T) {
	s := NewStack(1)
	s.Push(0)

	defer func() {
		if r := recover(); r != ErrStackOverflow {
			t.Errorf("recover() = %v, want ErrStackOverflow", r)
		}
	}()
	s.Push(1)
}

func TestStackUnderflow(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrStackUnderflow {
			t.Errorf("recover() = %v, want ErrStackUnderflow", r)
		}
	}()
	NewStack(2).Pop()
}
