package collections

import "sync"

type (
	Stack[T comparable] struct {
		top    *node[T]
		length int
		lock   sync.RWMutex
	}

	node[T comparable] struct {
		value T
		prev  *node[T]
	}
)

// NewStack Create a new stack
func NewStack[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// Len Return the number of items in the stack
func (s *Stack[T]) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.length
}

// Peek View the top item on the stack
func (s *Stack[T]) Peek() (value T, ok bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.length == 0 {
		return
	}
	return s.top.value, true
}

// Pop the top item of the stack and return it
func (s *Stack[T]) Pop() (value T, ok bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.length == 0 {
		return
	}
	n := s.top
	s.top = n.prev
	s.length--
	return n.value, true
}

// Push a value onto the top of the stack
func (s *Stack[T]) Push(value T) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.top = &node[T]{value, s.top}
	s.length++
}

// Contains reports whether value is anywhere on the stack
func (s *Stack[T]) Contains(value T) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for n := s.top; n != nil; n = n.prev {
		if n.value == value {
			return true
		}
	}
	return false
}

// Values returns the items from bottom to top
func (s *Stack[T]) Values() []T {
	s.lock.RLock()
	defer s.lock.RUnlock()
	values := make([]T, s.length)
	i := s.length
	for n := s.top; n != nil; n = n.prev {
		i--
		values[i] = n.value
	}
	return values
}
