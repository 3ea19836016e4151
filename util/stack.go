package util

type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v A) {
	s.items = append(s.items, v)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) <= 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	ret = s.items[lastIndex]
	s.items = s.items[:lastIndex]
	return ret, true
}

// PopUntil pops elements up to and including the first one equal to last,
// and returns them in the order they were popped
func PopUntil[A comparable](s *Stack[A], last A) []A {
	var popped []A
	for {
		v, ok := s.Pop()
		if !ok {
			return popped
		}
		popped = append(popped, v)
		if v == last {
			return popped
		}
	}
}

func (s *Stack[A]) Len() int {
	return len(s.items)
}
