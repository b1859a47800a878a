package codegen

import "fmt"

// TempStore hands out fresh pvm variable names for the assign pass
// ("t0", "t1", ...). Reuse isn't implemented — the free list exists in the
// same shape as the reference design but nothing ever feeds it, matching
// the one code path this repo exercises (see DESIGN.md).
type TempStore struct {
	counter int
	inUse   map[string]bool
	free    []string
}

func NewTempStore() *TempStore {
	return &TempStore{inUse: map[string]bool{}}
}

// Temp returns a fresh variable name, marking it in use.
func (s *TempStore) Temp() string {
	if n := len(s.free); n > 0 {
		t := s.free[n-1]
		s.free = s.free[:n-1]
		s.inUse[t] = true
		return t
	}
	t := fmt.Sprintf("t%d", s.counter)
	s.counter++
	s.inUse[t] = true
	return t
}

// Free releases t back to the pool. Unused by this repo's one assign
// pass, kept for parity with the reference TempStore's shape.
func (s *TempStore) Free(t string) {
	delete(s.inUse, t)
	s.free = append(s.free, t)
}
