package sim

import (
	"math/rand"
	"testing"
)

// scriptedSource replays fixed draws so a transition can be traced step by step.
type scriptedSource struct {
	t     *testing.T
	draws []int
	next  int
}

func newScriptedSource(t *testing.T, draws ...int) *scriptedSource {
	t.Helper()
	return &scriptedSource{t: t, draws: draws}
}

func (s *scriptedSource) Intn(n int) int {
	s.t.Helper()
	if s.next >= len(s.draws) {
		s.t.Fatalf("scriptedSource exhausted after %d draws", len(s.draws))
	}
	v := s.draws[s.next]
	s.next++
	if v < 0 || v >= n {
		s.t.Fatalf("scripted draw %d = %d out of range [0, %d)", s.next-1, v, n)
	}
	return v
}

func (s *scriptedSource) remaining() int {
	return len(s.draws) - s.next
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func vec(levels ...int) QualityVector {
	v := make(QualityVector, len(levels))
	for i, l := range levels {
		v[i] = Quality(l)
	}
	return v
}
