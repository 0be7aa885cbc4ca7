package runner

// scriptedSource replays fixed random values. Once a script is exhausted
// Float64 returns 1 (never spawns) and Intn returns 0.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 1
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// neverSpawn returns a source that never passes the spawn roll.
func neverSpawn() Source {
	return &scriptedSource{}
}
