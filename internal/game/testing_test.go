package game

// scriptedRand replays picks in order, wrapping around.
type scriptedRand struct {
	picks []int
	i     int
}

func newScriptedRand(picks ...int) *scriptedRand {
	return &scriptedRand{picks: picks}
}

func (s *scriptedRand) Intn(n int) int {
	v := s.picks[s.i%len(s.picks)]
	s.i++
	return v % n
}
