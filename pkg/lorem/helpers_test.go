package lorem

// stubSource returns the lower bound of every range, a fixed coin and
// never shuffles, so a cycler walks its multiset in construction order.
type stubSource struct {
	coin     bool
	shuffles int
	ranges   int
}

func (s *stubSource) IntRange(min, _ int) int {
	s.ranges++
	return min
}

func (s *stubSource) Coin() bool { return s.coin }

func (s *stubSource) Shuffle(int, func(i, j int)) { s.shuffles++ }

// recordingSource wraps a real Source and remembers coin results.
type recordingSource struct {
	Source
	coins []bool
}

func (s *recordingSource) Coin() bool {
	c := s.Source.Coin()
	s.coins = append(s.coins, c)
	return c
}

func (s *recordingSource) reset() { s.coins = s.coins[:0] }

var testPool = []string{"lorem", "ipsum"}
