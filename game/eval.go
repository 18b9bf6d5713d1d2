package game

// EvaluateQueenPressure compares how crowded the two queens are, between -1
// and 1 from team's perspective. A crowded enemy queen is good for team.
func EvaluateQueenPressure(s State, team Team) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	if score, done := resultScore(gs.Result(), team); done {
		return score
	}
	return gs.pressureScore(team)
}

// EvaluatePressureMobility adds the difference in movable stones to the queen
// pressure, so that pinned stones count against their owner.
func EvaluatePressureMobility(s State, team Team) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	if score, done := resultScore(gs.Result(), team); done {
		return score
	}
	return (gs.pressureScore(team) + gs.mobilityScore(team)) / 2
}

func resultScore(result Result, team Team) (float64, bool) {
	switch result {
	case Ongoing:
		return 0, false
	case Draw:
		return 0, true
	}
	if winner, _ := result.Winner(); winner == team {
		return 1, true
	}
	return -1, true
}

func (s *GameState) pressureScore(team Team) float64 {
	ours := float64(s.hive.Pressure(team))
	theirs := float64(s.hive.Pressure(team.Opponent()))
	return normalize(theirs, ours)
}

func (s *GameState) mobilityScore(team Team) float64 {
	movable := make(map[Team]float64)
	for _, t := range []Team{team, team.Opponent()} {
		origins := make(map[Hex]bool)
		for _, move := range s.hive.GenerateMoves(t) {
			origins[move.Origin] = true
		}
		movable[t] = float64(len(origins))
	}
	return normalize(movable[team], movable[team.Opponent()])
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
