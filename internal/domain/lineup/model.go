package lineup

// Player is one fielded roster slot. Identity for duplicate detection is the
// normalized name; stable player ids are not reliable across sources.
type Player struct {
	Name      string
	Points    float64
	IsCaptain bool
	Club      string
}

// Captain returns the fielded captain, if any.
func Captain(players []Player) (Player, bool) {
	for _, p := range players {
		if p.IsCaptain {
			return p, true
		}
	}
	return Player{}, false
}

// TotalPoints sums the lineup's player points.
func TotalPoints(players []Player) float64 {
	total := 0.0
	for _, p := range players {
		total += p.Points
	}
	return total
}
