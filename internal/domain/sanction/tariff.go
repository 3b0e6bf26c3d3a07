package sanction

// Tariff stores the league's penalty amounts and window lengths. The values
// are the ones the peña has voted on; they change between seasons, never
// mid-computation.
type Tariff struct {
	SuspendedFielded float64
	SuspendedCaptain float64
	SameClubCaptain  float64
	SharedPlayer     float64
	SharedCaptain    float64
	RivalCaptain     float64
	WorstTeamTiers   []float64
	WorstCaptain     float64
	WorstPlayer      float64
	LateEntry        float64
	RepeatCycle      int
	OutTeamRounds    int
	NoCaptainRounds  int
}

func DefaultTariff() Tariff {
	return Tariff{
		SuspendedFielded: 5,
		SuspendedCaptain: 5,
		SameClubCaptain:  2,
		SharedPlayer:     0.5,
		SharedCaptain:    2,
		RivalCaptain:     2,
		WorstTeamTiers:   []float64{2, 1.5, 1},
		WorstCaptain:     1,
		WorstPlayer:      1,
		LateEntry:        5,
		RepeatCycle:      3,
		OutTeamRounds:    3,
		NoCaptainRounds:  6,
	}
}

// IsZero reports an unset tariff so callers can fall back to the default.
func (t Tariff) IsZero() bool { return t.RepeatCycle == 0 }
