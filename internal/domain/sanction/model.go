package sanction

// EntryType labels a ledger line item. The dashboard renders these verbatim,
// so they keep the league's Spanish wording.
type EntryType string

const (
	TypeRepeatedCaptain  EntryType = "Capitán Repetido"
	TypeSameClubCaptain  EntryType = "Capitán Mismo Club"
	TypeSharedPlayer     EntryType = "Jugador Repetido H2H"
	TypeSharedCaptain    EntryType = "Capitán Compartido"
	TypeRivalCaptain     EntryType = "Capitán Rival Alineado"
	TypeWorstTeam        EntryType = "Peor Equipo"
	TypeWorstCaptain     EntryType = "Peor Capitán"
	TypeWorstPlayer      EntryType = "Peor Jugador"
	TypeLateEntry        EntryType = "Inscripción Tardía"
	TypeSuspendedFielded EntryType = "Alineado Sancionado"
	TypeSuspendedCaptain EntryType = "Capitán Sancionado"
)

// LedgerEntry is one atomic monetary penalty. Round is a display label:
// "14" for league rounds, "3.2" for cup legs.
type LedgerEntry struct {
	TeamID string
	Round  string
	Type   EntryType
	Detail string
	Cost   float64
}

// CaptainEntry is one line of a team's captain-usage history. Count is the
// running occurrence count for that (team, player) pair; Warning marks the
// 2nd use of a cycle and Alert the 3rd.
type CaptainEntry struct {
	Round   string
	Player  string
	Count   int
	Warning bool
	Alert   bool
}

// Suspension is the restriction window opened when a captain's count reaches
// a multiple of the repeat cycle. The player may not appear at all through
// OutTeamUntil and may not captain through NoCaptainUntil. Exactly one
// record is active per (team, player); a later trigger overwrites it.
type Suspension struct {
	TeamID         string
	TeamName       string
	Player         string
	TriggerRound   int
	OutTeamUntil   int
	NoCaptainUntil int
}

// ActiveAt reports whether any part of the window still covers round.
func (s Suspension) ActiveAt(round int) bool { return round <= s.NoCaptainUntil }

// Infraction records a roster fielding a player inside an active suspension
// window. Infractions are also mirrored into the team's ledger so totals
// include them.
type Infraction struct {
	TeamID string
	Player string
	Round  string
	Kind   EntryType
	Cost   float64
}

// TeamLedger aggregates one team's penalties and captain history.
type TeamLedger struct {
	TeamID         string
	TeamName       string
	Total          float64
	Breakdown      []LedgerEntry
	CaptainHistory []CaptainEntry
}

// Result is the full league sanctions output. Suspensions is the final
// registry snapshot; callers filter by the current round via ActiveAt.
type Result struct {
	Ledgers     map[string]*TeamLedger
	Infractions []Infraction
	Suspensions []Suspension
}
