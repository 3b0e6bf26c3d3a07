package team

// Team identifies one fantasy squad. The live API id is authoritative when
// present; historical sources are joined on the resolved name instead.
type Team struct {
	ID   string `validate:"required"`
	Name string `validate:"required"`
}

// Key returns the join key for per-team state: the API id when known,
// otherwise the resolved name supplied by the caller.
func (t Team) Key(resolvedName string) string {
	if t.ID != "" {
		return t.ID
	}
	return resolvedName
}
