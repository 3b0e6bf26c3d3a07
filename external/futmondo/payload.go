package futmondo

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// The upstream API changed field spellings several times over the seasons.
// Everything tolerant lives in this file; the rest of the package sees one
// canonical shape per concept.

// jsonFloat accepts a JSON number or a numeric string ("44.5").
type jsonFloat float64

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = jsonFloat(parsed)
		return nil
	}
	var value float64
	if err := sonic.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*f = jsonFloat(value)
	return nil
}

// jsonBool accepts true/false, 0/1 and the string forms "true"/"1"/"si".
type jsonBool bool

func (b *jsonBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*b = false
		return nil
	}
	switch {
	case bytes.Equal(trimmed, []byte("true")), bytes.Equal(trimmed, []byte("1")):
		*b = true
		return nil
	case bytes.Equal(trimmed, []byte("false")), bytes.Equal(trimmed, []byte("0")):
		*b = false
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "1", "si", "sí", "yes":
			*b = true
		default:
			*b = false
		}
		return nil
	}
	var number float64
	if err := sonic.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*b = number != 0
	return nil
}

// clubRef accepts a club as a string, a numeric id, or an object carrying
// "name" and/or "id".
type clubRef string

func (c *clubRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = ""
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*c = clubRef(text)
		return nil
	}
	if trimmed[0] == '{' {
		var obj struct {
			Name string    `json:"name"`
			ID   jsonFloat `json:"id"`
		}
		if err := sonic.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		if obj.Name != "" {
			*c = clubRef(obj.Name)
		} else {
			*c = clubRef(strconv.FormatInt(int64(obj.ID), 10))
		}
		return nil
	}
	var number float64
	if err := sonic.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*c = clubRef(strconv.FormatInt(int64(number), 10))
	return nil
}

// playerPayload carries every captain-flag spelling seen in the wild.
type playerPayload struct {
	Name    string    `json:"name"`
	Points  jsonFloat `json:"points"`
	Captain jsonBool  `json:"captain"`
	IsCapA  jsonBool  `json:"isCaptain"`
	IsCapB  jsonBool  `json:"is_captain"`
	Club    clubRef   `json:"club"`
}

func (p playerPayload) captainFlag() bool {
	return bool(p.Captain) || bool(p.IsCapA) || bool(p.IsCapB)
}

// lineupField accepts a bare player array or an object wrapping the array
// under "players", "lineup" or "data". The first populated variant wins.
type lineupField struct {
	Players []playerPayload
	Set     bool
}

func (f *lineupField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		f.Set = false
		return nil
	}

	var direct []playerPayload
	if err := sonic.Unmarshal(trimmed, &direct); err == nil {
		f.Players = direct
		f.Set = true
		return nil
	}

	var wrapped struct {
		Players []playerPayload `json:"players"`
		Lineup  []playerPayload `json:"lineup"`
		Data    []playerPayload `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	switch {
	case wrapped.Players != nil:
		f.Players = wrapped.Players
	case wrapped.Lineup != nil:
		f.Players = wrapped.Lineup
	case wrapped.Data != nil:
		f.Players = wrapped.Data
	default:
		f.Set = false
		return nil
	}
	f.Set = true
	return nil
}

func firstLineup(fields ...lineupField) (lineupField, bool) {
	for _, field := range fields {
		if field.Set {
			return field, true
		}
	}
	return lineupField{}, false
}

type teamPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rankingPayload struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Name     string `json:"name"`
}

type matchPayload struct {
	Participants []int       `json:"participants"`
	Score        []jsonFloat `json:"score"`

	LineupA lineupField `json:"lineupA"`
	Lineup1 lineupField `json:"lineup1"`
	Home    lineupField `json:"home"`
	LineupB lineupField `json:"lineupB"`
	Lineup2 lineupField `json:"lineup2"`
	Away    lineupField `json:"away"`
}

func (m matchPayload) homeLineup() (lineupField, bool) {
	return firstLineup(m.LineupA, m.Lineup1, m.Home)
}

func (m matchPayload) awayLineup() (lineupField, bool) {
	return firstLineup(m.LineupB, m.Lineup2, m.Away)
}

type roundPayload struct {
	Number  int              `json:"number"`
	Round   int              `json:"round"`
	Ranking []rankingPayload `json:"ranking"`
	Matches []matchPayload   `json:"matches"`
}

func (r roundPayload) number() int {
	if r.Number > 0 {
		return r.Number
	}
	return r.Round
}

type cupSidePayload struct {
	Team   teamPayload `json:"team"`
	Score  jsonFloat   `json:"score"`
	Lineup lineupField `json:"lineup"`
}

type cupMatchPayload struct {
	Leg  int            `json:"leg"`
	Home cupSidePayload `json:"home"`
	Away cupSidePayload `json:"away"`
}

type cupRoundPayload struct {
	Number  int               `json:"number"`
	Round   int               `json:"round"`
	Matches []cupMatchPayload `json:"matches"`
}

func (r cupRoundPayload) number() int {
	if r.Number > 0 {
		return r.Number
	}
	return r.Round
}

// unwrapData tolerates the {"data": ...} envelope some endpoints add.
func unwrapData(raw []byte, target any) error {
	trimmed := bytes.TrimSpace(raw)
	var wrapped struct {
		Data sonicRaw `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err == nil && len(wrapped.Data) > 0 {
		return sonic.Unmarshal(wrapped.Data, target)
	}
	return sonic.Unmarshal(trimmed, target)
}

// sonicRaw defers decoding of a nested document.
type sonicRaw []byte

func (r *sonicRaw) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}
