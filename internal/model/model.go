// Package model contains the entities the preprocessing pipeline passes between layers.
// I keep it lean and focused on data shapes; the only behavior is derived accessors.
package model

import "encoding/json"

// Play type keys that make a play eligible for the shot table.
const (
	TypeShotOnGoal = "shot-on-goal"
	TypeGoal       = "goal"
)

// NoPrevTypeCode marks the first play of a game, which has no predecessor.
const NoPrevTypeCode = -1

// RawGame is one undecoded per-game document as delivered by the upstream feed.
type RawGame = map[string]any

// RawGameEntry pairs a game key with its raw document.
type RawGameEntry struct {
	Key  string
	Game RawGame
}

// RawGames is an ordered batch of raw games. Output row order follows slice order.
type RawGames []RawGameEntry

// PeriodDescriptor names the period a play happened in.
type PeriodDescriptor struct {
	Number               *int    `json:"number,omitempty"`
	PeriodType           *string `json:"periodType,omitempty"`
	MaxRegulationPeriods *int    `json:"maxRegulationPeriods,omitempty"`
}

// Play is one normalized game event. Core fields are nil when the upstream record omits them.
type Play struct {
	EventID               *int64            `json:"eventId"`
	HomeTeamDefendingSide *string           `json:"homeTeamDefendingSide"`
	PeriodDescriptor      *PeriodDescriptor `json:"periodDescriptor"`
	SortOrder             *int64            `json:"sortOrder"`
	TimeInPeriod          *string           `json:"timeInPeriod"`
	TimeRemaining         *string           `json:"timeRemaining"`
	TypeCode              *int              `json:"typeCode"`
	TypeDescKey           *string           `json:"typeDescKey"`

	// Set by enrichments.
	PrevDescKey  *string `json:"prevDescKey"`
	PrevTypeCode *int    `json:"prevTypeCode"`

	// Other holds every upstream field outside the core schema, verbatim.
	Other map[string]any `json:"other"`
}

// Type returns the play's type key, or "" when it is unknown.
func (p Play) Type() string {
	if p.TypeDescKey == nil {
		return ""
	}
	return *p.TypeDescKey
}

// Game is one contest with its plays in load order.
type Game struct {
	Key      string         `json:"key"`
	HomeTeam map[string]any `json:"homeTeam"`
	AwayTeam map[string]any `json:"awayTeam"`
	Plays    []Play         `json:"plays"`
}

// HomeTeamID returns the home team's id and whether it was present.
func (g Game) HomeTeamID() (int64, bool) { return teamID(g.HomeTeam) }

// AwayTeamID returns the away team's id and whether it was present.
func (g Game) AwayTeamID() (int64, bool) { return teamID(g.AwayTeam) }

// Play returns the play at idx. Negative indices count from the end.
// Any idx with abs(idx) >= len(Plays) reports false instead of panicking.
func (g Game) Play(idx int) (Play, bool) {
	n := len(g.Plays)
	if idx >= n || -idx >= n {
		return Play{}, false
	}
	if idx < 0 {
		idx += n
	}
	return g.Plays[idx], true
}

// WithPlays returns a copy of g whose play sequence is replaced by plays.
func (g Game) WithPlays(plays []Play) Game {
	g.Plays = plays
	return g
}

func teamID(team map[string]any) (int64, bool) {
	if team == nil {
		return 0, false
	}
	switch v := team["id"].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

// ShotOnGoal is one flattened shot or goal, the unit row of the output table.
// Field order is the column order of the table.
type ShotOnGoal struct {
	EventID               int64   `json:"eventId"`
	HomeTeamDefendingSide string  `json:"homeTeamDefendingSide"`
	PeriodNumber          int     `json:"periodNumber"`
	PeriodType            string  `json:"periodType"`
	SortOrder             int64   `json:"sortOrder"`
	TimeInPeriod          int     `json:"timeInPeriod"`
	TimeRemaining         int     `json:"timeRemaining"`
	IsGoal                bool    `json:"isGoal"`
	XCoord                *int    `json:"xCoord"`
	YCoord                *int    `json:"yCoord"`
	ZoneCode              *string `json:"zoneCode"`
	ShotType              *string `json:"shotType"`
	ShootingPlayerID      *int64  `json:"shootingPlayerId"`
	GoalieInNetID         *int64  `json:"goalieInNetId"`
	EventOwnerTeamID      int64   `json:"eventOwnerTeamId"`
	SituationCode         *int    `json:"situationCode"`
	PrevDescKey           *string `json:"prevDescKey"`
	PrevTypeCode          *int    `json:"prevTypeCode"`
}

// GameShot is a ShotOnGoal tagged with the key of the game it came from.
type GameShot struct {
	GameKey string     `json:"gameKey"`
	Shot    ShotOnGoal `json:"shot"`
}
