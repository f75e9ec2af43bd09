package table

import (
	"strconv"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

// Column describes one output column of the shot table.
type Column struct {
	Name  string
	DType string
	// cell renders the value; ok is false for nulls.
	cell func(s model.ShotOnGoal) (v string, ok bool)
}

// columns follow the declared field order of model.ShotOnGoal.
var columns = []Column{
	{"eventId", "int64", func(s model.ShotOnGoal) (string, bool) { return i64(s.EventID), true }},
	{"homeTeamDefendingSide", "string", func(s model.ShotOnGoal) (string, bool) { return s.HomeTeamDefendingSide, true }},
	{"periodNumber", "int64", func(s model.ShotOnGoal) (string, bool) { return strconv.Itoa(s.PeriodNumber), true }},
	{"periodType", "string", func(s model.ShotOnGoal) (string, bool) { return s.PeriodType, true }},
	{"sortOrder", "int64", func(s model.ShotOnGoal) (string, bool) { return i64(s.SortOrder), true }},
	{"timeInPeriod", "int64", func(s model.ShotOnGoal) (string, bool) { return strconv.Itoa(s.TimeInPeriod), true }},
	{"timeRemaining", "int64", func(s model.ShotOnGoal) (string, bool) { return strconv.Itoa(s.TimeRemaining), true }},
	{"isGoal", "bool", func(s model.ShotOnGoal) (string, bool) { return strconv.FormatBool(s.IsGoal), true }},
	{"xCoord", "int64", func(s model.ShotOnGoal) (string, bool) { return intPtr(s.XCoord) }},
	{"yCoord", "int64", func(s model.ShotOnGoal) (string, bool) { return intPtr(s.YCoord) }},
	{"zoneCode", "string", func(s model.ShotOnGoal) (string, bool) { return strPtr(s.ZoneCode) }},
	{"shotType", "string", func(s model.ShotOnGoal) (string, bool) { return strPtr(s.ShotType) }},
	{"shootingPlayerId", "int64", func(s model.ShotOnGoal) (string, bool) { return i64Ptr(s.ShootingPlayerID) }},
	{"goalieInNetId", "int64", func(s model.ShotOnGoal) (string, bool) { return i64Ptr(s.GoalieInNetID) }},
	{"eventOwnerTeamId", "int64", func(s model.ShotOnGoal) (string, bool) { return i64(s.EventOwnerTeamID), true }},
	{"situationCode", "int64", func(s model.ShotOnGoal) (string, bool) { return intPtr(s.SituationCode) }},
	{"prevDescKey", "string", func(s model.ShotOnGoal) (string, bool) { return strPtr(s.PrevDescKey) }},
	{"prevTypeCode", "int64", func(s model.ShotOnGoal) (string, bool) { return intPtr(s.PrevTypeCode) }},
}

func i64(v int64) string { return strconv.FormatInt(v, 10) }

func intPtr(v *int) (string, bool) {
	if v == nil {
		return "", false
	}
	return strconv.Itoa(*v), true
}

func i64Ptr(v *int64) (string, bool) {
	if v == nil {
		return "", false
	}
	return i64(*v), true
}

func strPtr(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}
