package shot

import (
	"fmt"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/rawdata"
)

// Keys read from Play.Other.
const (
	keyDetails          = "details"
	keySituationCode    = "situationCode"
	keyXCoord           = "xCoord"
	keyYCoord           = "yCoord"
	keyZoneCode         = "zoneCode"
	keyShotType         = "shotType"
	keyShootingPlayerID = "shootingPlayerId"
	keyScoringPlayerID  = "scoringPlayerId"
	keyGoalieInNetID    = "goalieInNetId"
	keyEventOwnerTeamID = "eventOwnerTeamId"
)

// Project flattens an eligible play into a ShotOnGoal.
//
// Shot details that the feed omits come back as nil. eventOwnerTeamId is required because
// every shot and goal is attributed to a team; the identity and clock fields are required too.
func Project(play model.Play) (model.ShotOnGoal, error) {
	if !IsEligible(play) {
		return model.ShotOnGoal{}, fmt.Errorf("%w: type %q", ErrNotShotEligible, play.Type())
	}
	if play.EventID == nil {
		return model.ShotOnGoal{}, missing("eventId")
	}
	if play.SortOrder == nil {
		return model.ShotOnGoal{}, missing("sortOrder")
	}
	if play.PeriodDescriptor == nil || play.PeriodDescriptor.Number == nil {
		return model.ShotOnGoal{}, missing("periodDescriptor.number")
	}
	if play.TimeInPeriod == nil {
		return model.ShotOnGoal{}, missing("timeInPeriod")
	}
	if play.TimeRemaining == nil {
		return model.ShotOnGoal{}, missing("timeRemaining")
	}

	inPeriod, err := ParseClock(*play.TimeInPeriod)
	if err != nil {
		return model.ShotOnGoal{}, fmt.Errorf("timeInPeriod: %w", err)
	}
	remaining, err := ParseClock(*play.TimeRemaining)
	if err != nil {
		return model.ShotOnGoal{}, fmt.Errorf("timeRemaining: %w", err)
	}

	// a nil details map reads as empty
	details, _ := rawdata.Map(play.Other, keyDetails)
	owner, ok := rawdata.Int64(details, keyEventOwnerTeamID)
	if !ok {
		return model.ShotOnGoal{}, missing("details.eventOwnerTeamId")
	}

	shooter := rawdata.Int64Ptr(details, keyShootingPlayerID)
	if shooter == nil {
		shooter = rawdata.Int64Ptr(details, keyScoringPlayerID)
	}

	sog := model.ShotOnGoal{
		EventID:          *play.EventID,
		PeriodNumber:     *play.PeriodDescriptor.Number,
		SortOrder:        *play.SortOrder,
		TimeInPeriod:     inPeriod,
		TimeRemaining:    remaining,
		IsGoal:           play.Type() == model.TypeGoal,
		XCoord:           rawdata.IntPtr(details, keyXCoord),
		YCoord:           rawdata.IntPtr(details, keyYCoord),
		ZoneCode:         rawdata.StringPtr(details, keyZoneCode),
		ShotType:         rawdata.StringPtr(details, keyShotType),
		ShootingPlayerID: shooter,
		GoalieInNetID:    rawdata.Int64Ptr(details, keyGoalieInNetID),
		EventOwnerTeamID: owner,
		SituationCode:    rawdata.IntPtr(play.Other, keySituationCode),
		PrevDescKey:      play.PrevDescKey,
		PrevTypeCode:     play.PrevTypeCode,
	}
	if play.HomeTeamDefendingSide != nil {
		sog.HomeTeamDefendingSide = *play.HomeTeamDefendingSide
	}
	if play.PeriodDescriptor.PeriodType != nil {
		sog.PeriodType = *play.PeriodDescriptor.PeriodType
	}
	return sog, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
