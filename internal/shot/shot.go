// Package shot filters plays down to shots and goals and flattens them into
// model.ShotOnGoal rows.
package shot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

var (
	// ErrNotShotEligible means Project was called on a play that is neither a shot nor a goal.
	// Callers are expected to filter first, so this is a programming error.
	ErrNotShotEligible = errors.New("play is not a shot on goal")
	// ErrMissingField means a field the shot row cannot do without is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidClock means a clock string is not MM:SS.
	ErrInvalidClock = errors.New("invalid clock")
)

// IsEligible reports whether play is a shot on goal or a goal.
func IsEligible(play model.Play) bool {
	switch play.Type() {
	case model.TypeShotOnGoal, model.TypeGoal:
		return true
	default:
		return false
	}
}

// FilterShots returns a copy of game holding only eligible plays, in their original order.
// game itself is left untouched.
func FilterShots(game model.Game) model.Game {
	return game.WithPlays(lo.Filter(game.Plays, func(p model.Play, _ int) bool { return IsEligible(p) }))
}

// ParseClock converts an "MM:SS" clock to seconds.
func ParseClock(clock string) (int, error) {
	mm, ss, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	minutes, err1 := strconv.Atoi(mm)
	seconds, err2 := strconv.Atoi(ss)
	if err1 != nil || err2 != nil || minutes < 0 || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return 60*minutes + seconds, nil
}
