package loader

import (
	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

// Loader materializes raw games into entities. Load returns the games built by that call;
// implementations may keep earlier batches around as well.
type Loader interface {
	Load(raw model.RawGames) ([]model.Game, error)
}

// PbPDataLoader is the play-by-play loader. Every Load call appends to its buffer.
// It is not safe for concurrent use.
type PbPDataLoader struct {
	games []model.Game
}

// NewPbPDataLoader returns an empty loader.
func NewPbPDataLoader() *PbPDataLoader { return &PbPDataLoader{} }

// Load converts raw in order and appends the result. A malformed game aborts the batch
// and leaves the buffer unchanged.
func (l *PbPDataLoader) Load(raw model.RawGames) ([]model.Game, error) {
	batch := make([]model.Game, 0, len(raw))
	for _, entry := range raw {
		g, err := LoadGame(entry.Key, entry.Game)
		if err != nil {
			return nil, err
		}
		batch = append(batch, g)
	}
	l.games = append(l.games, batch...)
	return batch, nil
}

// Len is the number of games loaded so far.
func (l *PbPDataLoader) Len() int { return len(l.games) }

// At returns the game at idx with the same negative-index rules as model.Game.Play.
func (l *PbPDataLoader) At(idx int) (model.Game, bool) {
	n := len(l.games)
	if idx >= n || -idx >= n {
		return model.Game{}, false
	}
	if idx < 0 {
		idx += n
	}
	return l.games[idx], true
}

// Games returns a copy of every game loaded so far.
func (l *PbPDataLoader) Games() []model.Game {
	out := make([]model.Game, len(l.games))
	copy(out, l.games)
	return out
}

var _ Loader = (*PbPDataLoader)(nil)
