// Package rawdata decodes upstream play-by-play documents and offers typed
// lookups over the untyped maps they decode into.
package rawdata

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

// ErrInvalidDocument is returned when the input is not a JSON object of game documents.
var ErrInvalidDocument = errors.New("invalid raw games document")

// ParseGames decodes a `{gameKey: gameDocument}` JSON object.
// Games keep the order their keys have in the document.
func ParseGames(data []byte) (model.RawGames, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidDocument)
	}
	return gamesFromResult(gjson.ParseBytes(data))
}

// ParseGamesField decodes the games object stored under path inside a larger document.
func ParseGamesField(data []byte, path string) (model.RawGames, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidDocument)
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, fmt.Errorf("%w: %q is missing", ErrInvalidDocument, path)
	}
	return gamesFromResult(res)
}

// ReadGamesFile reads and decodes a raw games file.
func ReadGamesFile(path string) (model.RawGames, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw games: %w", err)
	}
	return ParseGames(data)
}

func gamesFromResult(res gjson.Result) (model.RawGames, error) {
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object keyed by game", ErrInvalidDocument)
	}
	var (
		out    model.RawGames
		badKey string
	)
	res.ForEach(func(key, value gjson.Result) bool {
		doc, ok := value.Value().(map[string]any)
		if !ok {
			badKey = key.String()
			return false
		}
		out = append(out, model.RawGameEntry{Key: key.String(), Game: doc})
		return true
	})
	if badKey != "" {
		return nil, fmt.Errorf("%w: game %q is not an object", ErrInvalidDocument, badKey)
	}
	return out, nil
}
