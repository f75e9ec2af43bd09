package enrichment

import (
	"fmt"
	"sort"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/rawdata"
)

const (
	fieldPlays        = "plays"
	fieldSortOrder    = "sortOrder"
	fieldTypeDescKey  = "typeDescKey"
	fieldTypeCode     = "typeCode"
	fieldPrevDescKey  = "prevDescKey"
	fieldPrevTypeCode = "prevTypeCode"
)

// AddPrevPlayName stamps every play with the type of the play before it.
// The first play gets a null prevDescKey and prevTypeCode = model.NoPrevTypeCode.
type AddPrevPlayName struct{}

func (AddPrevPlayName) Name() string { return "AddPrevPlayName" }

func (AddPrevPlayName) Apply(raw model.RawGame) (model.RawGame, error) {
	out := make(model.RawGame, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	rawPlays, present := raw[fieldPlays]
	if !present || rawPlays == nil {
		return out, nil
	}
	list, ok := rawPlays.([]any)
	if !ok {
		return nil, fmt.Errorf("plays is %T, want array", rawPlays)
	}

	plays := make([]map[string]any, len(list))
	for i, item := range list {
		p, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("play %d is %T, want object", i, item)
		}
		plays[i] = p
	}

	enriched := make([]any, len(plays))
	prev := -1
	for _, idx := range chronological(plays) {
		p := make(map[string]any, len(plays[idx])+2)
		for k, v := range plays[idx] {
			p[k] = v
		}
		if prev < 0 {
			p[fieldPrevDescKey] = nil
			p[fieldPrevTypeCode] = model.NoPrevTypeCode
		} else {
			p[fieldPrevDescKey] = plays[prev][fieldTypeDescKey]
			p[fieldPrevTypeCode] = plays[prev][fieldTypeCode]
		}
		enriched[idx] = p
		prev = idx
	}
	out[fieldPlays] = enriched
	return out, nil
}

// chronological returns play indices ordered by sortOrder. When any play lacks a sortOrder
// the array order is used as is.
func chronological(plays []map[string]any) []int {
	idx := make([]int, len(plays))
	keys := make([]int64, len(plays))
	ordered := true
	for i, p := range plays {
		idx[i] = i
		k, ok := rawdata.Int64(p, fieldSortOrder)
		if !ok {
			ordered = false
		}
		keys[i] = k
	}
	if ordered {
		sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
	}
	return idx
}
