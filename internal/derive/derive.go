// Package derive builds the scaled feature table the ranking and radar
// operations run on.
//
// Scaling policy (fixed so results are reproducible): every raw metric is
// min-max scaled to [0,1] across the FULL dataset, negative-impact metrics
// (cards, errors, own goals, fouls, penalties conceded) are inverted so that
// higher is always better, and each composite feature is the mean of its
// scaled metrics. A metric that is constant across the dataset scales to a
// neutral 0.5.
package derive

import (
	"errors"
	"os"
	"sort"
	"strings"

	"footscout/internal/model"
	"footscout/internal/store"
)

const tableArtifact = "scaled/table.json"

// ScaledPlayer is a dataset row plus its composite feature values in [0,1].
type ScaledPlayer struct {
	model.Player
	Features map[string]float64 `json:"features"`
}

// Table is the immutable scaled dataset. Row order matches the source file.
type Table struct {
	Players []ScaledPlayer `json:"players"`
}

// Build computes the scaled table from raw dataset rows. Deterministic:
// the same input always yields the same table.
func Build(players []model.Player) *Table {
	metrics := metricColumns()

	type minmax struct{ lo, hi float64 }
	bounds := make(map[string]minmax, len(metrics))
	for _, m := range metrics {
		lo, hi := 0.0, 0.0
		for i, p := range players {
			v := p.Metrics[m] // missing metric counts as 0
			if i == 0 || v < lo {
				lo = v
			}
			if i == 0 || v > hi {
				hi = v
			}
		}
		bounds[m] = minmax{lo: lo, hi: hi}
	}

	scale := func(m string, v float64) float64 {
		b := bounds[m]
		var s float64
		if b.hi == b.lo {
			s = 0.5
		} else {
			s = (v - b.lo) / (b.hi - b.lo)
		}
		if model.NegativeMetrics[m] {
			s = 1 - s
		}
		return s
	}

	t := &Table{Players: make([]ScaledPlayer, 0, len(players))}
	for _, p := range players {
		feats := make(map[string]float64, len(model.FeatureMap))
		for name, cols := range model.FeatureMap {
			sum := 0.0
			for _, m := range cols {
				sum += scale(m, p.Metrics[m])
			}
			feats[name] = sum / float64(len(cols))
		}
		t.Players = append(t.Players, ScaledPlayer{Player: p, Features: feats})
	}
	return t
}

// LoadOrBuild returns the scaled table for players, reusing the derived
// artifact when present and rebuilding it otherwise. A nil store always
// builds in memory.
func LoadOrBuild(st *store.JSONStore, players []model.Player) (*Table, error) {
	if st == nil {
		return Build(players), nil
	}
	var cached Table
	err := st.ReadJSON(tableArtifact, &cached)
	if err == nil && len(cached.Players) == len(players) {
		return &cached, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	t := Build(players)
	if err := st.WriteJSON(tableArtifact, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Find returns the row for a player by exact, case-insensitive name.
func (t *Table) Find(name string) (*ScaledPlayer, bool) {
	for i := range t.Players {
		if strings.EqualFold(t.Players[i].Name, name) {
			return &t.Players[i], true
		}
	}
	return nil, false
}

// Leagues returns the distinct league names in the dataset, sorted.
func (t *Table) Leagues() []string {
	seen := make(map[string]bool)
	for i := range t.Players {
		if l := t.Players[i].League; l != "" {
			seen[l] = true
		}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func metricColumns() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range model.FeatureNames {
		for _, m := range model.FeatureMap[name] {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
