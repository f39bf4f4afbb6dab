package rank

import (
	"errors"
	"reflect"
	"testing"

	"footscout/internal/derive"
	"footscout/internal/model"
)

func fv(v float64) *float64 { return &v }
func iv(v int) *int         { return &v }

// testTable builds a small scaled table by hand so scores are exact.
func testTable() *derive.Table {
	mk := func(name, league, pos string, age, minutes int, mv *float64, shooting, accuracy float64) derive.ScaledPlayer {
		return derive.ScaledPlayer{
			Player: model.Player{
				Name:        name,
				League:      league,
				Squad:       "Test FC",
				Position:    pos,
				Age:         age,
				Minutes:     minutes,
				MarketValue: mv,
			},
			Features: map[string]float64{
				"Shooting":         shooting,
				"Passing Accuracy": accuracy,
			},
		}
	}
	return &derive.Table{Players: []derive.ScaledPlayer{
		mk("Striker", "La Liga", "FW", 24, 2700, fv(80), 0.9, 0.1),
		mk("Allrounder", "La Liga", "MF", 29, 2500, fv(45), 0.5, 0.5),
		mk("Playmaker", "Premier League", "MF", 21, 1800, nil, 0.2, 0.9),
	}}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestTopPlayersExactOrder(t *testing.T) {
	table := testTable()
	params := Params{
		Weights: map[string]float64{"Shooting": 2, "Passing Accuracy": 1},
	}

	entries, err := TopPlayers(table, params)
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}

	wantOrder := []string{"Striker", "Allrounder", "Playmaker"}
	if got := names(entries); !reflect.DeepEqual(got, wantOrder) {
		t.Fatalf("order = %v, want %v", got, wantOrder)
	}
	wantScores := []float64{1.9, 1.5, 1.3}
	for i, e := range entries {
		if e.Score != wantScores[i] {
			t.Errorf("%s score = %v, want %v", e.Name, e.Score, wantScores[i])
		}
	}
}

func TestTopPlayersDeterministic(t *testing.T) {
	table := testTable()
	params := Params{Features: []string{"Shooting", "Passing Accuracy"}}

	first, err := TopPlayers(table, params)
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}
	second, err := TopPlayers(table, params)
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different rankings")
	}
}

func TestTopPlayersTieBreakByName(t *testing.T) {
	table := &derive.Table{Players: []derive.ScaledPlayer{
		{Player: model.Player{Name: "Zidane"}, Features: map[string]float64{"Shooting": 0.5}},
		{Player: model.Player{Name: "Adams"}, Features: map[string]float64{"Shooting": 0.5}},
	}}

	entries, err := TopPlayers(table, Params{Features: []string{"Shooting"}})
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}
	if got := names(entries); !reflect.DeepEqual(got, []string{"Adams", "Zidane"}) {
		t.Fatalf("tie order = %v, want alphabetical", got)
	}
}

func TestTopPlayersZeroWeights(t *testing.T) {
	table := testTable()
	params := Params{Weights: map[string]float64{"Shooting": 0, "Passing Accuracy": 0}}

	entries, err := TopPlayers(table, params)
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}
	// Every score is zero, so the name tie-break orders the whole result.
	if got := names(entries); !reflect.DeepEqual(got, []string{"Allrounder", "Playmaker", "Striker"}) {
		t.Fatalf("zero-weight order = %v, want alphabetical", got)
	}
	for _, e := range entries {
		if e.Score != 0 {
			t.Errorf("%s score = %v, want 0", e.Name, e.Score)
		}
	}
}

func TestTopPlayersNormalizeWeights(t *testing.T) {
	table := testTable()

	entries, err := TopPlayers(table, Params{
		Weights:          map[string]float64{"Shooting": 2, "Passing Accuracy": 2},
		NormalizeWeights: true,
	})
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}
	// Normalized equal weights: score is the feature mean.
	for _, e := range entries {
		if e.Name == "Allrounder" && e.Score != 0.5 {
			t.Errorf("Allrounder score = %v, want 0.5", e.Score)
		}
	}
}

func TestTopPlayersFiltersNarrow(t *testing.T) {
	table := testTable()
	base := Params{Features: []string{"Shooting"}}

	all, err := TopPlayers(table, base)
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}

	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{
			name:   "ByPosition",
			params: Params{Features: []string{"Shooting"}, Positions: []string{"MF"}},
			want:   []string{"Allrounder", "Playmaker"},
		},
		{
			name:   "ByLeague",
			params: Params{Features: []string{"Shooting"}, Leagues: []string{"la liga"}},
			want:   []string{"Striker", "Allrounder"},
		},
		{
			name:   "ByMaxAge",
			params: Params{Features: []string{"Shooting"}, MaxAge: iv(24)},
			want:   []string{"Striker", "Playmaker"},
		},
		{
			name:   "ByMinMinutes",
			params: Params{Features: []string{"Shooting"}, MinMinutes: iv(2000)},
			want:   []string{"Striker", "Allrounder"},
		},
		{
			name:   "NoMatch",
			params: Params{Features: []string{"Shooting"}, MinAge: iv(40)},
			want:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := TopPlayers(table, tc.params)
			if err != nil {
				t.Fatalf("TopPlayers: %v", err)
			}
			if len(entries) > len(all) {
				t.Fatalf("filter enlarged the candidate set: %d > %d", len(entries), len(all))
			}
			got := names(entries)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("result = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTopPlayersMissingMarketValuePassesMVFilter(t *testing.T) {
	table := testTable()

	entries, err := TopPlayers(table, Params{
		Features: []string{"Shooting"},
		MinMV:    fv(50),
		MaxMV:    fv(100),
	})
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}
	got := names(entries)
	// Striker (80 M€) is in range; Playmaker has no market value and is
	// kept; Allrounder (45 M€) is filtered out.
	if !reflect.DeepEqual(got, []string{"Striker", "Playmaker"}) {
		t.Fatalf("MV filter result = %v, want [Striker Playmaker]", got)
	}
	for _, e := range entries {
		if e.Name == "Playmaker" && e.MarketValueLabel != "unavailable" {
			t.Errorf("missing MV label = %q, want %q", e.MarketValueLabel, "unavailable")
		}
	}
}

func TestTopPlayersValidation(t *testing.T) {
	table := testTable()

	if _, err := TopPlayers(table, Params{Features: []string{"Dribbling Skillz"}}); !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("unknown feature error = %v, want ErrUnknownFeature", err)
	}
	if _, err := TopPlayers(table, Params{}); !errors.Is(err, ErrNoFeatures) {
		t.Errorf("no features error = %v, want ErrNoFeatures", err)
	}
}

func TestTopPlayersLimit(t *testing.T) {
	table := testTable()

	entries, err := TopPlayers(table, Params{N: 2, Features: []string{"Shooting"}})
	if err != nil {
		t.Fatalf("TopPlayers: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
}
