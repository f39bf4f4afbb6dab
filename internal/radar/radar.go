// Package radar builds the multi-axis comparison data behind the radar
// chart: one polygon of composite feature values per selected player.
//
// Axis values come straight from the scaled table, which is normalized
// min-max per metric across the FULL dataset. Selecting a different subset
// of players therefore never changes axis scaling, and repeated calls with
// the same inputs return identical data.
package radar

import (
	"errors"
	"fmt"

	"footscout/internal/derive"
	"footscout/internal/model"
)

const maxPlayers = 5

var (
	// ErrNoPlayers means none of the requested names resolved.
	ErrNoPlayers = errors.New("none of the requested players were found")
	// ErrTooManyPlayers caps a comparison at five polygons.
	ErrTooManyPlayers = fmt.Errorf("at most %d players per comparison", maxPlayers)
)

// Polygon is one player's values along the feature axes, in axis order.
type Polygon struct {
	Player           string    `json:"player"`
	Age              int       `json:"age"`
	Squad            string    `json:"squad"`
	MarketValue      *float64  `json:"market_value,omitempty"`
	MarketValueLabel string    `json:"market_value_label"`
	Values           []float64 `json:"values"`
}

// Chart is the comparison structure consumed by renderers and API clients.
type Chart struct {
	Features []string  `json:"features"`
	Polygons []Polygon `json:"polygons"`
	// Missing lists requested names that are not in the dataset. A partial
	// match is still a usable chart.
	Missing []string `json:"missing,omitempty"`
}

// Build assembles the radar data for the named players over the selected
// features (all 12 when features is empty).
func Build(t *derive.Table, players []string, features []string) (*Chart, error) {
	if len(players) == 0 {
		return nil, errors.New("provide at least one player name")
	}
	if len(players) > maxPlayers {
		return nil, ErrTooManyPlayers
	}
	if len(features) == 0 {
		features = model.FeatureNames
	}
	for _, f := range features {
		if !model.ValidFeature(f) {
			return nil, fmt.Errorf("unknown feature: %q", f)
		}
	}

	c := &Chart{Features: features}
	for _, name := range players {
		sp, ok := t.Find(name)
		if !ok {
			c.Missing = append(c.Missing, name)
			continue
		}
		vals := make([]float64, len(features))
		for i, f := range features {
			vals[i] = sp.Features[f]
		}
		c.Polygons = append(c.Polygons, Polygon{
			Player:           sp.Name,
			Age:              sp.Age,
			Squad:            sp.Squad,
			MarketValue:      sp.MarketValue,
			MarketValueLabel: sp.MarketValueLabel(),
			Values:           vals,
		})
	}
	if len(c.Polygons) == 0 {
		return nil, ErrNoPlayers
	}
	return c, nil
}
