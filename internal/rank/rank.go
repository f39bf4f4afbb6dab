// Package rank scores and orders players by a weighted sum of composite
// features, subject to scouting filters.
package rank

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"footscout/internal/derive"
	"footscout/internal/model"
)

var (
	// ErrUnknownFeature flags a feature name outside the 12 composites.
	ErrUnknownFeature = errors.New("unknown feature")
	// ErrNoFeatures flags a request with nothing to score on.
	ErrNoFeatures = errors.New("no features selected")
)

const defaultN = 10

// Params are the ranking criteria. They are transient: built per request,
// never stored.
type Params struct {
	// N caps the result size (default 10).
	N int

	// Features selects the composite features to score on. When Weights is
	// empty every selected feature gets equal weight.
	Features []string
	Weights  map[string]float64

	// NormalizeWeights rescales weights to sum to 1 before scoring.
	NormalizeWeights bool

	Positions []string
	Leagues   []string

	MinAge     *int
	MaxAge     *int
	MinMinutes *int
	MaxMinutes *int

	// Market value bounds in M€. Players with no market value pass the
	// bounds regardless, so scraper gaps never hide a player.
	MinMV *float64
	MaxMV *float64
}

// Entry is one ranked player.
type Entry struct {
	Name             string             `json:"name"`
	Nation           string             `json:"nation,omitempty"`
	League           string             `json:"league"`
	Squad            string             `json:"squad"`
	Position         string             `json:"position"`
	Age              int                `json:"age"`
	Matches          int                `json:"matches"`
	Minutes          int                `json:"minutes"`
	Goals            int                `json:"goals"`
	Assists          int                `json:"assists"`
	MarketValue      *float64           `json:"market_value,omitempty"`
	MarketValueLabel string             `json:"market_value_label"`
	Score            float64            `json:"score"`
	Features         map[string]float64 `json:"features"`
}

// TopPlayers ranks the table by weighted score, descending, ties broken by
// player name. Identical inputs always produce the identical order.
//
// All-zero weights are legal: every score is 0 and the usual tie-break
// applies, so the output is ordered by player name.
func TopPlayers(t *derive.Table, p Params) ([]Entry, error) {
	features := p.Features
	if len(features) == 0 && len(p.Weights) > 0 {
		for f := range p.Weights {
			features = append(features, f)
		}
		sort.Strings(features)
	}
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	for _, f := range features {
		if !model.ValidFeature(f) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
		}
	}

	weights := make(map[string]float64, len(features))
	for _, f := range features {
		if len(p.Weights) == 0 {
			weights[f] = 1
		} else {
			weights[f] = p.Weights[f]
		}
	}
	if p.NormalizeWeights {
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if sum != 0 {
			for f := range weights {
				weights[f] /= sum
			}
		}
	}

	n := p.N
	if n <= 0 {
		n = defaultN
	}

	entries := make([]Entry, 0, len(t.Players))
	for i := range t.Players {
		sp := &t.Players[i]
		if !matches(sp, p) {
			continue
		}
		score := 0.0
		feats := make(map[string]float64, len(features))
		for _, f := range features {
			v := sp.Features[f]
			feats[f] = round3(v)
			score += weights[f] * v
		}
		entries = append(entries, Entry{
			Name:             sp.Name,
			Nation:           sp.Nation,
			League:           sp.League,
			Squad:            sp.Squad,
			Position:         sp.Position,
			Age:              sp.Age,
			Matches:          sp.Matches,
			Minutes:          sp.Minutes,
			Goals:            sp.Goals,
			Assists:          sp.Assists,
			MarketValue:      sp.MarketValue,
			MarketValueLabel: sp.MarketValueLabel(),
			Score:            round3(score),
			Features:         feats,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func matches(sp *derive.ScaledPlayer, p Params) bool {
	if len(p.Positions) > 0 && !containsFold(p.Positions, sp.Position) {
		return false
	}
	if len(p.Leagues) > 0 && !containsFold(p.Leagues, sp.League) {
		return false
	}
	if p.MinAge != nil && sp.Age < *p.MinAge {
		return false
	}
	if p.MaxAge != nil && sp.Age > *p.MaxAge {
		return false
	}
	if p.MinMinutes != nil && sp.Minutes < *p.MinMinutes {
		return false
	}
	if p.MaxMinutes != nil && sp.Minutes > *p.MaxMinutes {
		return false
	}
	if sp.MarketValue != nil {
		if p.MinMV != nil && *sp.MarketValue < *p.MinMV {
			return false
		}
		if p.MaxMV != nil && *sp.MarketValue > *p.MaxMV {
			return false
		}
	}
	return true
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
