package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"footscout/internal/model"
)

// Standard dataset columns. Everything else in the header is treated as a
// numeric metric column.
const (
	colPlayer   = "Player"
	colNation   = "Nation"
	colLeague   = "League"
	colSquad    = "Squad"
	colPosition = "Position"
	colAge      = "Age"
	colMatches  = "Matches"
	colMinutes  = "Minutes"
	colGoals    = "Goals"
	colAssists  = "Assists"
	colMV       = "Market Value (M€)"
)

// LoadCSV reads the season dataset from a flat CSV file. The file is the
// source of truth; records are returned in file order and never reloaded.
func LoadCSV(path string) ([]model.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV parses dataset rows from r. The first record is the header.
func ParseCSV(r io.Reader) ([]model.Player, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	if _, ok := idx[colPlayer]; !ok {
		return nil, fmt.Errorf("dataset missing %q column", colPlayer)
	}

	standard := map[string]bool{
		colPlayer: true, colNation: true, colLeague: true, colSquad: true,
		colPosition: true, colAge: true, colMatches: true, colMinutes: true,
		colGoals: true, colAssists: true, colMV: true,
	}

	var players []model.Player
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		p := model.Player{
			Name:     field(colPlayer),
			Nation:   field(colNation),
			League:   field(colLeague),
			Squad:    field(colSquad),
			Position: field(colPosition),
			Age:      parseInt(field(colAge)),
			Matches:  parseInt(field(colMatches)),
			Minutes:  parseInt(field(colMinutes)),
			Goals:    parseInt(field(colGoals)),
			Assists:  parseInt(field(colAssists)),
			Metrics:  make(map[string]float64),
		}
		if p.Name == "" {
			continue
		}
		if mv, ok := parseFloat(field(colMV)); ok {
			v := mv
			p.MarketValue = &v
		}
		for name, i := range idx {
			if standard[name] || i >= len(rec) {
				continue
			}
			if v, ok := parseFloat(strings.TrimSpace(rec[i])); ok {
				p.Metrics[name] = v
			}
		}
		players = append(players, p)
	}
	return players, nil
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		// some sources export ages like "23.0"
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return v
}

// parseFloat reports false for blank and placeholder values so callers can
// distinguish "missing" from zero.
func parseFloat(s string) (float64, bool) {
	if s == "" || s == "N/A" || s == "NA" || s == "NaN" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
