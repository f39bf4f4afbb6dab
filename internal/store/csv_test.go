package store

import (
	"strings"
	"testing"
)

const sampleCSV = `Player,Nation,League,Squad,Position,Age,Matches,Minutes,Goals,Assists,Market Value (M€),Goals_90m,Shoots_90m,Yellow Cards_90m
Lamine Torres,ESP,La Liga,Real Test,FW,19,30,2410,17,5,90.0,0.63,3.1,0.11
Jonas Keller,GER,Bundesliga,FC Probe,MF,27.0,28,2333,6,9,,0.23,1.4,0.19
,,,,,,,,,,,,,
Marco Vitale,ITA,Serie A,AC Esempio,DF,31,33,2970,1,0,N/A,0.03,,0.3
`

func TestParseCSV(t *testing.T) {
	players, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("parsed %d players, want 3 (blank row skipped)", len(players))
	}

	p := players[0]
	if p.Name != "Lamine Torres" || p.League != "La Liga" || p.Position != "FW" {
		t.Errorf("unexpected first player: %+v", p)
	}
	if p.Age != 19 || p.Minutes != 2410 || p.Goals != 17 {
		t.Errorf("numeric fields wrong: age=%d minutes=%d goals=%d", p.Age, p.Minutes, p.Goals)
	}
	if p.MarketValue == nil || *p.MarketValue != 90.0 {
		t.Errorf("market value = %v, want 90.0", p.MarketValue)
	}
	if got := p.Metrics["Goals_90m"]; got != 0.63 {
		t.Errorf("Goals_90m = %v, want 0.63", got)
	}
}

func TestParseCSVMissingValues(t *testing.T) {
	players, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	// Fractional age exports are truncated.
	if players[1].Age != 27 {
		t.Errorf("age = %d, want 27", players[1].Age)
	}
	// Blank and N/A market values stay nil instead of becoming zero.
	if players[1].MarketValue != nil {
		t.Errorf("blank MV parsed as %v, want nil", *players[1].MarketValue)
	}
	if players[2].MarketValue != nil {
		t.Errorf("N/A MV parsed as %v, want nil", *players[2].MarketValue)
	}
	if players[2].MarketValueLabel() != "unavailable" {
		t.Errorf("missing MV label = %q, want %q", players[2].MarketValueLabel(), "unavailable")
	}
	// A blank metric cell is simply absent from the map.
	if _, ok := players[2].Metrics["Shoots_90m"]; ok {
		t.Error("blank metric cell should not be recorded")
	}
}

func TestParseCSVMissingPlayerColumn(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("Nope,Columns\n1,2\n")); err == nil {
		t.Fatal("header without Player column should error")
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV("testdata/does-not-exist.csv"); err == nil {
		t.Fatal("missing dataset file should error")
	}
}
