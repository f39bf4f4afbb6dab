package model

// Player is one row of the season dataset. The dataset is read-only for the
// lifetime of the process; records are never mutated after load.
type Player struct {
	Name     string  `json:"name"`
	Nation   string  `json:"nation,omitempty"`
	League   string  `json:"league"`
	Squad    string  `json:"squad"`
	Position string  `json:"position"`
	Age      int     `json:"age"`
	Matches  int     `json:"matches"`
	Minutes  int     `json:"minutes"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`

	// MarketValue is in millions of euros. nil means the value could not be
	// sourced for this player; operations must treat that as "unavailable"
	// rather than an error.
	MarketValue *float64 `json:"market_value,omitempty"`

	// Metrics holds the raw per-90 and percentage statistics keyed by
	// dataset column name (e.g. "Goals_90m", "Short Cmp%").
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// MarketValueLabel renders the market value for display. Missing values show
// as "unavailable" so a ranking never fails on a scraping gap upstream.
func (p *Player) MarketValueLabel() string {
	if p.MarketValue == nil {
		return "unavailable"
	}
	return formatMV(*p.MarketValue)
}
