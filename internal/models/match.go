package models

// PlayerKey is a normalized player identifier. Two raw spellings that
// normalize to the same key are treated as the same player; the compaction to
// "<initial>. <surname>" is lossy on purpose so that the fixture feed and the
// odds feed agree despite formatting drift.
type PlayerKey string

// IsEmpty reports whether the key carries no identity
func (k PlayerKey) IsEmpty() bool {
	return k == ""
}

// Fixture represents a scheduled match from the fixtures provider, no odds attached
type Fixture struct {
	Player1    string  `json:"player1"`
	Player2    string  `json:"player2"`
	Surface    Surface `json:"surface"`
	Tournament string  `json:"tournament"`
}

// OddsQuote represents a single bookmaker's decimal prices for a match.
// Only the first available bookmaker is kept; there is no aggregation
// across books.
type OddsQuote struct {
	Player1   string  `json:"player1"`
	Player2   string  `json:"player2"`
	Price1    float64 `json:"price1"`
	Price2    float64 `json:"price2"`
	Bookmaker string  `json:"bookmaker,omitempty"`
}

// MatchedMarket is a fixture joined with its odds quote. Constructed fresh
// each run, never persisted.
type MatchedMarket struct {
	Key1       PlayerKey
	Key2       PlayerKey
	Player1    string
	Player2    string
	Surface    Surface
	Tournament string
	Price1     float64
	Price2     float64
}

// MatchResult represents a finished match from the results provider
type MatchResult struct {
	Player1    string  `json:"player1"`
	Player2    string  `json:"player2"`
	Surface    Surface `json:"surface"`
	Winner     string  `json:"winner"`
	Tournament string  `json:"tournament"`
}
