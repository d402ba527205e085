package models

// Prediction labels derived from the NRFI probability thresholds
const (
	LabelNRFI   = "NRFI"
	LabelYRFI   = "YRFI"
	LabelTossUp = "Toss-up"
)

// PredictionRecord is the immutable per-game output of one pipeline run.
// A record is only created for games where both probable pitchers are known.
type PredictionRecord struct {
	GameID           int     `json:"game_id"`
	Matchup          string  `json:"matchup"`
	AwayPitcher      string  `json:"away_pitcher"`
	HomePitcher      string  `json:"home_pitcher"`
	AwayPitcherScore float64 `json:"away_pitcher_score"`
	HomePitcherScore float64 `json:"home_pitcher_score"`
	AwayHitterScore  float64 `json:"away_hitter_score"`
	HomeHitterScore  float64 `json:"home_hitter_score"`
	NRFIProbability  float64 `json:"nrfi_probability"`
	Prediction       string  `json:"prediction"`
}
