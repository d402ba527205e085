package models

import "fmt"

// Game represents one scheduled MLB game for a given date
type Game struct {
	GameID int    `json:"game_id"`
	Away   string `json:"away"`
	Home   string `json:"home"`
	HomeID int    `json:"home_id"`
	AwayID int    `json:"away_id"`
}

// Matchup returns the display matchup string, away team first
func (g Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.Away, g.Home)
}

// PitcherAssignment holds the probable starting pitchers for a game.
// Either side's ID may be nil when the pitcher has not been announced.
type PitcherAssignment struct {
	HomeID   *int   `json:"home_id"`
	AwayID   *int   `json:"away_id"`
	HomeName string `json:"home_name"`
	AwayName string `json:"away_name"`
}

// Complete reports whether both probable pitchers are known
func (p PitcherAssignment) Complete() bool {
	return p.HomeID != nil && p.AwayID != nil
}
