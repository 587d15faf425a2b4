package config

import "time"

// GameConfig identifies the game and vessel every request acts on
type GameConfig struct {
	GameID int `mapstructure:"game_id" validate:"required,min=1"`
	ShipID int `mapstructure:"ship_id" validate:"required,min=1"`
}

// LookupConfig tunes the destination type-ahead
type LookupConfig struct {
	// Quiet period after the last keystroke before a search is sent
	Debounce time.Duration `mapstructure:"debounce" validate:"required"`

	// Shortest query that triggers a search
	MinQueryLength int `mapstructure:"min_query_length" validate:"min=1"`
}
