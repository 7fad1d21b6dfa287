package config

import (
	"github.com/spf13/viper"
)

// Config holds the application configuration. Buffer distance and rarity
// thresholds are deliberately configuration with documented defaults, not
// hard-coded business rules.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// MatchBufferM is the maximum distance in meters between a property and
	// the nearest route segment for it to count as a match.
	MatchBufferM float64
	// GridCellM is the spatial index cell edge in meters; it should be at
	// least the typical query radius.
	GridCellM float64

	// Rarity price thresholds, ascending. price >= RarityLegendary wins.
	RarityRare      float64
	RarityEpic      float64
	RarityLegendary float64

	// Rate limit for the public API group.
	RateLimitPerMin int
}

// Load reads configuration from environment variables with defaults suitable
// for local development.
func Load() *Config {
	v := viper.New()
	v.SetDefault("PORT", ":8080")
	v.SetDefault("DB_PATH", "./data/scout.db")
	v.SetDefault("JWT_SECRET", "dev-secret-change-in-production")
	v.SetDefault("MATCH_BUFFER_M", 150.0)
	v.SetDefault("GRID_CELL_M", 500.0)
	v.SetDefault("RARITY_RARE", 500_000.0)
	v.SetDefault("RARITY_EPIC", 1_000_000.0)
	v.SetDefault("RARITY_LEGENDARY", 2_000_000.0)
	v.SetDefault("RATE_LIMIT_PER_MIN", 240)
	v.AutomaticEnv()

	return &Config{
		Port:            v.GetString("PORT"),
		DBPath:          v.GetString("DB_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		MatchBufferM:    v.GetFloat64("MATCH_BUFFER_M"),
		GridCellM:       v.GetFloat64("GRID_CELL_M"),
		RarityRare:      v.GetFloat64("RARITY_RARE"),
		RarityEpic:      v.GetFloat64("RARITY_EPIC"),
		RarityLegendary: v.GetFloat64("RARITY_LEGENDARY"),
		RateLimitPerMin: v.GetInt("RATE_LIMIT_PER_MIN"),
	}
}
