package services

import (
	"github.com/shopspring/decimal"

	"wahu-store/internal/models"
)

// LevelThreshold maps a minimum lifetime order count to a level
type LevelThreshold struct {
	MinOrders int64
	Level     string
}

// LevelThresholds defines the leveling ladder, highest first
var LevelThresholds = []LevelThreshold{
	{4096, models.LevelDiamond},
	{1024, models.LevelPlatinum},
	{256, models.LevelGold},
	{64, models.LevelSilver},
	{16, models.LevelBronze},
	{0, models.LevelNewbie},
}

// commissionRates is the flat per-item commission for each level
var commissionRates = map[string]decimal.Decimal{
	models.LevelNewbie:   decimal.NewFromInt(16),
	models.LevelBronze:   decimal.NewFromInt(16),
	models.LevelSilver:   decimal.NewFromInt(24),
	models.LevelGold:     decimal.NewFromInt(36),
	models.LevelPlatinum: decimal.NewFromInt(54),
	models.LevelDiamond:  decimal.NewFromInt(86),
}

// LevelForOrders returns the affiliate level for a lifetime order count
func LevelForOrders(orders int64) string {
	for _, t := range LevelThresholds {
		if orders >= t.MinOrders {
			return t.Level
		}
	}
	return models.LevelNewbie
}

// CommissionForLevel returns the flat per-item commission for a level.
// Unknown or empty levels fall back to the lowest rate so historic
// orders carrying stale level names still resolve.
func CommissionForLevel(level string) decimal.Decimal {
	if rate, ok := commissionRates[level]; ok {
		return rate
	}
	return commissionRates[models.LevelNewbie]
}
