package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"wahu-store/internal/models"
)

func TestLevelForOrders(t *testing.T) {
	cases := []struct {
		orders int64
		level  string
	}{
		{0, models.LevelNewbie},
		{15, models.LevelNewbie},
		{16, models.LevelBronze},
		{63, models.LevelBronze},
		{64, models.LevelSilver},
		{255, models.LevelSilver},
		{256, models.LevelGold},
		{1023, models.LevelGold},
		{1024, models.LevelPlatinum},
		{4095, models.LevelPlatinum},
		{4096, models.LevelDiamond},
		{100000, models.LevelDiamond},
	}

	for _, tc := range cases {
		if got := LevelForOrders(tc.orders); got != tc.level {
			t.Errorf("LevelForOrders(%d) = %s, want %s", tc.orders, got, tc.level)
		}
	}
}

func TestLevelForOrdersMonotonic(t *testing.T) {
	rank := map[string]int{
		models.LevelNewbie:   0,
		models.LevelBronze:   1,
		models.LevelSilver:   2,
		models.LevelGold:     3,
		models.LevelPlatinum: 4,
		models.LevelDiamond:  5,
	}

	prev := rank[LevelForOrders(0)]
	for orders := int64(1); orders <= 5000; orders++ {
		cur := rank[LevelForOrders(orders)]
		if cur < prev {
			t.Fatalf("level dropped at %d orders", orders)
		}
		prev = cur
	}
}

func TestCommissionForLevel(t *testing.T) {
	cases := []struct {
		level string
		rate  int64
	}{
		{models.LevelNewbie, 16},
		{models.LevelBronze, 16},
		{models.LevelSilver, 24},
		{models.LevelGold, 36},
		{models.LevelPlatinum, 54},
		{models.LevelDiamond, 86},
	}

	for _, tc := range cases {
		if got := CommissionForLevel(tc.level); !got.Equal(decimal.NewFromInt(tc.rate)) {
			t.Errorf("CommissionForLevel(%s) = %s, want %d", tc.level, got, tc.rate)
		}
	}
}

func TestCommissionForLevelUnknown(t *testing.T) {
	lowest := decimal.NewFromInt(16)

	if got := CommissionForLevel(""); !got.Equal(lowest) {
		t.Errorf("CommissionForLevel(\"\") = %s, want %s", got, lowest)
	}
	if got := CommissionForLevel("Legendary"); !got.Equal(lowest) {
		t.Errorf("CommissionForLevel(Legendary) = %s, want %s", got, lowest)
	}
}
