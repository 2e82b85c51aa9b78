package analytics

import (
	"testing"

	"StarSpin/internal/domain/models"
)

func TestRankPeaksEmpty(t *testing.T) {
	primary, secondary := RankPeaks(nil)
	if primary != nil || secondary != nil {
		t.Fatalf("expected nil/nil for empty input")
	}
}

func TestRankPeaksSingle(t *testing.T) {
	primary, secondary := RankPeaks([]models.Peak{{Period: 3, Power: 1}})
	if primary == nil || primary.Period != 3 {
		t.Fatalf("expected primary (3,1), got %v", primary)
	}
	if secondary != nil {
		t.Fatalf("expected nil secondary, got %v", secondary)
	}
}

func TestRankPeaksTwo(t *testing.T) {
	primary, secondary := RankPeaks([]models.Peak{
		{Period: 10, Power: 4},
		{Period: 5, Power: 9},
	})
	if primary.Period != 5 || primary.Power != 9 {
		t.Fatalf("wrong primary: %v", primary)
	}
	if secondary.Period != 10 || secondary.Power != 4 {
		t.Fatalf("wrong secondary: %v", secondary)
	}
}

func TestRankPeaksTiesBreakByIndex(t *testing.T) {
	primary, secondary := RankPeaks([]models.Peak{
		{Period: 1, Power: 7},
		{Period: 2, Power: 7},
		{Period: 3, Power: 7},
	})
	if primary.Period != 1 {
		t.Fatalf("primary tie must break to first index, got %v", primary)
	}
	if secondary.Period != 2 {
		t.Fatalf("secondary tie must break to first remaining index, got %v", secondary)
	}
}

func TestRankPeaksPrimaryNeverWeaker(t *testing.T) {
	cases := [][]models.Peak{
		{{Period: 1, Power: 0.2}, {Period: 2, Power: 0.9}, {Period: 3, Power: 0.5}},
		{{Period: 1, Power: 5}, {Period: 2, Power: 5}},
		{{Period: 1, Power: 0.1}, {Period: 2, Power: 0.1}, {Period: 3, Power: 0.3}, {Period: 4, Power: 0.2}},
	}
	for _, peaks := range cases {
		primary, secondary := RankPeaks(peaks)
		if primary == nil || secondary == nil {
			t.Fatalf("expected both peaks for %v", peaks)
		}
		if secondary.Power > primary.Power {
			t.Fatalf("secondary %v stronger than primary %v", secondary, primary)
		}
	}
}
