package outfit

import (
	"strings"
	"testing"
)

func TestLadderRecommend_Boundaries(t *testing.T) {
	ladder := DefaultLadder()

	cases := []struct {
		temp int
		want string
	}{
		{25, "Singlet and shorts"},
		{20, "Singlet and shorts"},
		{19, "Short-sleeve tee and shorts"},
		{15, "Short-sleeve tee and shorts"},
		{10, "Short or long sleeve tee, shorts or capri tights"},
		{5, "Long-sleeve tee, leggings, light windbreaker or vest"},
		{0, "Thermal top, leggings, windbreaker, gloves, ear warmers"},
		{-1, "Thermal base layer, fleece top and bottom, windproof jacket, full winter kit"},
		{-7, "Thermal base layer, fleece top and bottom, windproof jacket, full winter kit"},
	}
	for _, c := range cases {
		if got := ladder.Recommend(c.temp); got != c.want {
			t.Errorf("Recommend(%d) = %q, want %q", c.temp, got, c.want)
		}
	}
}

func TestLadderRecommend_BelowAllThresholds(t *testing.T) {
	ladder := DefaultLadder()
	if got := ladder.Recommend(-30); !strings.Contains(got, "Indoor") {
		t.Errorf("Recommend(-30) = %q, want indoor advisory", got)
	}
}

func TestLadderRecommend_EveryTempResolves(t *testing.T) {
	ladder := DefaultLadder()
	for temp := -50; temp <= 50; temp++ {
		if ladder.Recommend(temp) == "" {
			t.Fatalf("Recommend(%d) returned empty label", temp)
		}
	}
}

func TestNewLadder_Validation(t *testing.T) {
	if _, err := NewLadder(nil); err == nil {
		t.Error("NewLadder(nil) succeeded, want error")
	}
	if _, err := NewLadder([]LadderEntry{{MinTemp: 5, Label: "a"}, {MinTemp: 5, Label: "b"}}); err == nil {
		t.Error("NewLadder with duplicate thresholds succeeded, want error")
	}
}

func TestNewLadder_OrdersEntries(t *testing.T) {
	ladder, err := NewLadder([]LadderEntry{
		{MinTemp: -99, Label: "coldest"},
		{MinTemp: 10, Label: "mild"},
		{MinTemp: 0, Label: "cold"},
	})
	if err != nil {
		t.Fatalf("NewLadder: %v", err)
	}
	if got := ladder.Recommend(12); got != "mild" {
		t.Errorf("Recommend(12) = %q, want mild", got)
	}
	if got := ladder.Recommend(3); got != "cold" {
		t.Errorf("Recommend(3) = %q, want cold", got)
	}
}
