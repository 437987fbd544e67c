package normalize

import (
	"testing"
	"time"

	"github.com/jaeho/runbrief/internal/scrape"
)

func TestNormalize_FullRow(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC)
	raw := scrape.RawHourly{
		Timestamp:     "2026030207",
		Temperature:   "-3",
		WeatherStatus: "맑음",
		PrecipProb:    "30%",
		PrecipAmount:  "1mm",
		Humidity:      "60",
		WindDirection: "NW",
		WindSpeed:     "3.2",
	}

	rec, ok := Normalize(raw, "09140104", now)
	if !ok {
		t.Fatal("Normalize skipped a valid row")
	}
	if rec.Code != "09140104" {
		t.Errorf("Code = %q, want 09140104", rec.Code)
	}
	wantDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !rec.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", rec.Date, wantDate)
	}
	if rec.Hour != 7 {
		t.Errorf("Hour = %d, want 7", rec.Hour)
	}
	if rec.Temperature != -3 {
		t.Errorf("Temperature = %d, want -3", rec.Temperature)
	}
	if rec.PrecipProb != 30 {
		t.Errorf("PrecipProb = %d, want 30", rec.PrecipProb)
	}
	if rec.WindSpeed != 3.2 {
		t.Errorf("WindSpeed = %v, want 3.2", rec.WindSpeed)
	}
	if !rec.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", rec.UpdatedAt, now)
	}
}

func TestNormalize_BadTimestampSkips(t *testing.T) {
	now := time.Now()
	cases := []string{"", "20260302", "abcdefghij", "2026130207", "2026030225"}
	for _, ts := range cases {
		if _, ok := Normalize(scrape.RawHourly{Timestamp: ts}, "09140104", now); ok {
			t.Errorf("Normalize(%q) accepted, want skip", ts)
		}
	}
}

func TestNormalize_BadNumericsDefaultToZero(t *testing.T) {
	raw := scrape.RawHourly{
		Timestamp:     "2026030207",
		Temperature:   "??",
		PrecipProb:    "-",
		Humidity:      "습도",
		WindDirection: "none",
		WindSpeed:     "-",
	}
	rec, ok := Normalize(raw, "09140104", time.Now())
	if !ok {
		t.Fatal("Normalize skipped a row with a valid timestamp")
	}
	if rec.Temperature != 0 || rec.PrecipProb != 0 || rec.Humidity != 0 || rec.WindSpeed != 0 {
		t.Errorf("numeric defaults = (%d, %d, %d, %v), want all zero",
			rec.Temperature, rec.PrecipProb, rec.Humidity, rec.WindSpeed)
	}
}

func TestNormalizeAll_DropsOnlyBadRows(t *testing.T) {
	raws := []scrape.RawHourly{
		{Timestamp: "2026030206", Temperature: "2"},
		{Timestamp: "short"},
		{Timestamp: "2026030207", Temperature: "3"},
	}
	records := NormalizeAll(raws, "09140104", time.Now())
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Hour != 6 || records[1].Hour != 7 {
		t.Errorf("hours = (%d, %d), want (6, 7)", records[0].Hour, records[1].Hour)
	}
}

func TestPercentOrZero(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"60%", 60},
		{"60", 60},
		{" 5% ", 5},
		{"", 0},
		{"-", 0},
		{"60%%", 0},
		{"6a", 0},
	}
	for _, c := range cases {
		if got := PercentOrZero(c.in); got != c.want {
			t.Errorf("PercentOrZero(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFloatOrZero(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"3.2", 3.2},
		{"-1.5", -1.5},
		{"-", 0},
		{"", 0},
		{"fast", 0},
	}
	for _, c := range cases {
		if got := FloatOrZero(c.in); got != c.want {
			t.Errorf("FloatOrZero(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
