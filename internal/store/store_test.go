package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jaeho/runbrief/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load timezone: %v", err)
	}
	store := New(db, loc)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func testRecord(code string, date time.Time, hour, temp int) models.HourlyRecord {
	return models.HourlyRecord{
		Code:          code,
		Date:          date,
		Hour:          hour,
		Temperature:   temp,
		WeatherStatus: "맑음",
		PrecipProb:    10,
		PrecipAmount:  "-",
		Humidity:      55,
		WindDirection: "NW",
		WindSpeed:     2.4,
		UpdatedAt:     time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
	}
}

func TestUpsertHourly_InsertAndGet(t *testing.T) {
	store := setupTestStore(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if err := store.UpsertHourly(testRecord("09140104", date, 6, 3)); err != nil {
		t.Fatalf("UpsertHourly: %v", err)
	}

	rec, err := store.GetHourly("09140104", date, 6)
	if err != nil {
		t.Fatalf("GetHourly: %v", err)
	}
	if rec == nil {
		t.Fatal("GetHourly returned nil")
	}
	if rec.Temperature != 3 {
		t.Errorf("Temperature = %d, want 3", rec.Temperature)
	}
	if !rec.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", rec.Date, date)
	}
	if rec.WindDirection != "NW" {
		t.Errorf("WindDirection = %q, want NW", rec.WindDirection)
	}
}

func TestUpsertHourly_ReplaceNotDuplicate(t *testing.T) {
	store := setupTestStore(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := testRecord("09140104", date, 6, 3)
	if err := store.UpsertHourly(first); err != nil {
		t.Fatalf("UpsertHourly: %v", err)
	}

	second := testRecord("09140104", date, 6, 5)
	second.WeatherStatus = "흐림"
	second.UpdatedAt = first.UpdatedAt.Add(10 * time.Minute)
	if err := store.UpsertHourly(second); err != nil {
		t.Fatalf("UpsertHourly replace: %v", err)
	}

	n, err := store.CountHourly("09140104")
	if err != nil {
		t.Fatalf("CountHourly: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountHourly = %d, want 1", n)
	}

	rec, err := store.GetHourly("09140104", date, 6)
	if err != nil {
		t.Fatalf("GetHourly: %v", err)
	}
	if rec.Temperature != 5 {
		t.Errorf("Temperature = %d, want 5", rec.Temperature)
	}
	if rec.WeatherStatus != "흐림" {
		t.Errorf("WeatherStatus = %q, want 흐림", rec.WeatherStatus)
	}
	if !rec.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", rec.UpdatedAt, first.UpdatedAt)
	}
}

func TestUpsertHourly_DistinctKeysCoexist(t *testing.T) {
	store := setupTestStore(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if err := store.UpsertHourly(testRecord("09140104", date, 6, 3)); err != nil {
		t.Fatalf("UpsertHourly: %v", err)
	}
	if err := store.UpsertHourly(testRecord("09140104", date, 7, 4)); err != nil {
		t.Fatalf("UpsertHourly hour 7: %v", err)
	}
	if err := store.UpsertHourly(testRecord("09410101", date, 6, 2)); err != nil {
		t.Fatalf("UpsertHourly other code: %v", err)
	}

	n, err := store.CountHourly("09140104")
	if err != nil {
		t.Fatalf("CountHourly: %v", err)
	}
	if n != 2 {
		t.Errorf("CountHourly(09140104) = %d, want 2", n)
	}
}

func TestGetHourRange(t *testing.T) {
	store := setupTestStore(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	for _, hour := range []int{9, 4, 7, 5, 12} {
		if err := store.UpsertHourly(testRecord("09140104", date, hour, hour)); err != nil {
			t.Fatalf("UpsertHourly hour %d: %v", hour, err)
		}
	}

	records, err := store.GetHourRange("09140104", date, 4, 7)
	if err != nil {
		t.Fatalf("GetHourRange: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	for i, want := range []int{4, 5, 7} {
		if records[i].Hour != want {
			t.Errorf("records[%d].Hour = %d, want %d", i, records[i].Hour, want)
		}
	}
}

func TestNearestFuture(t *testing.T) {
	store := setupTestStore(t)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	if err := store.UpsertHourly(testRecord("09140104", today, 9, 3)); err != nil {
		t.Fatalf("UpsertHourly: %v", err)
	}
	if err := store.UpsertHourly(testRecord("09140104", tomorrow, 3, -1)); err != nil {
		t.Fatalf("UpsertHourly tomorrow: %v", err)
	}

	// Later hour on the same date wins over tomorrow.
	rec, err := store.NearestFuture("09140104", today, 8)
	if err != nil {
		t.Fatalf("NearestFuture: %v", err)
	}
	if rec == nil || rec.Hour != 9 || !rec.Date.Equal(today) {
		t.Fatalf("NearestFuture(today, 8) = %+v, want today hour 9", rec)
	}

	// Past the last hour of today, roll over to tomorrow's earliest.
	rec, err = store.NearestFuture("09140104", today, 14)
	if err != nil {
		t.Fatalf("NearestFuture rollover: %v", err)
	}
	if rec == nil || rec.Hour != 3 || !rec.Date.Equal(tomorrow) {
		t.Fatalf("NearestFuture(today, 14) = %+v, want tomorrow hour 3", rec)
	}

	// Nothing strictly in the future.
	rec, err = store.NearestFuture("09140104", tomorrow, 3)
	if err != nil {
		t.Fatalf("NearestFuture exhausted: %v", err)
	}
	if rec != nil {
		t.Fatalf("NearestFuture(tomorrow, 3) = %+v, want nil", rec)
	}
}

func TestGetHourly_Missing(t *testing.T) {
	store := setupTestStore(t)

	rec, err := store.GetHourly("09140104", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 6)
	if err != nil {
		t.Fatalf("GetHourly: %v", err)
	}
	if rec != nil {
		t.Fatalf("GetHourly = %+v, want nil", rec)
	}
}

func TestLocationCRUD(t *testing.T) {
	store := setupTestStore(t)

	loc := models.Location{
		Code:      "09140104",
		Name:      "Yongsan-gu, Seoul",
		Latitude:  37.5326,
		Longitude: 126.9906,
	}
	if err := store.UpsertLocation(loc); err != nil {
		t.Fatalf("UpsertLocation: %v", err)
	}

	loc.Name = "Yongsan"
	if err := store.UpsertLocation(loc); err != nil {
		t.Fatalf("UpsertLocation update: %v", err)
	}

	got, err := store.GetLocation("09140104")
	if err != nil {
		t.Fatalf("GetLocation: %v", err)
	}
	if got == nil {
		t.Fatal("GetLocation returned nil")
	}
	if got.Name != "Yongsan" {
		t.Errorf("Name = %q, want Yongsan", got.Name)
	}

	list, err := store.ListLocations()
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}

	if err := store.DeleteLocation("09140104"); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}
	got, err = store.GetLocation("09140104")
	if err != nil {
		t.Fatalf("GetLocation after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("GetLocation after delete = %+v, want nil", got)
	}
}

func TestOutfitRuleCRUD(t *testing.T) {
	store := setupTestStore(t)

	n, err := store.CountOutfitRules()
	if err != nil {
		t.Fatalf("CountOutfitRules: %v", err)
	}
	if n != 0 {
		t.Fatalf("CountOutfitRules = %d, want 0", n)
	}

	rule := models.OutfitRule{
		MinTemp:  10,
		MaxTemp:  sql.NullFloat64{Float64: 15, Valid: true},
		Top:      "Short-sleeve tee",
		Bottom:   "Shorts",
		Priority: 100,
		Active:   true,
	}
	id, err := store.InsertOutfitRule(rule)
	if err != nil {
		t.Fatalf("InsertOutfitRule: %v", err)
	}
	if id == 0 {
		t.Fatal("InsertOutfitRule returned id 0")
	}

	got, err := store.GetOutfitRule(id)
	if err != nil {
		t.Fatalf("GetOutfitRule: %v", err)
	}
	if got == nil {
		t.Fatal("GetOutfitRule returned nil")
	}
	if got.MinTemp != 10 || !got.MaxTemp.Valid || got.MaxTemp.Float64 != 15 {
		t.Errorf("rule bounds = [%v, %v], want [10, 15]", got.MinTemp, got.MaxTemp)
	}
	if got.HumidityMin.Valid {
		t.Errorf("HumidityMin.Valid = true, want absent bound")
	}

	rules, err := store.ListOutfitRules()
	if err != nil {
		t.Fatalf("ListOutfitRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}

	if err := store.DeleteOutfitRule(id); err != nil {
		t.Fatalf("DeleteOutfitRule: %v", err)
	}
	got, err = store.GetOutfitRule(id)
	if err != nil {
		t.Fatalf("GetOutfitRule after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("GetOutfitRule after delete = %+v, want nil", got)
	}
}

func TestMigrationVersion(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Errorf("MigrationVersion = %d, want %d", version, migrations[len(migrations)-1].Version)
	}

	// Re-running is a no-op.
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate second run: %v", err)
	}
}
