package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/jaeho/runbrief/internal/models"
	"github.com/jaeho/runbrief/internal/outfit"
	"github.com/jaeho/runbrief/internal/query"
	"github.com/jaeho/runbrief/internal/scrape"
	"github.com/jaeho/runbrief/internal/store"
	"github.com/jaeho/runbrief/internal/update"
)

var defaultLocations = []models.Location{
	{Code: "09140104", Name: "Yongsan-gu, Seoul", Latitude: 37.5326, Longitude: 126.9906},
	{Code: "09170130", Name: "Yeouido, Seoul", Latitude: 37.5219, Longitude: 126.9245},
	{Code: "09410101", Name: "Bundang-gu, Seongnam", Latitude: 37.3830, Longitude: 127.1190},
}

var cli struct {
	DB          string `kong:"default='data/runbrief.db',env='RUNBRIEF_DB',help='Path to SQLite database.'"`
	BaseURL     string `kong:"default='https://weather.naver.com',env='RUNBRIEF_BASE_URL',help='Weather site root URL.'"`
	MetricsAddr string `kong:"default=':9090',env='RUNBRIEF_METRICS_ADDR',help='Prometheus metrics listen address.'"`
	Timezone    string `kong:"default='Asia/Seoul',env='RUNBRIEF_TZ',help='Local clock for sweep scheduling.'"`
	Once        bool   `kong:"help='Run one batch sweep and exit.'"`
	Brief       string `kong:"placeholder='CODE',help='Print a briefing for a location code and exit.'"`
	Headful     bool   `kong:"help='Run the browser with a visible window.'"`
}

func main() {
	kong.Parse(&cli, kong.Configuration(kongdotenv.ENVFileReader, ".env"))

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	loc, err := time.LoadLocation(cli.Timezone)
	if err != nil {
		log.Printf("Warning: could not load %s timezone, using UTC: %v", cli.Timezone, err)
		loc = time.UTC
	}

	st := store.New(db, loc)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	for _, l := range defaultLocations {
		if err := st.UpsertLocation(l); err != nil {
			log.Fatalf("upsert location %s: %v", l.Code, err)
		}
	}
	log.Println("locations seeded")

	ruleCount, err := st.CountOutfitRules()
	if err != nil {
		log.Fatalf("count outfit rules: %v", err)
	}
	if ruleCount == 0 {
		for _, r := range outfit.DefaultRules() {
			if _, err := st.InsertOutfitRule(r); err != nil {
				log.Fatalf("seed outfit rule: %v", err)
			}
		}
		log.Println("outfit rules seeded")
	}

	if cli.Brief != "" {
		if err := printBriefing(st, loc, cli.Brief); err != nil {
			log.Fatalf("briefing: %v", err)
		}
		return
	}

	var chromeOpts []scrape.ChromeOption
	if cli.Headful {
		chromeOpts = append(chromeOpts, scrape.WithHeadful())
	}
	extractor := scrape.NewExtractor(scrape.NewChromeReader(chromeOpts...))
	updater := update.NewUpdater(extractor, st, cli.BaseURL)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cli.Once {
		locations, err := st.ListLocations()
		if err != nil {
			log.Fatalf("list locations: %v", err)
		}
		res := updater.UpdateMany(ctx, locations)
		if res.Failed > 0 {
			log.Fatalf("sweep finished with failures: %d succeeded, %d failed", res.Succeeded, res.Failed)
		}
		log.Println("done")
		return
	}

	go serveMetrics(ctx, cli.MetricsAddr)

	scheduler := update.NewScheduler(updater, st, loc)
	if err := scheduler.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("scheduler: %v", err)
	}
}

func printBriefing(st *store.Store, loc *time.Location, code string) error {
	location, err := st.GetLocation(code)
	if err != nil {
		return err
	}
	if location == nil {
		return fmt.Errorf("unknown location code %s", code)
	}
	rules, err := st.ListOutfitRules()
	if err != nil {
		return err
	}

	q := query.New(st, loc)
	b, err := q.Briefing(*location, outfit.NewRuleSet(rules), time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", b.Location.Name, b.Location.Code)
	if b.Current != nil {
		fmt.Printf("nearest forecast: %s %02d:00  %d°C  %s  precip %d%%  wind %s %.1f\n",
			b.Current.Date.Format("2006-01-02"), b.Current.Hour, b.Current.Temperature,
			b.Current.WeatherStatus, b.Current.PrecipProb, b.Current.WindDirection, b.Current.WindSpeed)
	} else {
		fmt.Println("nearest forecast: no data stored")
	}
	fmt.Printf("morning (04-07): min %d°C max %d°C  %s\n", b.Morning.MinTemp, b.Morning.MaxTemp, b.Morning.OutfitLabel)
	fmt.Printf("day     (06-23): min %d°C max %d°C  %s\n", b.Day.MinTemp, b.Day.MaxTemp, b.Day.DominantStatus)
	for _, w := range append(b.Morning.Warnings, b.Day.Warnings...) {
		fmt.Printf("warning: %s\n", w)
	}
	if b.Sun != nil {
		fmt.Printf("sunrise %s  sunset %s\n", b.Sun.Sunrise.Format("15:04"), b.Sun.Sunset.Format("15:04"))
	}
	for _, r := range b.Outfits {
		fmt.Printf("outfit: %s / %s", r.Top, r.Bottom)
		if r.Accessories != "" {
			fmt.Printf(" (%s)", r.Accessories)
		}
		fmt.Println()
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("metrics server: %v", err)
	}
}
