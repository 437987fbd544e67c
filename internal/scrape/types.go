package scrape

// RawHourly is one unparsed column of the hourly forecast table. All
// values are strings exactly as the page carried them; normalization
// happens downstream.
type RawHourly struct {
	Timestamp     string // compact YYYYMMDDHH from the header cell
	Temperature   string
	WeatherStatus string
	PrecipProb    string
	PrecipAmount  string
	Humidity      string
	WindDirection string
	WindSpeed     string
}

// RawCurrent is the best-effort current-conditions block. Any field the
// page did not render is left empty.
type RawCurrent struct {
	Temperature   string
	WeatherStatus string
	Precipitation string
	Humidity      string
}

// Result is everything one extraction yields. Current is nil when the
// conditions block could not be read at all; that is not a failure.
type Result struct {
	Hourly  []RawHourly
	Current *RawCurrent
}
