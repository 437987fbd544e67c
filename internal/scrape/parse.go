package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const hourlyTableSelector = "div#hourly .weather_table_wrap table"

// Data rows are located by their visible label text, not by position:
// the source does not fix row order or the column set, only the labels.
const (
	labelPrecipProb   = "강수확률"
	labelPrecipAmount = "강수량"
	labelHumidity     = "습도"
	labelWind         = "바람"
)

// ParseDocument extracts the current-conditions block and the hourly
// table from a rendered page. The browser side only captures HTML; all
// structure knowledge lives here so it can be exercised with fixtures.
func ParseDocument(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Current: parseCurrent(doc),
	}

	table := doc.Find(hourlyTableSelector).First()
	if table.Length() == 0 {
		return nil, ErrTableNotFound
	}
	result.Hourly = parseHourlyTable(table)
	return result, nil
}

// parseCurrent reads the big temperature display and its secondary
// fields. Every field is best effort; a missing element leaves the
// field empty rather than failing the extraction.
func parseCurrent(doc *goquery.Document) *RawCurrent {
	current := &RawCurrent{
		Temperature:   strings.TrimSuffix(text(doc.Find(".temperature_text strong").First()), "°"),
		WeatherStatus: text(doc.Find(".weather_info .summary").First()),
		Precipitation: text(doc.Find(".summary_inner .rainfall").First()),
		Humidity:      text(doc.Find(".summary_inner .humidity").First()),
	}
	if current.Temperature == "" && current.WeatherStatus == "" &&
		current.Precipitation == "" && current.Humidity == "" {
		return nil
	}
	return current
}

func parseHourlyTable(table *goquery.Selection) []RawHourly {
	headers := table.Find("thead tr._cnTime th._cnItemTime")

	var probCells, amtCells, humidityCells, windCells []string
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		rowText := row.Text()
		cells := cellTexts(row)
		switch {
		case strings.Contains(rowText, labelPrecipProb):
			probCells = stripLabel(cells, labelPrecipProb)
		case strings.Contains(rowText, labelPrecipAmount):
			amtCells = stripLabel(cells, labelPrecipAmount)
		case strings.Contains(rowText, labelHumidity):
			humidityCells = stripLabel(cells, labelHumidity)
		case strings.Contains(rowText, labelWind):
			windCells = stripLabel(cells, labelWind)
		}
	})

	// A header without a matching precipitation cell is dropped rather
	// than padded: trailing columns past the row's cell count carry no
	// forecast data.
	count := headers.Length()
	if len(probCells) < count {
		count = len(probCells)
	}

	results := make([]RawHourly, 0, count)
	headers.EachWithBreak(func(i int, th *goquery.Selection) bool {
		if i >= count {
			return false
		}
		raw := RawHourly{
			Timestamp:     th.AttrOr("data-ymdt", ""),
			Temperature:   th.AttrOr("data-tmpr", ""),
			WeatherStatus: th.AttrOr("data-wetr-txt", ""),
			PrecipProb:    cellOr(probCells, i, "0"),
			PrecipAmount:  cellOr(amtCells, i, "-"),
			Humidity:      cellOr(humidityCells, i, "0"),
		}
		raw.WindDirection, raw.WindSpeed = splitWind(cellOr(windCells, i, ""))
		results = append(results, raw)
		return true
	})
	return results
}

// splitWind splits a combined "direction speed" cell on whitespace.
// Fewer than two tokens means the source gave nothing usable.
func splitWind(cell string) (direction, speed string) {
	parts := strings.Fields(cell)
	if len(parts) < 2 {
		return "none", "0"
	}
	return parts[0], parts[1]
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(td.Text()))
	})
	return cells
}

func stripLabel(cells []string, label string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(strings.ReplaceAll(c, label, ""))
	}
	return out
}

func cellOr(cells []string, i int, def string) string {
	if i >= len(cells) || cells[i] == "" {
		return def
	}
	return cells[i]
}

func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
