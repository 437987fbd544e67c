package outfit

import (
	"database/sql"

	"github.com/jaeho/runbrief/internal/models"
)

func f(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// DefaultRules is the stock rule table seeded on first start. The
// temperature bands tile the non-extreme range with no gaps; the
// humidity and wind variants layer on top of the base bands at a lower
// priority number so they sort first when they apply.
func DefaultRules() []models.OutfitRule {
	return []models.OutfitRule{
		{
			MinTemp: 25, MaxTemp: f(35),
			Top: "Singlet or no shirt", Bottom: "Split shorts",
			Accessories: "Cap, sunglasses, handheld bottle",
			Notes:       "Run early, cut the pace, hydrate before and during",
			Priority:    100, Active: true,
		},
		{
			MinTemp: 20, MaxTemp: f(25),
			Top: "Singlet", Bottom: "Shorts",
			Accessories: "Cap, sunglasses",
			Notes:       "Comfortable once moving; sunscreen on long runs",
			Priority:    100, Active: true,
		},
		{
			MinTemp: 20, MaxTemp: f(25), HumidityMin: f(80),
			Top: "Lightest singlet available", Bottom: "Shorts",
			Accessories: "Sweatband, extra water",
			Notes:       "High humidity blunts cooling; treat it like a hotter day",
			Priority:    50, Active: true,
		},
		{
			MinTemp: 15, MaxTemp: f(20),
			Top: "Short-sleeve tee", Bottom: "Shorts",
			Accessories: "",
			Notes:       "The easy band; dress for the second kilometre",
			Priority:    100, Active: true,
		},
		{
			MinTemp: 10, MaxTemp: f(15),
			Top: "Short-sleeve tee or thin long sleeve", Bottom: "Shorts or capri tights",
			Accessories: "Light gloves for the first minutes",
			Notes:       "Feels cold at the door, right after warm-up",
			Priority:    100, Active: true,
		},
		{
			MinTemp: 7, MaxTemp: f(10),
			Top: "Long-sleeve tee", Bottom: "Capri or full tights",
			Accessories: "Thin gloves",
			Notes:       "",
			Priority:    100, Active: true,
		},
		{
			MinTemp: 5, MaxTemp: f(7),
			Top: "Long-sleeve tee, light vest", Bottom: "Full tights",
			Accessories: "Gloves, thin headband",
			Notes:       "",
			Priority:    100, Active: true,
		},
		{
			MinTemp: 5, MaxTemp: f(10), WindMin: f(8),
			Top: "Long sleeve under a windbreaker", Bottom: "Full tights",
			Accessories: "Gloves, headband",
			Notes:       "Wind chill takes several degrees off the reading",
			Priority:    50, Active: true,
		},
		{
			MinTemp: 0, MaxTemp: f(5),
			Top: "Thermal long sleeve, windbreaker", Bottom: "Thermal tights",
			Accessories: "Gloves, ear warmers",
			Notes:       "",
			Priority:    100, Active: true,
		},
		{
			MinTemp: -5, MaxTemp: f(0),
			Top: "Thermal base layer, insulated jacket", Bottom: "Thermal tights",
			Accessories: "Thick gloves, beanie, neck gaiter",
			Notes:       "Cover exposed skin; ice on shaded paths",
			Priority:    100, Active: true,
		},
		{
			MinTemp: -10, MaxTemp: f(-5),
			Top: "Double base layer, windproof insulated jacket", Bottom: "Fleece-lined tights, wind briefs",
			Accessories: "Mittens, balaclava, wool socks",
			Notes:       "Shorten the session and stay close to home",
			Priority:    100, Active: true,
		},
	}
}
