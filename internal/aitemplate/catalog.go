package aitemplate

import (
	"strings"

	"github.com/julianstephens/zenith/internal/models"
)

var catalog = []models.CatalogTemplate{
	{
		ID:          1,
		Title:       "Ultimate Student Planner 2024",
		Description: "Track assignments, grades, and exams in one place.",
		Price:       15,
		Author:      "Sarah Design",
		Type:        "Notion",
		Tags:        []string{"Education", "Productivity"},
	},
	{
		ID:          2,
		Title:       "Startup Financial Model",
		Description: "5-year projection sheets with automated charts.",
		Price:       49,
		Author:      "FinanceWiz",
		Type:        "Spreadsheet",
		Tags:        []string{"Business", "Finance"},
	},
	{
		ID:          3,
		Title:       "Minimal Habit Tracker",
		Description: "Clean PDF printable for daily tracking.",
		Price:       5,
		Author:      "ZenithOfficial",
		Type:        "PDF",
		Tags:        []string{"Health", "Lifestyle"},
	},
}

// Catalog returns the built-in templates whose title, description or tags
// contain query, ignoring case. An empty query returns every entry.
// The catalog is read-only; purchasing is not supported.
func Catalog(query string) []models.CatalogTemplate {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.CatalogTemplate
	for _, t := range catalog {
		if q == "" || matches(t, q) {
			t.Tags = append([]string(nil), t.Tags...)
			out = append(out, t)
		}
	}
	return out
}

func matches(t models.CatalogTemplate, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
