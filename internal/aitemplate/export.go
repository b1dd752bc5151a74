package aitemplate

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/julianstephens/zenith/internal/models"
)

// ExportCSV writes the column header followed by each data row
func ExportCSV(w io.Writer, t *models.Template) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Structure.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Structure.Data); err != nil {
		return err
	}
	return cw.Error()
}

// ExportJSON writes the whole template, indented
func ExportJSON(w io.Writer, t *models.Template) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Filename derives a download name from the template title, e.g.
// "Weekly Meal Plan" -> "weekly_meal_plan.csv".
func Filename(t *models.Template, ext string) string {
	name := strings.ToLower(strings.Join(strings.Fields(t.Title), "_"))
	if name == "" {
		name = "template"
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
