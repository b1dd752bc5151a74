package models

// Template is a structured productivity template produced by the AI
// template service.
type Template struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Structure   TemplateStructure `json:"structure"`
	Suggestions []string          `json:"suggestions"`
}

type TemplateStructure struct {
	Columns []string   `json:"columns"`
	Data    [][]string `json:"data"`
}

// CatalogTemplate is a ready-made template listed in the built-in catalog.
type CatalogTemplate struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Author      string   `json:"author"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
}
