package system

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/zenith/internal/aitemplate"
	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/utils"
)

type TemplateCmd struct {
	Prompt string `arg:"" help:"What the template is for, e.g. 'weekly meal plan'."`
	CSV    string `help:"Write the template table as CSV to this file." type:"path"`
	JSON   string `help:"Write the whole template as JSON to this file." type:"path" name:"json"`
}

func (c *TemplateCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Prompt) == "" {
		return errors.New("prompt cannot be empty")
	}

	client := aitemplate.New(settings(ctx).AI, aitemplate.ResolveAPIKey())
	fmt.Println("Generating template...")
	tmpl := client.Generate(context.Background(), c.Prompt)
	if tmpl == nil {
		return fmt.Errorf("could not generate a template; check %s or 'zenith keyring set --secret ai-key', and the log for details", aitemplate.APIKeyEnv)
	}

	printTemplate(tmpl)

	if c.CSV != "" {
		if err := writeTemplateFile(c.CSV, tmpl, aitemplate.ExportCSV); err != nil {
			return err
		}
		fmt.Printf("✓ CSV written to %s\n", c.CSV)
	}
	if c.JSON != "" {
		if err := writeTemplateFile(c.JSON, tmpl, aitemplate.ExportJSON); err != nil {
			return err
		}
		fmt.Printf("✓ JSON written to %s\n", c.JSON)
	}
	if c.CSV == "" && c.JSON == "" {
		fmt.Printf("\nSave it with --csv %s or --json %s\n", aitemplate.Filename(tmpl, "csv"), aitemplate.Filename(tmpl, "json"))
	}
	return nil
}

func printTemplate(t *models.Template) {
	fmt.Printf("\n%s\n%s\n\n", t.Title, t.Description)
	fmt.Println("  " + strings.Join(t.Structure.Columns, " | "))
	for _, row := range t.Structure.Data {
		fmt.Println("  " + strings.Join(row, " | "))
	}
	if len(t.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range t.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
}

func writeTemplateFile(path string, t *models.Template, write func(io.Writer, *models.Template) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

type TemplateCatalogCmd struct {
	Query string `arg:"" optional:"" help:"Filter by title, description or tag."`
}

func (c *TemplateCatalogCmd) Run(ctx *cli.Context) error {
	entries := aitemplate.Catalog(c.Query)
	if len(entries) == 0 {
		fmt.Printf("No catalog templates match %q.\n", c.Query)
		return nil
	}
	for _, t := range entries {
		fmt.Printf("%d. %s (%s, %s) by %s\n", t.ID, t.Title, t.Type, utils.FormatMoney(t.Price), t.Author)
		fmt.Printf("   %s\n", t.Description)
		fmt.Printf("   Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	return nil
}
