package system

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/constants"
)

type DebugCmd struct {
	Path    DebugPathCmd    `cmd:"" help:"Show storage location."`
	Records DebugRecordsCmd `cmd:"" help:"List stored records."`
	Dump    DebugDumpCmd    `cmd:"" help:"Dump a raw record as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path":     ctx.Provider.GetConfigPath(),
		"settings": ctx.SettingsPath,
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugRecordsCmd struct{}

func (cmd *DebugRecordsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	records, err := ctx.Provider.ListRecords()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No records stored")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%-24s %10s  updated %s\n", r.Name, humanize.Bytes(uint64(r.Size)), humanize.Time(r.UpdatedAt))
	}
	return nil
}

type DebugDumpCmd struct {
	Name string `arg:"" optional:"" help:"Record name. Defaults to the state record."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	name := cmd.Name
	if name == "" {
		name = settings(ctx).Storage.Record
	}
	if name == "" {
		name = constants.RecordName
	}

	data, found, err := ctx.Provider.ReadRecord(name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("record not found: %s", name)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("record %s is not valid JSON: %w", name, err)
	}
	fmt.Println(out.String())
	return nil
}
