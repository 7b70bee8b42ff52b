package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"toga/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"show" help:"Show the effective configuration" default:"1"`
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options"`
	Keys SettingsKeysCmd `cmd:"keys" help:"Manage keyboard shortcuts"`
}

// SettingsShowCmd prints the configuration after flags, env and settings.json were merged
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	effective := map[string]any{
		"api_url":                 cli.APIURL,
		"cached_duration_seconds": cli.CachedDuration,
		"camera_device":           cli.CameraDevice,
		"camera_height":           cli.CameraHeight,
		"camera_still":            cli.CameraStill,
		"camera_width":            cli.CameraWidth,
		"db_path":                 config.GetDBPath(),
		"debug":                   cli.Debug,
		"downloads_dir":           cli.Container.ArtifactService.Dir(),
		"fresh_duration_seconds":  cli.FreshDuration,
		"max_log_files":           cli.MaxLogFiles,
		"provisional_profile":     cli.ProvisionalProfile,
		"settle_delay_ms":         cli.SettleDelay,
	}

	if s.Format == "json" {
		data, err := json.MarshalIndent(effective, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Settings file: %s\n\n", config.GetSettingsPath())
	printTable(effective)
	return nil
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Example settings.json:")
	fmt.Println()

	printTable(example)

	fmt.Println()
	fmt.Println("Create or edit this file to configure toga.")
	fmt.Println("All settings are optional and have sensible defaults.")
	fmt.Println("Flags and TOGA_* environment variables (also read from .env) take precedence.")

	return nil
}

// printTable prints a key/value map sorted by key
func printTable(values map[string]any) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%s\n", key, formatValue(values[key]))
	}
	w.Flush()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case []string, map[string]any:
		data, _ := json.Marshal(v)
		return string(data)
	case string:
		if v == "" {
			return "-"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
