package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"toga/internal/config"
	"toga/internal/logging"
	"toga/internal/ui"
)

// SettingsKeysCmd shows and customizes the kiosk shortcuts
type SettingsKeysCmd struct {
	List  SettingsKeysListCmd  `cmd:"list" help:"Show every kiosk shortcut and what it does" default:"1"`
	Set   SettingsKeysSetCmd   `cmd:"set" help:"Bind a kiosk action to one or more keys"`
	Reset SettingsKeysResetCmd `cmd:"reset" help:"Drop a custom binding and go back to the default keys"`
}

// keyRow is one kiosk action as shown by settings keys list
type keyRow struct {
	Action    string   `json:"action"`
	Custom    []string `json:"custom,omitempty"`
	Default   []string `json:"default"`
	Effective []string `json:"effective"`
	Name      string   `json:"-"`
}

// keyRows merges the kiosk key definitions with the custom bindings.
// Keys are kept raw; the table renders " " as "space".
func keyRows(custom config.KeyBindingsConfig) []keyRow {
	rows := make([]keyRow, 0, len(ui.AllKeyDefinitions))
	for _, def := range ui.AllKeyDefinitions {
		row := keyRow{
			Action:    def.Help,
			Default:   def.Defaults,
			Effective: def.Defaults,
			Name:      def.Name,
		}
		if keys := custom[def.Name]; len(keys) > 0 {
			row.Custom = keys
			row.Effective = keys
		}
		rows = append(rows, row)
	}
	return rows
}

// SettingsKeysListCmd prints the kiosk shortcuts
type SettingsKeysListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *SettingsKeysListCmd) Run(cli *CLI) error {
	var custom config.KeyBindingsConfig
	if cli.settings != nil {
		custom = cli.settings.Keys
	}
	rows := keyRows(custom)

	if s.Format == "json" {
		byName := make(map[string]keyRow, len(rows))
		for _, row := range rows {
			byName[row.Name] = row
		}
		data, err := json.MarshalIndent(byName, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Kiosk shortcuts (%s)\n\n", config.GetSettingsPath())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ACTION\tKEYS\tDESCRIPTION\tSOURCE")
	for _, row := range rows {
		source := "default"
		if row.Custom != nil {
			source = "settings.json"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Name, strings.Join(displayKeys(row.Effective), " / "), row.Action, source)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("A key may serve several screens: enter submits the search, takes the photo and starts over.")
	return nil
}

// SettingsKeysSetCmd binds a kiosk action
type SettingsKeysSetCmd struct {
	Action string `arg:"" help:"Kiosk action (capture, save, back, new, ...)"`
	Keys   string `arg:"" help:"Comma separated keys, e.g. 'enter,space' or 'ctrl+s'"`
}

// Run executes the set command
func (s *SettingsKeysSetCmd) Run(cli *CLI) error {
	if !ui.IsValidKeyName(s.Action) {
		return fmt.Errorf("unknown kiosk action %q, expected one of: %s",
			s.Action, strings.Join(ui.GetValidKeyNames(), ", "))
	}
	keys := parseKeyValues(s.Keys)
	if len(keys) == 0 {
		return fmt.Errorf("no keys given for %s", s.Action)
	}

	err := updateKeys(func(bindings config.KeyBindingsConfig) {
		bindings[s.Action] = keys
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) now uses %s\n", s.Action, ui.GetKeyDefinition(s.Action).Help, strings.Join(displayKeys(keys), " / "))
	return nil
}

// SettingsKeysResetCmd restores the default keys of an action
type SettingsKeysResetCmd struct {
	Action string `arg:"" help:"Kiosk action to reset"`
}

// Run executes the reset command
func (s *SettingsKeysResetCmd) Run(cli *CLI) error {
	def := ui.GetKeyDefinition(s.Action)
	if def == nil {
		return fmt.Errorf("unknown kiosk action %q, expected one of: %s",
			s.Action, strings.Join(ui.GetValidKeyNames(), ", "))
	}

	err := updateKeys(func(bindings config.KeyBindingsConfig) {
		delete(bindings, s.Action)
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) back to %s\n", s.Action, def.Help, strings.Join(displayKeys(def.Defaults), " / "))
	return nil
}

// updateKeys edits the bindings stored in settings.json and writes them back
// only when the result validates
func updateKeys(edit func(config.KeyBindingsConfig)) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Keys == nil {
		settings.Keys = make(config.KeyBindingsConfig)
	}
	edit(settings.Keys)
	if err := settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
		return fmt.Errorf("invalid binding: %w", err)
	}
	if len(settings.Keys) == 0 {
		settings.Keys = nil
	}

	logging.Logger.Debug("Saving key bindings", "bindings", settings.Keys.Map())
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// parseKeyValues splits a comma separated key list. "space" stands for " ".
func parseKeyValues(value string) []string {
	var keys []string
	for _, part := range strings.Split(value, ",") {
		switch k := strings.TrimSpace(part); k {
		case "":
		case "space":
			keys = append(keys, " ")
		default:
			keys = append(keys, k)
		}
	}
	return keys
}

// displayKeys makes the space key readable in tables
func displayKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}
