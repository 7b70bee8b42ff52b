package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"toga/internal/domain"
)

// KeyBindingsConfig overrides default keys by binding name
type KeyBindingsConfig map[string][]string

// KeyDefinition defines the metadata for a configurable key binding
type KeyDefinition struct {
	Defaults []string
	Help     string
	Name     string
}

// AllKeyDefinitions is the single source of truth for key names, defaults and help text
var AllKeyDefinitions = []KeyDefinition{
	{Name: "back", Defaults: []string{"esc"}, Help: "volver"},
	{Name: "capture", Defaults: []string{"enter", " "}, Help: "tomar foto"},
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "salir"},
	{Name: "help", Defaults: []string{"?"}, Help: "ayuda"},
	{Name: "new", Defaults: []string{"n", "enter"}, Help: "nueva búsqueda"},
	{Name: "quit", Defaults: []string{"q"}, Help: "salir"},
	{Name: "restart", Defaults: []string{"ctrl+r"}, Help: "reiniciar"},
	{Name: "save", Defaults: []string{"s"}, Help: "guardar foto"},
	{Name: "submit", Defaults: []string{"enter"}, Help: "buscar"},
}

// GetKeyDefinition returns the definition for a key by name, or nil
func GetKeyDefinition(name string) *KeyDefinition {
	for _, def := range AllKeyDefinitions {
		if def.Name == name {
			return &def
		}
	}
	return nil
}

// GetValidKeyNames returns all valid key binding names in sorted order
func GetValidKeyNames() []string {
	names := make([]string, len(AllKeyDefinitions))
	for i, def := range AllKeyDefinitions {
		names[i] = def.Name
	}
	sort.Strings(names)
	return names
}

// GetDefaultKeyBindings returns the default keys of every binding by name
func GetDefaultKeyBindings() map[string][]string {
	defaults := make(map[string][]string, len(AllKeyDefinitions))
	for _, def := range AllKeyDefinitions {
		defaults[def.Name] = append([]string(nil), def.Defaults...)
	}
	return defaults
}

// IsValidKeyName checks if a name is a valid key binding name
func IsValidKeyName(name string) bool {
	return GetKeyDefinition(name) != nil
}

// KeyMap contains all keyboard shortcuts of the kiosk
type KeyMap struct {
	Back      key.Binding
	Capture   key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	New       key.Binding
	Quit      key.Binding
	Restart   key.Binding
	Save      key.Binding
	Submit    key.Binding
}

// NewKeyMap creates the key map. Pass nil to use the default bindings.
func NewKeyMap(custom KeyBindingsConfig) KeyMap {
	return KeyMap{
		Back:      buildBinding("back", custom),
		Capture:   buildBinding("capture", custom),
		ForceQuit: buildBinding("force_quit", custom),
		Help:      buildBinding("help", custom),
		New:       buildBinding("new", custom),
		Quit:      buildBinding("quit", custom),
		Restart:   buildBinding("restart", custom),
		Save:      buildBinding("save", custom),
		Submit:    buildBinding("submit", custom),
	}
}

func buildBinding(name string, custom KeyBindingsConfig) key.Binding {
	def := GetKeyDefinition(name)
	if def == nil {
		panic("unknown key definition: " + name)
	}

	keys := def.Defaults
	if override, ok := custom[name]; ok && len(override) > 0 {
		keys = override
	}

	helpKeys := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		helpKeys[i] = k
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(helpKeys, "/"), def.Help),
	)
}

// stepKeys adapts the key map to help.KeyMap for one workflow step
type stepKeys struct {
	keys  KeyMap
	state domain.State
	save  bool
}

func (s stepKeys) ShortHelp() []key.Binding {
	switch s.state {
	case domain.StateSearch:
		return []key.Binding{s.keys.Submit, s.keys.Help, s.keys.ForceQuit}
	case domain.StateCapture:
		return []key.Binding{s.keys.Capture, s.keys.Back, s.keys.Help}
	case domain.StateLoading:
		return []key.Binding{s.keys.Restart, s.keys.Help}
	case domain.StateResult:
		bindings := []key.Binding{s.keys.New}
		if s.save {
			bindings = append(bindings, s.keys.Save)
		}
		return append(bindings, s.keys.Quit, s.keys.Help)
	}
	return nil
}

func (s stepKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		s.ShortHelp(),
		{s.keys.Restart, s.keys.ForceQuit},
	}
}
