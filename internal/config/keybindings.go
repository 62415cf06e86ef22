package config

import (
	"slices"
	"strings"
)

// Actions the host binds keys to.
const (
	ActionCancelDrag         = "cancel_drag"
	ActionToggleFloatingMode = "toggle_floating_mode"
	ActionRevealWindows      = "reveal_windows"
	ActionNewDocument        = "new_document"
	ActionToggleLogs         = "toggle_logs"
	ActionToggleHelp         = "toggle_help"
	ActionQuit               = "quit"
)

var knownActions = map[string]string{
	ActionCancelDrag:         "Cancel the drag in progress",
	ActionToggleFloatingMode: "Toggle native / managed floating windows",
	ActionRevealWindows:      "Show all hidden floating windows",
	ActionNewDocument:        "Add a document to the focused dock",
	ActionToggleLogs:         "Toggle log viewer",
	ActionToggleHelp:         "Toggle help",
	ActionQuit:               "Quit application",
}

// Describe returns the help text of action.
func Describe(action string) string {
	if d, ok := knownActions[action]; ok {
		return d
	}
	return action
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Action      string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// KeybindRegistry resolves pressed keys to actions.
type KeybindRegistry struct {
	byKey    map[string]string
	byAction map[string][]string
	sections []KeybindingSection
}

// NewKeybindRegistry builds a registry from the keybindings of cfg. A nil
// config uses the defaults.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		byKey:    make(map[string]string),
		byAction: make(map[string][]string),
	}
	r.addSection("Dragging", cfg.Keybindings.Drag)
	r.addSection("Windows", cfg.Keybindings.Windows)
	r.addSection("System", cfg.Keybindings.System)
	return r
}

func (r *KeybindRegistry) addSection(title string, binds map[string][]string) {
	actions := make([]string, 0, len(binds))
	for a := range binds {
		actions = append(actions, a)
	}
	slices.Sort(actions)

	section := KeybindingSection{Title: title}
	for _, action := range actions {
		keys := binds[action]
		for _, k := range keys {
			k = normalizeKey(k)
			if _, taken := r.byKey[k]; !taken {
				r.byKey[k] = action
			}
			r.byAction[action] = append(r.byAction[action], k)
		}
		if len(keys) == 0 {
			continue
		}
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         strings.Join(keys, ", "),
			Action:      action,
			Description: Describe(action),
		})
	}
	r.sections = append(r.sections, section)
}

// Action returns the action bound to key, or "" if none.
func (r *KeybindRegistry) Action(key string) string {
	return r.byKey[normalizeKey(key)]
}

// KeysFor returns the keys bound to action.
func (r *KeybindRegistry) KeysFor(action string) []string {
	return r.byAction[action]
}

// PrimaryKey returns the first key bound to action, for status hints.
func (r *KeybindRegistry) PrimaryKey(action string) string {
	if keys := r.byAction[action]; len(keys) > 0 {
		return keys[0]
	}
	return ""
}

// GetKeybindings returns all keybinding sections for the help menu.
// If registry is nil, the defaults are used.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}
	sections := []KeybindingSection{{
		Title: "Mouse",
		Bindings: []Keybinding{
			{Key: "drag tab", Description: "Move a document, drop on a zone to dock it"},
			{Key: "ctrl+drag tab", Description: "Swap with the document under the pointer"},
			{Key: "drop outside", Description: "Float the document in its own window"},
		},
	}}
	return append(sections, registry.sections...)
}

// opt+ is the macOS spelling of alt+.
func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.ReplaceAll(k, "opt+", "alt+")
}
