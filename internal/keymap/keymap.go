package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/glide/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionPrev        Action = "prev"
	ActionNext        Action = "next"
	ActionScrollLeft  Action = "scroll_left"
	ActionScrollRight Action = "scroll_right"
	ActionFirst       Action = "first"
	ActionLast        Action = "last"
	ActionCopy        Action = "copy"
	ActionReload      Action = "reload"
	ActionHelp        Action = "help"
	ActionQuit        Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the carousel.
type KeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	First       key.Binding
	Last        key.Binding
	Copy        key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var defaults = []bindingDef{
	{action: ActionPrev, keys: []string{"left", "p"}, desc: "previous"},
	{action: ActionNext, keys: []string{"right", "n"}, desc: "next"},
	{action: ActionScrollLeft, keys: []string{"h"}, desc: "scroll left"},
	{action: ActionScrollRight, keys: []string{"l"}, desc: "scroll right"},
	{action: ActionFirst, keys: []string{"home", "g"}, desc: "first"},
	{action: ActionLast, keys: []string{"end", "G"}, desc: "last"},
	{action: ActionCopy, keys: []string{"y"}, desc: "copy slide"},
	{action: ActionReload, keys: []string{"r"}, desc: "reload"},
	{action: ActionHelp, keys: []string{"?"}, desc: "help"},
	{action: ActionQuit, keys: []string{"q", "ctrl+c"}, desc: "quit"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	b := make(map[Action]key.Binding, len(defaults))
	for _, def := range defaults {
		b[def.action] = bindingFromDef(cfg, def)
	}
	return KeyMap{
		Prev:        b[ActionPrev],
		Next:        b[ActionNext],
		ScrollLeft:  b[ActionScrollLeft],
		ScrollRight: b[ActionScrollRight],
		First:       b[ActionFirst],
		Last:        b[ActionLast],
		Copy:        b[ActionCopy],
		Reload:      b[ActionReload],
		Help:        b[ActionHelp],
		Quit:        b[ActionQuit],
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok || len(keys) == 0 {
		keys = def.keys
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), def.desc),
	)
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Copy, k.Help, k.Quit}
}

// FullHelp returns every binding grouped for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.ScrollLeft, k.ScrollRight},
		{k.Copy, k.Reload, k.Help, k.Quit},
	}
}
