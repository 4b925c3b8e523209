package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Edit       key.Binding
	ToggleNeed key.Binding
	Select     key.Binding
	ClearSel   key.Binding
	Delete     key.Binding
	BulkDelete key.Binding
	Undo       key.Binding
	Refresh    key.Binding
	Search     key.Binding
	SortNext   key.Binding
	SortFlip   key.Binding
	Period     key.Binding
	ChipCat    key.Binding
	ChipCard   key.Binding
	ChipWho    key.Binding
	ChipNeed   key.Binding
	ClearFilt  key.Binding
	Autofill   key.Binding
	RenameCat  key.Binding
	DeleteCat  key.Binding
	DeleteAll  key.Binding
	RowsMore   key.Binding
	RowsLess   key.Binding
	Export     key.Binding
	Import     key.Binding
	ChartMode  key.Binding
	Reimport   key.Binding
	Help       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "navigate")),
		Down:       key.NewBinding(key.WithKeys("j", "down")),
		Left:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "column")),
		Right:      key.NewBinding(key.WithKeys("l", "right")),
		Top:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		ToggleNeed: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "need/luxury")),
		Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle sel")),
		ClearSel:   key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "clear sel")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete row")),
		BulkDelete: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SortNext:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		SortFlip:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort dir")),
		Period:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "period")),
		ChipCat:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category chip")),
		ChipCard:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "card chip")),
		ChipWho:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "spender chip")),
		ChipNeed:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "need chip")),
		ClearFilt:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filters")),
		Autofill:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autofill spender")),
		RenameCat:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename category")),
		DeleteCat:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete category")),
		DeleteAll:  key.NewBinding(key.WithKeys("Z"), key.WithHelp("Z", "delete all")),
		RowsMore:   key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "rows per page")),
		RowsLess:   key.NewBinding(key.WithKeys("-")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import csv")),
		ChartMode:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "monthly/yearly")),
		Reimport:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reimport")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
