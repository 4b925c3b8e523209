// Package tui is the terminal front end: an expense table with
// inline editing, summary cards, charts, and statement management.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gsapre/housetab/internal/api"
	"github.com/gsapre/housetab/internal/cache"
	"github.com/gsapre/housetab/internal/config"
	"github.com/gsapre/housetab/internal/edit"
	"github.com/gsapre/housetab/internal/model"
	"github.com/gsapre/housetab/internal/undo"
	"github.com/gsapre/housetab/internal/view"
)

type tab int

const (
	tabExpenses tab = iota
	tabSummary
	tabCharts
	tabStatements
	tabCount
)

type mode int

const (
	modeNormal mode = iota
	modeEditing
	modeSearch
	modeRenameCat
)

// Editable columns in display order.
var editColumns = []edit.Field{
	edit.FieldDate,
	edit.FieldDescription,
	edit.FieldAmount,
	edit.FieldCategory,
	edit.FieldNeed,
	edit.FieldCard,
	edit.FieldWho,
	edit.FieldNotes,
}

// Sort comparator column names, index-aligned with editColumns.
var sortColumns = []string{
	view.ColDate,
	view.ColDescription,
	view.ColAmount,
	view.ColCategory,
	view.ColNeed,
	view.ColCard,
	view.ColWho,
	view.ColNotes,
}

const (
	exportPath = "housetab-export.csv"
	importPath = "housetab-import.csv"
)

// Model is the Bubble Tea model for the whole app.
type Model struct {
	cfg    config.Config
	keys   keyMap
	logger *zap.Logger

	client *api.Client
	cache  *cache.Cache

	store    *view.Store
	editCtl  *edit.Controller
	undoes   undo.Stack
	registry *model.Registry
	members  model.Members

	activeTab tab
	uiMode    mode

	// expenses tab
	cursor int
	col    int
	input  textinput.Model
	search textinput.Model

	// the commit currently in flight, if any
	saving *edit.Commit

	// armed two-step confirmation, cleared by any other key
	confirm string

	// category being renamed while in modeRenameCat
	renameFrom string

	// quick-filter chips: -1 means off, otherwise an index into the
	// corresponding top-N list.
	chipCat  int
	chipCard int
	chipWho  int
	chipNeed int

	periods   []string
	periodIdx int // -1 = all time

	chartYearly bool

	statements []api.Statement
	stCursor   int

	// stale is set while the table shows a cached snapshot instead
	// of live data.
	stale   bool
	staleAt time.Time

	status    string
	statusErr bool
	statusSeq int

	width  int
	height int
}

// New wires the app model. snap may be nil when the snapshot db
// could not be opened; everything else is required.
func New(cfg config.Config, client *api.Client, snap *cache.Cache, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry, err := model.DefaultRegistry()
	if err != nil {
		// The built-in category TOML is compiled in; failing to
		// parse it is a programming error.
		panic(err)
	}

	input := textinput.New()
	input.CharLimit = 120
	search := textinput.New()
	search.Placeholder = "search description"
	search.CharLimit = 80

	m := &Model{
		cfg:       cfg,
		keys:      defaultKeyMap(),
		logger:    logger,
		client:    client,
		cache:     snap,
		store:     view.NewStore(),
		editCtl:   edit.NewController(),
		registry:  registry,
		members:   model.DefaultMembers(),
		chipCat:   -1,
		chipCard:  -1,
		chipWho:   -1,
		chipNeed:  -1,
		periodIdx: -1,
		input:     input,
		search:    search,
	}
	m.store.Subscribe(m.clampCursor)
	return m
}

// Init loads everything the UI needs up front.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadExpensesCmd(),
		m.loadCategoriesCmd(),
		m.loadHouseholdCmd(),
		m.loadStatementsCmd(),
	)
}

func (m *Model) clampCursor() {
	n := len(m.store.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// rowUnderCursor returns the visible row the cursor is on.
func (m *Model) rowUnderCursor() (model.Expense, bool) {
	rows := m.store.Visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return model.Expense{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	if isErr {
		m.logger.Warn("status", zap.String("text", text))
		return nil
	}
	return clearStatusAfter(m.statusSeq, 5*time.Second)
}

// cellValue reads the current value of an editable field.
func cellValue(e model.Expense, f edit.Field) string {
	switch f {
	case edit.FieldDate:
		return e.Date
	case edit.FieldDescription:
		return e.Description
	case edit.FieldAmount:
		return string(e.Amount)
	case edit.FieldCategory:
		return e.Category
	case edit.FieldNeed:
		return e.Need()
	case edit.FieldCard:
		return e.Card
	case edit.FieldWho:
		return e.Who
	case edit.FieldNotes:
		return e.Notes
	default:
		return ""
	}
}

// applyField writes a field value onto a row.
func applyField(e *model.Expense, f edit.Field, v string) {
	switch f {
	case edit.FieldDate:
		e.Date = v
	case edit.FieldDescription:
		e.Description = v
	case edit.FieldAmount:
		e.Amount = model.RawAmount(v)
	case edit.FieldCategory:
		e.Category = v
	case edit.FieldNeed:
		e.NeedCategory = v
	case edit.FieldCard:
		e.Card = v
	case edit.FieldWho:
		e.Who = v
	case edit.FieldNotes:
		e.Notes = v
	}
}
