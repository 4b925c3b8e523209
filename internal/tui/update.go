package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gsapre/housetab/internal/edit"
	"github.com/gsapre/housetab/internal/model"
	"github.com/gsapre/housetab/internal/view"
)

// Update is the single writer of UI state; async work comes back as
// typed messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case expensesLoadedMsg:
		m.store.Replace(msg.rows)
		m.periods = m.store.AvailablePeriods()
		if m.periodIdx >= len(m.periods) {
			m.periodIdx = -1
			m.store.SetPeriod(view.PeriodAllTime)
		}
		m.stale = false
		return m, tea.Batch(
			m.saveSnapshotCmd(msg.rows),
			m.setStatus(fmt.Sprintf("loaded %d expenses", len(msg.rows)), false),
		)

	case loadFailedMsg:
		// Keep whatever is on screen; try the snapshot if the table
		// is empty.
		cmds := []tea.Cmd{m.setStatus(fmt.Sprintf("load failed: %v", msg.err), true)}
		if len(m.store.Rows()) == 0 {
			cmds = append(cmds, m.loadSnapshotCmd())
		}
		return m, tea.Batch(cmds...)

	case cachedSnapshotMsg:
		m.store.Replace(msg.rows)
		m.periods = m.store.AvailablePeriods()
		m.stale = true
		m.staleAt = msg.savedAt
		return m, nil

	case patchDoneMsg:
		if m.saving != nil && *m.saving == msg.commit {
			m.saving = nil
			m.editCtl.SaveSucceeded()
		}
		return m, m.setStatus("saved", false)

	case patchFailedMsg:
		return m, m.rollbackSave(msg.commit, msg.err)

	case deleteDoneMsg:
		return m, m.setStatus(fmt.Sprintf("deleted %d row(s)", len(msg.ids)), false)

	case deleteFailedMsg:
		// Best effort: resync with the server instead of guessing
		// which rows survived.
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("delete failed: %v", msg.err), true),
			m.loadExpensesCmd(),
		)

	case categoriesLoadedMsg:
		if len(msg.cats) > 0 {
			m.registry.Replace(msg.cats)
		}
		return m, nil

	case householdLoadedMsg:
		if len(msg.members.Names) > 0 {
			m.members = msg.members
		}
		return m, nil

	case statementsLoadedMsg:
		m.statements = msg.statements
		if m.stCursor >= len(m.statements) {
			m.stCursor = 0
		}
		return m, nil

	case undoDoneMsg:
		return m, tea.Batch(
			m.setStatus("undone", false),
			m.loadExpensesCmd(),
		)

	case undoFailedMsg:
		// Server undo unavailable: fall back to the local checkpoint.
		cp, ok := m.undoes.Pop()
		if !ok {
			return m, m.setStatus(fmt.Sprintf("undo failed: %v", msg.err), true)
		}
		m.store.Replace(cp.Rows)
		m.periods = m.store.AvailablePeriods()
		return m, m.setStatus(fmt.Sprintf("restored local checkpoint (%s)", cp.Label), false)

	case autofillDoneMsg:
		text := fmt.Sprintf("autofilled %d row(s)", msg.updated)
		if msg.failed > 0 {
			text = fmt.Sprintf("autofilled %d row(s), %d failed", msg.updated, msg.failed)
		}
		return m, tea.Batch(m.setStatus(text, msg.failed > 0), m.loadExpensesCmd())

	case exportDoneMsg:
		return m, m.setStatus(fmt.Sprintf("exported %d row(s) to %s", msg.rows, msg.path), false)

	case importDoneMsg:
		text := fmt.Sprintf("imported %d row(s)", msg.created)
		if msg.failed > 0 {
			text = fmt.Sprintf("imported %d row(s), %d failed", msg.created, msg.failed)
		}
		return m, tea.Batch(m.setStatus(text, msg.failed > 0), m.loadExpensesCmd())

	case statusMsg:
		return m, m.setStatus(msg.text, msg.isErr)

	case statusClearMsg:
		if msg.seq == m.statusSeq && !m.statusErr {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.uiMode {
		case modeEditing:
			return m.updateEditing(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeRenameCat:
			return m.updateRenameCat(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.uiMode = modeNormal
		m.search.Blur()
		m.search.SetValue("")
		c := m.store.Criteria()
		c.Description = ""
		m.store.SetCriteria(c)
		return m, nil
	case "enter":
		m.uiMode = modeNormal
		m.search.Blur()
		c := m.store.Criteria()
		c.Description = strings.TrimSpace(m.search.Value())
		m.store.SetCriteria(c)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// updateRenameCat drives the rename-category prompt. The server
// rewrites rows referencing the old name; local rows are renamed
// optimistically.
func (m *Model) updateRenameCat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.uiMode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		from, to := m.renameFrom, strings.TrimSpace(m.input.Value())
		m.uiMode = modeNormal
		m.input.Blur()
		if to == "" || to == from {
			return m, nil
		}
		if err := m.registry.Rename(from, to); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		for _, e := range m.store.Rows() {
			if e.Category == from {
				m.store.Update(e.ID, func(ex *model.Expense) { ex.Category = to })
			}
		}
		return m, tea.Sequence(m.renameCategoryCmd(from, to), m.loadCategoriesCmd())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editCtl.Cancel()
		m.uiMode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		m.editCtl.Input(m.input.Value())
		return m.finishCommit(m.editCtl.Commit())
	case "up", "down":
		// Focus is leaving the cell: commit what is there, then move.
		m.editCtl.Input(m.input.Value())
		mdl, cmd := m.finishCommit(m.editCtl.Commit())
		mm := mdl.(*Model)
		if msg.String() == "up" && mm.cursor > 0 {
			mm.cursor--
		}
		if msg.String() == "down" && mm.cursor < len(mm.store.Visible())-1 {
			mm.cursor++
		}
		return mm, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// finishCommit handles the result of Commit/Blur: optimistic store
// update plus a PATCH, or a validation message.
func (m *Model) finishCommit(commit edit.Commit, ok bool, err error) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, edit.ErrAddCategory):
		// Suspend: clear the sentinel so the user can type the new
		// category name in place.
		m.input.SetValue("")
		return m, m.setStatus("type the new category name and press enter", false)
	case errors.Is(err, edit.ErrCustomWho):
		m.input.SetValue("")
		return m, m.setStatus("type the spender name and press enter", false)
	case err != nil:
		if m.editCtl.State() != edit.StateEditing {
			// Validation failure: the edit was abandoned and the cell
			// shows its original content again.
			m.uiMode = modeNormal
			m.input.Blur()
		}
		return m, m.setStatus(err.Error(), true)
	case !ok:
		m.uiMode = modeNormal
		m.input.Blur()
		return m, nil
	}

	m.uiMode = modeNormal
	m.input.Blur()
	m.saving = &commit

	// Optimistic apply; rolled back if the PATCH fails.
	m.store.Update(commit.Cell.RowID, func(e *model.Expense) {
		applyField(e, commit.Cell.Field, commit.Value)
	})

	cmds := []tea.Cmd{m.patchExpenseCmd(commit)}

	// Side effects of specific fields.
	switch commit.Cell.Field {
	case edit.FieldCategory:
		if _, known := m.registry.Lookup(commit.Value); !known {
			if err := m.registry.Add(model.Category{Name: commit.Value}); err == nil {
				cat, _ := m.registry.Lookup(commit.Value)
				cmds = append(cmds, m.createCategoryCmd(cat))
			}
		}
	case edit.FieldWho:
		if !m.members.Contains(commit.Value) {
			if suggestion, okS := m.members.Suggest(commit.Value, 2); okS {
				cmds = append(cmds, m.setStatus(fmt.Sprintf("saved; did you mean %q?", suggestion), false))
			} else {
				m.members.Add(commit.Value)
				cmds = append(cmds, m.saveHouseholdCmd(m.members))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// rollbackSave reverts the optimistic change of a failed PATCH. The
// commit comes from the failure message itself, so a stale failure
// reverts its own change and never a newer in-flight one.
func (m *Model) rollbackSave(commit edit.Commit, cause error) tea.Cmd {
	if m.saving != nil && *m.saving == commit {
		m.saving = nil
		m.editCtl.SaveFailed()
		m.editCtl.Reverted()
	}
	m.store.Update(commit.Cell.RowID, func(e *model.Expense) {
		applyField(e, commit.Cell.Field, commit.Original)
	})
	return m.setStatus(fmt.Sprintf("save failed, reverted: %v", cause), true)
}

// patchBody builds the PATCH payload for one field. Amounts go over
// the wire as numbers when they parse.
func patchBody(commit edit.Commit) map[string]any {
	field := string(commit.Cell.Field)
	if commit.Cell.Field == edit.FieldAmount {
		if v, err := strconv.ParseFloat(strings.TrimSpace(commit.Value), 64); err == nil {
			return map[string]any{field: v}
		}
	}
	return map[string]any{field: commit.Value}
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextTab):
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil
	case key.Matches(msg, keys.PrevTab):
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil

	case key.Matches(msg, keys.Refresh):
		return m, tea.Batch(m.loadExpensesCmd(), m.loadStatementsCmd())

	case key.Matches(msg, keys.Undo):
		return m, m.serverUndoCmd()

	case key.Matches(msg, keys.Export):
		return m, m.exportCmd(m.store.Visible(), exportPath)
	case key.Matches(msg, keys.Import):
		return m, m.importCmd(importPath)
	}

	switch m.activeTab {
	case tabExpenses:
		return m.updateExpensesTab(msg)
	case tabCharts:
		if key.Matches(msg, m.keys.ChartMode) {
			m.chartYearly = !m.chartYearly
			return m, nil
		}
	case tabStatements:
		return m.updateStatementsTab(msg)
	}
	return m, nil
}

func (m *Model) updateExpensesTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	rows := m.store.Visible()

	// Any key except the armed one disarms a pending confirmation.
	if m.confirm != "" && !key.Matches(msg, keys.DeleteCat) && !key.Matches(msg, keys.DeleteAll) {
		m.confirm = ""
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, keys.Right):
		if m.col < len(editColumns)-1 {
			m.col++
		}
	case key.Matches(msg, keys.Top):
		m.cursor = 0
	case key.Matches(msg, keys.Bottom):
		if len(rows) > 0 {
			m.cursor = len(rows) - 1
		}

	case key.Matches(msg, keys.Edit):
		return m.beginEdit()

	case key.Matches(msg, keys.ToggleNeed):
		return m.toggleNeed()

	case key.Matches(msg, keys.Select):
		if e, ok := m.rowUnderCursor(); ok {
			m.store.ToggleSelect(e.ID)
		}
	case key.Matches(msg, keys.ClearSel):
		m.store.ClearSelection()

	case key.Matches(msg, keys.Delete):
		if e, ok := m.rowUnderCursor(); ok {
			m.undoes.Push("delete row", m.store.Rows())
			m.store.Delete(e.ID)
			return m, m.deleteExpenseCmd(e.ID)
		}
	case key.Matches(msg, keys.BulkDelete):
		ids := m.store.Selected()
		if len(ids) == 0 {
			return m, m.setStatus("no rows selected", false)
		}
		m.undoes.Push(fmt.Sprintf("bulk delete %d rows", len(ids)), m.store.Rows())
		m.store.Delete(ids...)
		return m, m.bulkDeleteCmd(ids)

	case key.Matches(msg, keys.Search):
		m.uiMode = modeSearch
		m.search.SetValue(m.store.Criteria().Description)
		return m, m.search.Focus()

	case key.Matches(msg, keys.SortNext):
		dir := m.store.SortDirective()
		next := 0
		for i, col := range sortColumns {
			if col == dir.Column {
				next = (i + 1) % len(sortColumns)
				break
			}
		}
		m.store.SortBy(sortColumns[next])
	case key.Matches(msg, keys.SortFlip):
		if dir := m.store.SortDirective(); dir.Column != "" {
			m.store.SortBy(dir.Column)
		}

	case key.Matches(msg, keys.Period):
		m.periodIdx++
		if m.periodIdx >= len(m.periods) {
			m.periodIdx = -1
		}
		if m.periodIdx < 0 {
			m.store.SetPeriod(view.PeriodAllTime)
		} else {
			m.store.SetPeriod(m.periods[m.periodIdx])
		}

	case key.Matches(msg, keys.ChipCat):
		m.chipCat = m.cycleChip(m.chipCat, len(m.topCategories()))
		m.applyChips()
	case key.Matches(msg, keys.ChipCard):
		m.chipCard = m.cycleChip(m.chipCard, len(m.topCards()))
		m.applyChips()
	case key.Matches(msg, keys.ChipWho):
		m.chipWho = m.cycleChip(m.chipWho, len(m.topSpenders()))
		m.applyChips()
	case key.Matches(msg, keys.ChipNeed):
		m.chipNeed = m.cycleChip(m.chipNeed, 2)
		m.applyChips()

	case key.Matches(msg, keys.ClearFilt):
		m.chipCat, m.chipCard, m.chipWho, m.chipNeed = -1, -1, -1, -1
		m.search.SetValue("")
		m.store.ClearFilters()

	case key.Matches(msg, keys.Autofill):
		return m.autofill()

	case key.Matches(msg, keys.RenameCat):
		if e, ok := m.rowUnderCursor(); ok && e.Category != "" {
			m.renameFrom = e.Category
			m.uiMode = modeRenameCat
			m.input.SetValue(e.Category)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}

	case key.Matches(msg, keys.DeleteCat):
		e, ok := m.rowUnderCursor()
		if !ok || e.Category == "" {
			return m, nil
		}
		tag := "delete-category:" + e.Category
		if m.confirm != tag {
			m.confirm = tag
			return m, m.setStatus(fmt.Sprintf("press X again to delete category %q", e.Category), false)
		}
		m.confirm = ""
		name := e.Category
		m.registry.Remove(name)
		for _, row := range m.store.Rows() {
			if row.Category == name {
				m.store.Update(row.ID, func(ex *model.Expense) { ex.Category = "" })
			}
		}
		return m, tea.Sequence(m.deleteCategoryCmd(name), m.loadCategoriesCmd(), m.loadExpensesCmd())

	case key.Matches(msg, keys.DeleteAll):
		if m.confirm != "delete-all" {
			m.confirm = "delete-all"
			return m, m.setStatus("press Z again to delete ALL expenses", false)
		}
		m.confirm = ""
		m.undoes.Push("delete all expenses", m.store.Rows())
		m.store.Replace(nil)
		return m, m.deleteAllCmd()

	case key.Matches(msg, keys.RowsMore):
		return m, m.adjustRowsPerPage(5)
	case key.Matches(msg, keys.RowsLess):
		return m, m.adjustRowsPerPage(-5)
	}
	return m, nil
}

// adjustRowsPerPage resizes the page within bounds and persists the
// preference.
func (m *Model) adjustRowsPerPage(delta int) tea.Cmd {
	n := m.cfg.UI.RowsPerPage + delta
	if n < 5 {
		n = 5
	}
	if n > 50 {
		n = 50
	}
	if n == m.cfg.UI.RowsPerPage {
		return nil
	}
	m.cfg.UI.RowsPerPage = n
	return tea.Batch(
		m.setStatus(fmt.Sprintf("%d rows per page", n), false),
		m.savePrefsCmd(m.cfg),
	)
}

func (m *Model) cycleChip(cur, n int) int {
	if n == 0 {
		return -1
	}
	cur++
	if cur >= n {
		return -1
	}
	return cur
}

// applyChips rebuilds the exact-match criteria from the active chips,
// keeping the free-text search.
func (m *Model) applyChips() {
	c := view.Criteria{Description: m.store.Criteria().Description}
	if cats := m.topCategories(); m.chipCat >= 0 && m.chipCat < len(cats) {
		c.Category = cats[m.chipCat].Key
	}
	if cards := m.topCards(); m.chipCard >= 0 && m.chipCard < len(cards) {
		c.Card = cards[m.chipCard].Key
	}
	if whos := m.topSpenders(); m.chipWho >= 0 && m.chipWho < len(whos) {
		c.Who = whos[m.chipWho].Key
	}
	switch m.chipNeed {
	case 0:
		c.Need = model.NeedCategoryNeed
	case 1:
		c.Need = model.NeedCategoryLuxury
	}
	m.store.SetCriteria(c)
}

// Chip sources: ranked over the full dataset, not the filtered view,
// so the chips don't vanish as they are applied.
func (m *Model) topCategories() []view.GroupSum {
	return view.TopN(view.ByCategory(m.store.Rows()), 4)
}

func (m *Model) topCards() []view.GroupSum {
	return view.TopN(view.ByCard(m.store.Rows()), 2)
}

func (m *Model) topSpenders() []view.GroupSum {
	return view.TopN(view.ByWho(m.store.Rows()), 2)
}

func (m *Model) beginEdit() (tea.Model, tea.Cmd) {
	e, ok := m.rowUnderCursor()
	if !ok {
		return m, nil
	}
	field := editColumns[m.col]
	if field == edit.FieldNeed {
		// Need/luxury is a toggle, not a text edit.
		return m.toggleNeed()
	}
	cell := edit.Cell{RowID: e.ID, Field: field}
	if forced, err := m.editCtl.Begin(cell, cellValue(e, field)); err != nil {
		if forced != nil {
			// A previous edit was force-committed; persist it first.
			m.saving = forced
			m.store.Update(forced.Cell.RowID, func(ex *model.Expense) {
				applyField(ex, forced.Cell.Field, forced.Value)
			})
			return m, m.patchExpenseCmd(*forced)
		}
		return m, m.setStatus(err.Error(), true)
	}
	m.uiMode = modeEditing
	m.input.SetValue(cellValue(e, field))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// toggleNeed commits a need/luxury flip immediately. Immediate
// commits honor the same single-active-edit rule as cell edits: while
// a save is in flight the toggle is refused, so two PATCHes for the
// same cell can never overlap.
func (m *Model) toggleNeed() (tea.Model, tea.Cmd) {
	if m.saving != nil || m.editCtl.State() != edit.StateIdle {
		return m, m.setStatus("previous save still in progress", true)
	}
	e, ok := m.rowUnderCursor()
	if !ok {
		return m, nil
	}
	next := model.ToggleNeed(e.NeedCategory)
	if err := edit.Validate(edit.FieldNeed, next); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	prev, _ := m.store.Update(e.ID, func(ex *model.Expense) { ex.NeedCategory = next })
	commit := edit.Commit{
		Cell:     edit.Cell{RowID: e.ID, Field: edit.FieldNeed},
		Value:    next,
		Original: prev.NeedCategory,
	}
	m.saving = &commit
	return m, m.patchExpenseCmd(commit)
}

// autofill fills the spender of the selected rows, or of every
// visible row without one, with the default spender.
func (m *Model) autofill() (tea.Model, tea.Cmd) {
	who := m.members.DefaultSpender
	if who == "" && len(m.members.Names) > 0 {
		who = m.members.Names[0]
	}
	if who == "" {
		return m, m.setStatus("no household members configured", true)
	}

	var ids []int64
	if sel := m.store.Selected(); len(sel) > 0 {
		ids = sel
	} else {
		for _, e := range m.store.Visible() {
			if strings.TrimSpace(e.Who) == "" {
				ids = append(ids, e.ID)
			}
		}
	}
	if len(ids) == 0 {
		return m, m.setStatus("nothing to autofill", false)
	}
	return m, tea.Batch(
		m.setStatus(fmt.Sprintf("autofilling %d row(s) as %s", len(ids), who), false),
		m.autofillCmd(ids, who),
	)
}

func (m *Model) updateStatementsTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Up):
		if m.stCursor > 0 {
			m.stCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.stCursor < len(m.statements)-1 {
			m.stCursor++
		}
	case key.Matches(msg, keys.Reimport):
		if m.stCursor < len(m.statements) {
			return m, tea.Sequence(
				m.reimportStatementCmd(m.statements[m.stCursor].ID),
				m.loadExpensesCmd(),
			)
		}
	case key.Matches(msg, keys.Delete):
		if m.stCursor < len(m.statements) {
			m.undoes.Push("delete statement", m.store.Rows())
			return m, tea.Sequence(
				m.deleteStatementCmd(m.statements[m.stCursor].ID),
				m.loadStatementsCmd(),
				m.loadExpensesCmd(),
			)
		}
	}
	return m, nil
}
