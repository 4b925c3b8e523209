package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gsapre/housetab/internal/config"
	"github.com/gsapre/housetab/internal/edit"
	"github.com/gsapre/housetab/internal/model"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.Config{}
	cfg.UI.CurrencySymbol = "$"
	cfg.UI.RowsPerPage = 20
	return New(cfg, nil, nil, nil)
}

func testRows() []model.Expense {
	return []model.Expense{
		{ID: 1, Date: "2025-03-01", Description: "groceries", Amount: "82.50", Category: "Groceries", Card: "Visa", Who: "Gargi"},
		{ID: 2, Date: "2025-03-05", Description: "uber", Amount: "19.90", Category: "Transport", Card: "Amex", Who: "Rohan", NeedCategory: "Luxury"},
		{ID: 3, Date: "2025-02-14", Description: "dinner", Amount: "120.00", Category: "Dining", Card: "Visa", Who: ""},
	}
}

func TestPad(t *testing.T) {
	if got := pad("abc", 5); got != "abc  " {
		t.Errorf("pad short = %q", got)
	}
	if got := pad("abcdef", 4); got != "abc…" {
		t.Errorf("pad long = %q", got)
	}
	// Double-width glyphs count as two display cells.
	if got := pad("日本", 5); got != "日本 " {
		t.Errorf("pad wide = %q", got)
	}
	if got := pad("日本語です", 4); got != "日… " {
		t.Errorf("pad wide truncate = %q", got)
	}
}

func TestCycleChip(t *testing.T) {
	m := testModel(t)
	if got := m.cycleChip(-1, 3); got != 0 {
		t.Errorf("off -> %d", got)
	}
	if got := m.cycleChip(2, 3); got != -1 {
		t.Errorf("last -> %d", got)
	}
	if got := m.cycleChip(-1, 0); got != -1 {
		t.Errorf("empty list -> %d", got)
	}
}

func TestPatchBody(t *testing.T) {
	c := edit.Commit{Cell: edit.Cell{RowID: 1, Field: edit.FieldAmount}, Value: "25.00"}
	body := patchBody(c)
	if body["amount"] != 25.0 {
		t.Errorf("amount body = %#v", body)
	}
	c = edit.Commit{Cell: edit.Cell{RowID: 1, Field: edit.FieldDescription}, Value: "coffee"}
	body = patchBody(c)
	if body["description"] != "coffee" {
		t.Errorf("description body = %#v", body)
	}
}

func TestCellValueApplyFieldRoundTrip(t *testing.T) {
	var e model.Expense
	for _, f := range editColumns {
		if f == edit.FieldNeed {
			continue // Need reads through a default
		}
		applyField(&e, f, "value-"+string(f))
		if got := cellValue(e, f); got != "value-"+string(f) {
			t.Errorf("field %s = %q", f, got)
		}
	}
	applyField(&e, edit.FieldNeed, model.NeedCategoryLuxury)
	if cellValue(e, edit.FieldNeed) != model.NeedCategoryLuxury {
		t.Error("need field round trip failed")
	}
}

func TestOptimisticEditRollsBackOnSaveFailure(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 0
	m.col = 2 // amount

	if _, cmd := m.beginEdit(); cmd == nil {
		t.Fatal("begin edit returned no focus cmd")
	}
	if m.uiMode != modeEditing {
		t.Fatalf("mode = %d", m.uiMode)
	}

	m.input.SetValue("999.00")
	_, cmd := m.updateEditing(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("commit produced no patch cmd")
	}

	// Optimistic value visible immediately.
	row, _ := m.store.Get(1)
	if string(row.Amount) != "999.00" {
		t.Fatalf("optimistic amount = %q", row.Amount)
	}
	if m.saving == nil {
		t.Fatal("no in-flight commit recorded")
	}

	// The PATCH fails: the change is rolled back.
	failed := *m.saving
	m.Update(patchFailedMsg{commit: failed, err: errTest})
	row, _ = m.store.Get(1)
	if string(row.Amount) != "82.50" {
		t.Errorf("rolled-back amount = %q", row.Amount)
	}
	if m.editCtl.State() != edit.StateIdle {
		t.Errorf("controller state = %s", m.editCtl.State())
	}
	if !m.statusErr {
		t.Error("failure not surfaced on the status line")
	}
}

func TestEditValidationRevertsCellNeverPatches(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 0
	m.col = 2 // amount

	m.beginEdit()
	m.input.SetValue("not a number")
	m.updateEditing(tea.KeyMsg{Type: tea.KeyEnter})

	// The edit is abandoned: the cell shows its original content.
	if m.uiMode != modeNormal {
		t.Error("invalid commit should abandon the edit")
	}
	if m.editCtl.State() != edit.StateIdle {
		t.Errorf("controller state = %s", m.editCtl.State())
	}
	if m.saving != nil {
		t.Error("invalid value produced an in-flight commit")
	}
	row, _ := m.store.Get(1)
	if string(row.Amount) != "82.50" {
		t.Errorf("store mutated by invalid edit: %q", row.Amount)
	}
	if !m.statusErr {
		t.Error("validation failure not surfaced")
	}
}

func TestToggleNeedCommitsImmediately(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 0

	_, cmd := m.toggleNeed()
	if cmd == nil {
		t.Fatal("toggle produced no patch cmd")
	}
	row, _ := m.store.Get(1)
	if row.NeedCategory != model.NeedCategoryLuxury {
		t.Errorf("need = %q", row.NeedCategory)
	}
	if m.saving == nil || m.saving.Cell.Field != edit.FieldNeed {
		t.Errorf("in-flight commit = %+v", m.saving)
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRapidNeedTogglesSerialize(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 0

	m.toggleNeed()
	if m.saving == nil {
		t.Fatal("first toggle recorded no in-flight commit")
	}
	first := *m.saving

	// A second toggle before the first PATCH lands is refused: only
	// one PATCH per cell can ever be in flight.
	m.toggleNeed()
	if m.saving == nil || *m.saving != first {
		t.Fatalf("in-flight commit replaced: %+v", m.saving)
	}
	row, _ := m.store.Get(1)
	if row.Need() != model.NeedCategoryLuxury {
		t.Errorf("second toggle mutated the row: %q", row.Need())
	}
	if !m.statusErr {
		t.Error("refused toggle not surfaced")
	}

	// The failure of the first PATCH reverts it; client and server
	// agree on the original value again.
	m.Update(patchFailedMsg{commit: first, err: errTest})
	row, _ = m.store.Get(1)
	if row.Need() != model.NeedCategoryNeed {
		t.Errorf("need after revert = %q", row.Need())
	}
	if m.saving != nil {
		t.Error("in-flight slot not cleared")
	}
}

func TestLateFailureRevertsOnlyItsOwnCommit(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 0

	m.toggleNeed()
	needCommit := *m.saving

	m.col = 2 // amount
	m.beginEdit()
	m.input.SetValue("999.00")
	m.updateEditing(tea.KeyMsg{Type: tea.KeyEnter})
	amountCommit := *m.saving

	// The toggle's PATCH fails late: only the need flag reverts, the
	// newer amount save stays in flight.
	m.Update(patchFailedMsg{commit: needCommit, err: errTest})
	row, _ := m.store.Get(1)
	if row.Need() != model.NeedCategoryNeed {
		t.Errorf("need after revert = %q", row.Need())
	}
	if string(row.Amount) != "999.00" {
		t.Errorf("amount edit clobbered by unrelated rollback: %q", row.Amount)
	}
	if m.saving == nil || *m.saving != amountCommit {
		t.Fatal("newer in-flight commit dropped")
	}
	if m.editCtl.State() != edit.StateSaving {
		t.Errorf("controller state = %s", m.editCtl.State())
	}

	// The amount PATCH then lands.
	m.Update(patchDoneMsg{commit: amountCommit})
	if m.saving != nil || m.editCtl.State() != edit.StateIdle {
		t.Error("completed save not cleared")
	}
}

func TestChipsBuildCriteria(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())

	m.chipCat = 0 // top category by sum: Dining (120)
	m.applyChips()
	if got := m.store.Criteria().Category; got != "Dining" {
		t.Errorf("category chip = %q", got)
	}

	m.chipNeed = 1
	m.applyChips()
	c := m.store.Criteria()
	if c.Need != model.NeedCategoryLuxury || c.Category != "Dining" {
		t.Errorf("criteria = %+v", c)
	}

	m.chipCat, m.chipNeed = -1, -1
	m.applyChips()
	if !m.store.Criteria().IsZero() {
		t.Errorf("cleared chips left criteria %+v", m.store.Criteria())
	}
}

func TestCachedSnapshotMarksStale(t *testing.T) {
	m := testModel(t)
	savedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.Update(cachedSnapshotMsg{rows: testRows(), savedAt: savedAt})
	if !m.stale || !m.staleAt.Equal(savedAt) {
		t.Errorf("stale = %v at %v", m.stale, m.staleAt)
	}

	m.Update(expensesLoadedMsg{rows: testRows()})
	if m.stale {
		t.Error("fresh load should clear staleness")
	}
}

func TestDeletePushesCheckpoint(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 1

	_, cmd := m.updateExpensesTab(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("delete produced no cmd")
	}
	if _, ok := m.store.Get(2); ok {
		t.Error("row not removed optimistically")
	}
	cp, ok := m.undoes.Peek()
	if !ok || len(cp.Rows) != 3 {
		t.Errorf("checkpoint = %+v, %v", cp, ok)
	}

	// Server undo failed: the checkpoint restores the dataset.
	m.Update(undoFailedMsg{err: errTest})
	if _, ok := m.store.Get(2); !ok {
		t.Error("local undo did not restore the row")
	}
}

func TestRenameCategoryFlow(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 0 // Groceries

	_, cmd := m.updateExpensesTab(keyRune('e'))
	if m.uiMode != modeRenameCat || cmd == nil {
		t.Fatalf("rename prompt not opened (mode %d)", m.uiMode)
	}
	m.input.SetValue("Food")
	_, cmd = m.updateRenameCat(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("rename produced no cmd")
	}
	if m.uiMode != modeNormal {
		t.Errorf("mode = %d", m.uiMode)
	}
	row, _ := m.store.Get(1)
	if row.Category != "Food" {
		t.Errorf("row category = %q", row.Category)
	}
	if _, ok := m.registry.Lookup("Food"); !ok {
		t.Error("registry missing renamed category")
	}
	if _, ok := m.registry.Lookup("Groceries"); ok {
		t.Error("old category still registered")
	}
}

func TestDeleteCategoryRequiresConfirm(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())
	m.cursor = 0 // Groceries

	m.updateExpensesTab(keyRune('X'))
	if _, ok := m.registry.Lookup("Groceries"); !ok {
		t.Fatal("first press should only arm the confirm")
	}

	_, cmd := m.updateExpensesTab(keyRune('X'))
	if cmd == nil {
		t.Fatal("confirmed delete produced no cmd")
	}
	if _, ok := m.registry.Lookup("Groceries"); ok {
		t.Error("category still registered")
	}
	row, _ := m.store.Get(1)
	if row.Category != "" {
		t.Errorf("row category = %q", row.Category)
	}
}

func TestDeleteAllRequiresConfirm(t *testing.T) {
	m := testModel(t)
	m.store.Replace(testRows())

	m.updateExpensesTab(keyRune('Z'))
	if len(m.store.Rows()) != 3 {
		t.Fatal("first press should only arm the confirm")
	}

	// Any other key disarms the confirmation.
	m.updateExpensesTab(keyRune('j'))
	m.updateExpensesTab(keyRune('Z'))
	if len(m.store.Rows()) != 3 {
		t.Fatal("wipe ran without a fresh confirm")
	}

	_, cmd := m.updateExpensesTab(keyRune('Z'))
	if cmd == nil {
		t.Fatal("confirmed wipe produced no cmd")
	}
	if len(m.store.Rows()) != 0 {
		t.Error("rows not cleared optimistically")
	}
	if cp, ok := m.undoes.Peek(); !ok || len(cp.Rows) != 3 {
		t.Errorf("checkpoint = %+v, %v", cp, ok)
	}
}

func TestAdjustRowsPerPageBounds(t *testing.T) {
	m := testModel(t)
	if cmd := m.adjustRowsPerPage(5); cmd == nil || m.cfg.UI.RowsPerPage != 25 {
		t.Errorf("rows per page = %d", m.cfg.UI.RowsPerPage)
	}
	m.cfg.UI.RowsPerPage = 50
	if cmd := m.adjustRowsPerPage(5); cmd != nil || m.cfg.UI.RowsPerPage != 50 {
		t.Errorf("upper bound not enforced: %d", m.cfg.UI.RowsPerPage)
	}
	m.cfg.UI.RowsPerPage = 5
	if cmd := m.adjustRowsPerPage(-5); cmd != nil || m.cfg.UI.RowsPerPage != 5 {
		t.Errorf("lower bound not enforced: %d", m.cfg.UI.RowsPerPage)
	}
}

type testErr string

func (e testErr) Error() string { return string(e) }

var errTest = testErr("boom")
