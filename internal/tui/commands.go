package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gsapre/housetab/internal/config"
	"github.com/gsapre/housetab/internal/csvio"
	"github.com/gsapre/housetab/internal/edit"
	"github.com/gsapre/housetab/internal/model"
)

const callTimeout = 15 * time.Second

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

func (m *Model) loadExpensesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		rows, err := m.client.ListExpenses(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return expensesLoadedMsg{rows: rows}
	}
}

// loadSnapshotCmd pulls the last cached dataset after a failed load.
func (m *Model) loadSnapshotCmd() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		rows, savedAt, err := m.cache.Load(ctx)
		if err != nil || len(rows) == 0 {
			if err != nil {
				m.logger.Warn("snapshot load failed", zap.Error(err))
			}
			return nil
		}
		return cachedSnapshotMsg{rows: rows, savedAt: savedAt}
	}
}

// saveSnapshotCmd persists a fresh dataset; failure is logged only.
func (m *Model) saveSnapshotCmd(rows []model.Expense) tea.Cmd {
	if m.cache == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.cache.Save(ctx, rows); err != nil {
			m.logger.Warn("snapshot save failed", zap.Error(err))
		}
		return nil
	}
}

// patchExpenseCmd persists one committed cell edit. The commit rides
// along in the result message so a late failure reverts exactly the
// change it belongs to.
func (m *Model) patchExpenseCmd(commit edit.Commit) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.UpdateExpense(ctx, commit.Cell.RowID, patchBody(commit)); err != nil {
			return patchFailedMsg{commit: commit, err: err}
		}
		return patchDoneMsg{commit: commit}
	}
}

func (m *Model) deleteExpenseCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.DeleteExpense(ctx, id); err != nil {
			return deleteFailedMsg{ids: []int64{id}, err: err}
		}
		return deleteDoneMsg{ids: []int64{id}}
	}
}

func (m *Model) bulkDeleteCmd(ids []int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		res, err := m.client.BulkDeleteExpenses(ctx, ids)
		if err != nil {
			// Best effort: some rows may be gone. Report and reload.
			return deleteFailedMsg{ids: res.Failed, err: err}
		}
		return deleteDoneMsg{ids: ids}
	}
}

func (m *Model) deleteAllCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.DeleteAllExpenses(ctx); err != nil {
			return deleteFailedMsg{err: err}
		}
		return statusMsg{text: "all expenses deleted"}
	}
}

func (m *Model) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		cats, err := m.client.ListCategories(ctx)
		if err != nil {
			m.logger.Warn("category load failed", zap.Error(err))
			return nil
		}
		return categoriesLoadedMsg{cats: cats}
	}
}

func (m *Model) loadHouseholdCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		members, err := m.client.GetHousehold(ctx)
		if err != nil {
			m.logger.Warn("household load failed", zap.Error(err))
			return nil
		}
		return householdLoadedMsg{members: members}
	}
}

func (m *Model) loadStatementsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		sts, err := m.client.ListStatements(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return statementsLoadedMsg{statements: sts}
	}
}

func (m *Model) reimportStatementCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.ReimportStatement(ctx, id); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("statement %d reimported", id)}
	}
}

func (m *Model) deleteStatementCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.DeleteStatement(ctx, id); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("statement %d deleted", id)}
	}
}

func (m *Model) createCategoryCmd(cat model.Category) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.CreateCategory(ctx, cat); err != nil {
			m.logger.Warn("category create failed", zap.String("name", cat.Name), zap.Error(err))
			return statusMsg{text: fmt.Sprintf("category %q saved locally only: %v", cat.Name, err), isErr: true}
		}
		return nil
	}
}

func (m *Model) renameCategoryCmd(from, to string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.RenameCategory(ctx, from, to); err != nil {
			return statusMsg{text: fmt.Sprintf("rename category: %v", err), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("category %q renamed to %q", from, to)}
	}
}

func (m *Model) deleteCategoryCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.DeleteCategory(ctx, name); err != nil {
			return statusMsg{text: fmt.Sprintf("delete category: %v", err), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("category %q deleted", name)}
	}
}

// savePrefsCmd persists UI preferences changed from inside the app.
func (m *Model) savePrefsCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return statusMsg{text: fmt.Sprintf("save prefs: %v", err), isErr: true}
		}
		return nil
	}
}

func (m *Model) saveHouseholdCmd(members model.Members) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.SaveHousehold(ctx, members); err != nil {
			m.logger.Warn("household save failed", zap.Error(err))
			return statusMsg{text: fmt.Sprintf("household save failed: %v", err), isErr: true}
		}
		return nil
	}
}

// serverUndoCmd tries the server-side undo first; the caller falls
// back to a local checkpoint when it fails.
func (m *Model) serverUndoCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		if err := m.client.Undo(ctx); err != nil {
			return undoFailedMsg{err: err}
		}
		return undoDoneMsg{serverSide: true}
	}
}

// autofillCmd patches the spender of each row, one PATCH per row,
// best effort.
func (m *Model) autofillCmd(ids []int64, who string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		updated, failed := 0, 0
		for _, id := range ids {
			if err := m.client.UpdateExpense(ctx, id, map[string]any{"who": who}); err != nil {
				m.logger.Warn("autofill patch failed", zap.Int64("id", id), zap.Error(err))
				failed++
				continue
			}
			updated++
		}
		return autofillDoneMsg{updated: updated, failed: failed}
	}
}

func (m *Model) exportCmd(rows []model.Expense, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("export: %v", err), isErr: true}
		}
		defer f.Close()
		if err := csvio.Export(f, rows); err != nil {
			return statusMsg{text: fmt.Sprintf("export: %v", err), isErr: true}
		}
		return exportDoneMsg{path: path, rows: len(rows)}
	}
}

func (m *Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("import: %v", err), isErr: true}
		}
		defer f.Close()
		rows, err := csvio.Import(f, m.registry)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("import: %v", err), isErr: true}
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		created, failed := 0, 0
		for _, e := range rows {
			if _, err := m.client.CreateExpense(ctx, e); err != nil {
				m.logger.Warn("import create failed", zap.String("desc", e.Description), zap.Error(err))
				failed++
				continue
			}
			created++
		}
		return importDoneMsg{created: created, failed: failed}
	}
}

// clearStatusAfter clears the status line unless a newer status has
// replaced it.
func clearStatusAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
