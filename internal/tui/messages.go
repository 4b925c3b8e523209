package tui

import (
	"time"

	"github.com/gsapre/housetab/internal/api"
	"github.com/gsapre/housetab/internal/edit"
	"github.com/gsapre/housetab/internal/model"
)

// Messages produced by async commands. Every network call comes back
// through one of these; Update is the only writer of UI state.

type expensesLoadedMsg struct {
	rows []model.Expense
}

type loadFailedMsg struct {
	err error
}

type cachedSnapshotMsg struct {
	rows    []model.Expense
	savedAt time.Time
}

// patchDoneMsg and patchFailedMsg carry the commit they belong to, so
// a late result reconciles exactly the change it was for and never a
// newer in-flight one.
type patchDoneMsg struct {
	commit edit.Commit
}

type patchFailedMsg struct {
	commit edit.Commit
	err    error
}

type deleteDoneMsg struct {
	ids []int64
}

type deleteFailedMsg struct {
	ids []int64
	err error
}

type categoriesLoadedMsg struct {
	cats []model.Category
}

type householdLoadedMsg struct {
	members model.Members
}

type statementsLoadedMsg struct {
	statements []api.Statement
}

type undoDoneMsg struct {
	serverSide bool
}

type undoFailedMsg struct {
	err error
}

type autofillDoneMsg struct {
	updated int
	failed  int
}

type exportDoneMsg struct {
	path string
	rows int
}

type importDoneMsg struct {
	created int
	failed  int
}

type statusMsg struct {
	text  string
	isErr bool
}

type statusClearMsg struct {
	seq int
}
