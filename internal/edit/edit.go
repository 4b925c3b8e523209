// Package edit runs the inline cell edit lifecycle: one active cell
// at a time, validated locally, persisted optimistically, rolled back
// on failure.
package edit

import (
	"errors"
	"fmt"
)

// State of the controller.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSaving
	StateReverting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateReverting:
		return "reverting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Editable fields.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldCategory    Field = "category"
	FieldNeed        Field = "need_category"
	FieldCard        Field = "card"
	FieldWho         Field = "who"
	FieldNotes       Field = "notes"
)

// Dropdown sentinels. WhoCustom switches the spender dropdown to
// free-text entry; CategoryAddNew suspends the edit and opens the
// add-category flow.
const (
	WhoCustom      = "__custom__"
	CategoryAddNew = "__add_new__"
)

// ErrAddCategory signals that the user picked the add-category
// sentinel; the edit stays open while the category flow runs.
var ErrAddCategory = errors.New("add-category flow requested")

// ErrCustomWho signals that the user picked the custom-spender
// sentinel; the caller switches the cell to free-text entry.
var ErrCustomWho = errors.New("custom spender entry requested")

// Cell identifies one editable table cell.
type Cell struct {
	RowID int64
	Field Field
}

// Commit is a validated value ready to persist.
type Commit struct {
	Cell     Cell
	Value    string
	Original string
}

// Controller is the single process-wide edit state machine. It is
// not safe for concurrent use; the UI event loop owns it.
type Controller struct {
	state    State
	cell     Cell
	original string
	pending  string
}

// NewController starts idle.
func NewController() *Controller {
	return &Controller{state: StateIdle}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// ActiveCell returns the cell being edited or saved, if any.
func (c *Controller) ActiveCell() (Cell, bool) {
	if c.state == StateIdle {
		return Cell{}, false
	}
	return c.cell, true
}

// Pending returns the in-progress value of the active edit.
func (c *Controller) Pending() string { return c.pending }

// Begin opens a cell for editing. If another cell is already open,
// its edit is force-committed first: Begin returns that cell's commit
// (nil when the old value was unchanged or failed validation, in
// which case it is discarded) and the caller persists it. Beginning
// the already-open cell is a no-op.
func (c *Controller) Begin(cell Cell, current string) (forced *Commit, err error) {
	switch c.state {
	case StateSaving, StateReverting:
		return nil, fmt.Errorf("cell %d/%s is still %s", c.cell.RowID, c.cell.Field, c.state)
	case StateEditing:
		if c.cell == cell {
			return nil, nil
		}
		if commit, ok, cerr := c.Commit(); cerr == nil && ok {
			// Caller must persist, then SaveSucceeded/SaveFailed,
			// before the new edit can begin.
			return &commit, fmt.Errorf("previous edit of %d/%s force-committed", commit.Cell.RowID, commit.Cell.Field)
		}
		// Unchanged or invalid previous edit: drop it.
		c.state = StateIdle
	}
	c.state = StateEditing
	c.cell = cell
	c.original = current
	c.pending = current
	return nil, nil
}

// Input replaces the pending value while editing.
func (c *Controller) Input(value string) {
	if c.state == StateEditing {
		c.pending = value
	}
}

// Cancel abandons the edit and restores the original content.
func (c *Controller) Cancel() {
	if c.state == StateEditing {
		c.state = StateIdle
		c.pending = ""
	}
}

// Commit validates the pending value. On success the controller
// enters Saving and the caller persists the returned commit, then
// calls SaveSucceeded or SaveFailed. ok is false when the value is
// unchanged, which ends the edit with nothing to persist. A
// validation failure abandons the edit: the cell falls back to its
// original content and nothing reaches the network.
func (c *Controller) Commit() (commit Commit, ok bool, err error) {
	if c.state != StateEditing {
		return Commit{}, false, fmt.Errorf("no edit in progress (state %s)", c.state)
	}
	if c.cell.Field == FieldCategory && c.pending == CategoryAddNew {
		return Commit{}, false, ErrAddCategory
	}
	if c.cell.Field == FieldWho && c.pending == WhoCustom {
		return Commit{}, false, ErrCustomWho
	}
	if c.pending == c.original {
		c.state = StateIdle
		return Commit{}, false, nil
	}
	if err := Validate(c.cell.Field, c.pending); err != nil {
		c.state = StateIdle
		c.pending = ""
		return Commit{}, false, err
	}
	c.state = StateSaving
	return Commit{Cell: c.cell, Value: c.pending, Original: c.original}, true, nil
}

// SaveSucceeded completes a save.
func (c *Controller) SaveSucceeded() {
	if c.state == StateSaving {
		c.state = StateIdle
		c.pending = ""
	}
}

// SaveFailed moves the controller to Reverting; the caller rolls the
// optimistic change back and then calls Reverted.
func (c *Controller) SaveFailed() (original string) {
	if c.state != StateSaving {
		return ""
	}
	c.state = StateReverting
	return c.original
}

// Reverted completes a rollback.
func (c *Controller) Reverted() {
	if c.state == StateReverting {
		c.state = StateIdle
		c.pending = ""
	}
}
