package view

import (
	"sync"

	"github.com/gsapre/housetab/internal/model"
)

// Store holds the loaded dataset and the derived visible view. Every
// mutation recomputes the view from scratch (period, then column
// filters, then sort) and notifies subscribers; nothing patches the
// visible slice in place.
//
// The mutex guards only the synchronous mutation itself. Network
// calls happen outside the store; callers apply their results through
// mutation methods afterwards.
type Store struct {
	mu       sync.Mutex
	rows     []model.Expense
	visible  []model.Expense
	criteria Criteria
	sortDir  Directive
	period   string
	selected Selection
	subs     []func()
}

// NewStore returns an empty store showing all time.
func NewStore() *Store {
	return &Store{period: PeriodAllTime, selected: make(Selection)}
}

// Subscribe registers fn to run after every mutation. Subscribers are
// called outside the store lock and may read the store.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) recomputeLocked() []func() {
	rows := FilterByPeriod(s.rows, s.period)
	rows = Filter(rows, s.criteria)
	s.visible = SortRows(rows, s.sortDir)
	return append([]func(){}, s.subs...)
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

// Replace swaps in a freshly loaded dataset. Selection is cleared:
// the IDs it referenced may no longer exist.
func (s *Store) Replace(rows []model.Expense) {
	s.mu.Lock()
	s.rows = append([]model.Expense{}, rows...)
	s.selected = make(Selection)
	subs := s.recomputeLocked()
	s.mu.Unlock()
	notify(subs)
}

// Rows returns a copy of the full dataset.
func (s *Store) Rows() []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Expense{}, s.rows...)
}

// Visible returns a copy of the current view.
func (s *Store) Visible() []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Expense{}, s.visible...)
}

// Get finds a row by ID in the full dataset.
func (s *Store) Get(id int64) (model.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.rows {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}

// Criteria returns the active column filters.
func (s *Store) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria replaces the column filters.
func (s *Store) SetCriteria(c Criteria) {
	s.mu.Lock()
	s.criteria = c
	subs := s.recomputeLocked()
	s.mu.Unlock()
	notify(subs)
}

// ClearFilters drops every column filter but keeps period and sort.
func (s *Store) ClearFilters() {
	s.SetCriteria(Criteria{})
}

// SortDirective returns the active sort.
func (s *Store) SortDirective() Directive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortDir
}

// SortBy applies a column pick: new columns sort descending, the
// current column flips.
func (s *Store) SortBy(column string) {
	s.mu.Lock()
	s.sortDir = s.sortDir.Toggle(column)
	subs := s.recomputeLocked()
	s.mu.Unlock()
	notify(subs)
}

// Period returns the active time period.
func (s *Store) Period() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

// SetPeriod switches the active time period.
func (s *Store) SetPeriod(period string) {
	if period == "" {
		period = PeriodAllTime
	}
	s.mu.Lock()
	s.period = period
	subs := s.recomputeLocked()
	s.mu.Unlock()
	notify(subs)
}

// AvailablePeriods lists the periods present in the full dataset.
func (s *Store) AvailablePeriods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Periods(s.rows)
}

// Upsert inserts or replaces a row by ID.
func (s *Store) Upsert(e model.Expense) {
	s.mu.Lock()
	replaced := false
	for i := range s.rows {
		if s.rows[i].ID == e.ID {
			s.rows[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		s.rows = append(s.rows, e)
	}
	subs := s.recomputeLocked()
	s.mu.Unlock()
	notify(subs)
}

// Update applies fn to the row with the given ID and returns the row
// as it was before, for rollback. ok is false when the ID is unknown
// and nothing changed.
func (s *Store) Update(id int64, fn func(*model.Expense)) (prev model.Expense, ok bool) {
	s.mu.Lock()
	var subs []func()
	for i := range s.rows {
		if s.rows[i].ID == id {
			prev = s.rows[i]
			fn(&s.rows[i])
			ok = true
			subs = s.recomputeLocked()
			break
		}
	}
	s.mu.Unlock()
	notify(subs)
	return prev, ok
}

// Delete removes rows by ID and unselects them.
func (s *Store) Delete(ids ...int64) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	s.mu.Lock()
	kept := s.rows[:0]
	for _, e := range s.rows {
		if _, gone := drop[e.ID]; !gone {
			kept = append(kept, e)
		}
	}
	s.rows = kept
	for id := range drop {
		delete(s.selected, id)
	}
	subs := s.recomputeLocked()
	s.mu.Unlock()
	notify(subs)
}

// ToggleSelect flips selection of a row and reports the new state.
func (s *Store) ToggleSelect(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Toggle(id)
}

// Selected returns the selected row IDs.
func (s *Store) Selected() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.IDs()
}

// IsSelected reports whether a row is checked.
func (s *Store) IsSelected(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Has(id)
}

// ClearSelection unchecks every row.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = make(Selection)
	s.mu.Unlock()
}
