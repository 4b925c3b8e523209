// Package undo keeps checkpoints of the dataset taken before
// destructive mutations.
package undo

import "github.com/gsapre/housetab/internal/model"

// Depth bounds the stack; the oldest checkpoint falls off when a new
// one would exceed it.
const Depth = 10

// Checkpoint is a copied dataset with a label describing the
// mutation it protects against.
type Checkpoint struct {
	Label string
	Rows  []model.Expense
}

// Stack is a bounded LIFO of checkpoints. Not safe for concurrent
// use; the UI event loop owns it.
type Stack struct {
	entries []Checkpoint
}

// Push copies rows onto the stack before a destructive mutation.
func (s *Stack) Push(label string, rows []model.Expense) {
	cp := Checkpoint{Label: label, Rows: append([]model.Expense{}, rows...)}
	s.entries = append(s.entries, cp)
	if len(s.entries) > Depth {
		s.entries = s.entries[len(s.entries)-Depth:]
	}
}

// Pop removes and returns the most recent checkpoint.
func (s *Stack) Pop() (Checkpoint, bool) {
	if len(s.entries) == 0 {
		return Checkpoint{}, false
	}
	cp := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return cp, true
}

// Peek returns the most recent checkpoint without removing it.
func (s *Stack) Peek() (Checkpoint, bool) {
	if len(s.entries) == 0 {
		return Checkpoint{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len reports how many checkpoints are held.
func (s *Stack) Len() int { return len(s.entries) }

// Clear drops every checkpoint, e.g. after a fresh server load.
func (s *Stack) Clear() { s.entries = nil }
