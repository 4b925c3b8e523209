package undo

import (
	"fmt"
	"testing"

	"github.com/gsapre/housetab/internal/model"
)

func TestStackLIFO(t *testing.T) {
	var s Stack
	s.Push("first", []model.Expense{{ID: 1}})
	s.Push("second", []model.Expense{{ID: 2}})

	cp, ok := s.Pop()
	if !ok || cp.Label != "second" || cp.Rows[0].ID != 2 {
		t.Fatalf("pop = %+v, %v", cp, ok)
	}
	cp, ok = s.Pop()
	if !ok || cp.Label != "first" {
		t.Fatalf("pop = %+v, %v", cp, ok)
	}
	if _, ok := s.Pop(); ok {
		t.Error("pop of empty stack reported ok")
	}
}

func TestStackBounded(t *testing.T) {
	var s Stack
	for i := 0; i < Depth+5; i++ {
		s.Push(fmt.Sprintf("cp-%d", i), nil)
	}
	if s.Len() != Depth {
		t.Fatalf("len = %d, want %d", s.Len(), Depth)
	}
	cp, _ := s.Peek()
	if cp.Label != fmt.Sprintf("cp-%d", Depth+4) {
		t.Errorf("newest = %s", cp.Label)
	}
	// Oldest surviving entry is the fifth pushed.
	for s.Len() > 1 {
		s.Pop()
	}
	cp, _ = s.Pop()
	if cp.Label != "cp-5" {
		t.Errorf("oldest = %s, want cp-5", cp.Label)
	}
}

func TestCheckpointIsACopy(t *testing.T) {
	rows := []model.Expense{{ID: 1, Amount: "10"}}
	var s Stack
	s.Push("edit", rows)
	rows[0].Amount = "999"
	cp, _ := s.Pop()
	if cp.Rows[0].Amount != "10" {
		t.Errorf("checkpoint shares backing array: %q", cp.Rows[0].Amount)
	}
}
