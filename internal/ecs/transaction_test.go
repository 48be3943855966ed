package ecs

import (
	"errors"
	"testing"
)

func TestTransaction_ExecuteThenRollback(t *testing.T) {
	type score struct{ V int }
	w := NewWorld()
	s := NewStore[score]()
	w.Register(s)

	id := w.CreateEntity()
	s.Set(id, &score{V: 10})

	tx := NewTransaction()
	if err := RecordSet(tx, s, id, score{V: 42}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if tx.Len() != 1 {
		t.Fatalf("len = %d, want 1", tx.Len())
	}

	if err := tx.Execute(w); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if c, _ := s.Get(id); c.V != 42 {
		t.Fatalf("execute did not apply: V=%d", c.V)
	}

	if err := tx.Rollback(w); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if c, _ := s.Get(id); c.V != 10 {
		t.Fatalf("rollback did not restore: V=%d", c.V)
	}
}

func TestTransaction_RollbackRemovesAddedComponent(t *testing.T) {
	type score struct{ V int }
	w := NewWorld()
	s := NewStore[score]()
	w.Register(s)

	id := w.CreateEntity()
	tx := NewTransaction()
	// No prior value: the inverse removes the component entirely.
	if err := RecordSet(tx, s, id, score{V: 5}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := tx.Execute(w); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !s.Has(id) {
		t.Fatalf("execute did not add component")
	}
	if err := tx.Rollback(w); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if s.Has(id) {
		t.Fatalf("rollback left the added component behind")
	}
}

func TestTransaction_ReverseOrderUndo(t *testing.T) {
	w := NewWorld()
	var trace []string
	tx := NewTransaction()
	for _, name := range []string{"a", "b", "c"} {
		n := name
		tx.Record(n,
			func(*World) error { return nil },
			func(*World) error { trace = append(trace, n); return nil },
		)
	}
	if err := tx.Execute(w); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if err := tx.Rollback(w); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if len(trace) != 3 || trace[0] != "c" || trace[1] != "b" || trace[2] != "a" {
		t.Fatalf("undo order = %v, want [c b a]", trace)
	}
}

func TestTransaction_StateMachine(t *testing.T) {
	w := NewWorld()
	tx := NewTransaction()

	if err := tx.Rollback(w); !errors.Is(err, ErrNotYetExecuted) {
		t.Fatalf("rollback before execute: %v", err)
	}
	if err := tx.Execute(w); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if err := tx.Execute(w); !errors.Is(err, ErrAlreadyExecuted) {
		t.Fatalf("second execute: %v", err)
	}
	if err := tx.Record("late", func(*World) error { return nil }, func(*World) error { return nil }); !errors.Is(err, ErrAlreadyExecuted) {
		t.Fatalf("record after execute: %v", err)
	}
	if err := tx.Rollback(w); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	// Rollback returns the transaction to a fresh recording state.
	if err := tx.Record("again", func(*World) error { return nil }, func(*World) error { return nil }); err != nil {
		t.Fatalf("record after rollback: %v", err)
	}
	if tx.Len() != 1 {
		t.Fatalf("len after re-record = %d", tx.Len())
	}
}

func TestTransaction_RollbackReportsAttempts(t *testing.T) {
	w := NewWorld()
	tx := NewTransaction()

	noop := func(w *World) error { return nil }
	if err := tx.Record("good", noop, noop); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := tx.Record("bad undo", noop, func(w *World) error {
		return errors.New("undo failed")
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := tx.Execute(w); err != nil {
		t.Fatalf("execute: %v", err)
	}

	err := tx.Rollback(w)
	if err == nil {
		t.Fatalf("expected rollback error")
	}
	var pe *PlaybackError
	if !errors.As(err, &pe) {
		t.Fatalf("error type %T", err)
	}
	// Total counts the undo records attempted, not just the failures.
	if pe.Failed != 1 || pe.Total != 2 {
		t.Fatalf("Failed=%d Total=%d, want 1/2", pe.Failed, pe.Total)
	}
}
