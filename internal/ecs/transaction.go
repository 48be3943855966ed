package ecs

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrAlreadyExecuted is returned when recording continues, or Execute is
	// called again, after the transaction has been executed.
	ErrAlreadyExecuted = errors.New("transaction already executed")
	// ErrNotYetExecuted is returned by Rollback before Execute has run.
	ErrNotYetExecuted = errors.New("transaction not yet executed")
)

type txState uint8

const (
	txRecording txState = iota
	txExecuted
)

type txRecord struct {
	label string
	apply func(w *World) error
	undo  func(w *World) error
}

// Transaction is the rollback-capable variant of the command buffer: every
// forward command is paired with an explicit inverse supplied at record
// time. Execute applies forward commands in order; Rollback applies the
// inverses in reverse order and returns the transaction to a re-recordable
// state. This supports speculative resolution (score a candidate move, then
// undo it) without committing anything permanently.
type Transaction struct {
	mu      sync.Mutex
	state   txState
	records []txRecord
}

func NewTransaction() *Transaction {
	return &Transaction{records: make([]txRecord, 0, 16)}
}

// Record appends a forward/inverse pair. Recording after Execute is
// rejected with ErrAlreadyExecuted.
func (t *Transaction) Record(label string, apply, undo func(w *World) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == txExecuted {
		return ErrAlreadyExecuted
	}
	t.records = append(t.records, txRecord{label: label, apply: apply, undo: undo})
	return nil
}

// Len returns the number of recorded command pairs.
func (t *Transaction) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// Execute applies all forward commands in record order. Like buffer
// playback, every command is attempted; failures are aggregated into a
// *PlaybackError. The transaction transitions to the executed state even on
// partial failure so the recorded inverses can still be rolled back.
func (t *Transaction) Execute(w *World) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == txExecuted {
		return ErrAlreadyExecuted
	}
	var errs []error
	for i, r := range t.records {
		if err := r.apply(w); err != nil {
			errs = append(errs, fmt.Errorf("command %d (%s): %w", i, r.label, err))
		}
	}
	t.state = txExecuted
	if len(errs) > 0 {
		return &PlaybackError{Failed: len(errs), Total: len(t.records), Errs: errs}
	}
	return nil
}

// Rollback applies the recorded inverses in reverse order, then resets the
// transaction to a fresh recording state. Callable only after Execute, and
// only once per execution.
func (t *Transaction) Rollback(w *World) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != txExecuted {
		return ErrNotYetExecuted
	}
	attempted := len(t.records)
	var errs []error
	for i := len(t.records) - 1; i >= 0; i-- {
		r := t.records[i]
		if err := r.undo(w); err != nil {
			errs = append(errs, fmt.Errorf("undo %d (%s): %w", i, r.label, err))
		}
	}
	t.records = t.records[:0]
	t.state = txRecording
	if len(errs) > 0 {
		return &PlaybackError{Failed: len(errs), Total: attempted, Errs: errs}
	}
	return nil
}

// RecordSet is a convenience that records a component upsert paired with an
// inverse capturing the component's value (or absence) at record time.
func RecordSet[T any](t *Transaction, s *Store[T], id EntityID, v T) error {
	var prev *T
	if old, ok := s.Get(id); ok {
		copied := *old
		prev = &copied
	}
	return t.Record("set component",
		func(w *World) error {
			if !w.Alive(id) {
				return nil
			}
			s.Set(id, &v)
			return nil
		},
		func(w *World) error {
			if !w.Alive(id) {
				return nil
			}
			if prev == nil {
				s.Remove(id)
				return nil
			}
			restored := *prev
			s.Set(id, &restored)
			return nil
		},
	)
}
