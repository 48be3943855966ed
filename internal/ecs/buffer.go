package ecs

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotYetMaterialized is returned when a deferred handle is queried before
// the buffer that created it has been played back.
var ErrNotYetMaterialized = errors.New("entity not yet materialized; playback pending")

// errComponentPresent is collected during playback when a strict add hits an
// entity that already carries the component.
var errComponentPresent = errors.New("component already present")

// Deferred is the placeholder returned by CommandBuffer.CreateEntity. The
// real handle exists only after playback.
type Deferred struct {
	mu   sync.Mutex
	id   EntityID
	done bool
}

// Handle returns the materialized entity handle, or ErrNotYetMaterialized if
// the create command has not been played back yet.
func (d *Deferred) Handle() (EntityID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.done {
		return 0, ErrNotYetMaterialized
	}
	return d.id, nil
}

func (d *Deferred) resolve(id EntityID) {
	d.mu.Lock()
	d.id = id
	d.done = true
	d.mu.Unlock()
}

type command struct {
	label string
	run   func(w *World) error
}

// CommandBuffer accumulates structural and data mutations against a World
// without applying them, so systems iterating live component stores never
// observe a structural change mid-iteration. Enqueue operations are safe to
// call from any goroutine; Playback is mutually exclusive.
type CommandBuffer struct {
	mu    sync.Mutex // guards queue against concurrent producers
	queue []command

	playMu sync.Mutex // serializes playback runs
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{queue: make([]command, 0, 32)}
}

func (b *CommandBuffer) enqueue(cmd command) {
	b.mu.Lock()
	b.queue = append(b.queue, cmd)
	b.mu.Unlock()
}

// Pending returns the number of queued commands.
func (b *CommandBuffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Clear discards all pending commands without executing any of them. Used to
// abandon a speculative command sequence.
func (b *CommandBuffer) Clear() {
	b.mu.Lock()
	b.queue = b.queue[:0]
	b.mu.Unlock()
}

// CreateEntity queues entity creation. The init callback attaches the new
// entity's components during playback; it receives a live handle. Enqueue
// always succeeds; the returned Deferred resolves after playback.
func (b *CommandBuffer) CreateEntity(init func(w *World, id EntityID)) *Deferred {
	d := &Deferred{}
	b.enqueue(command{
		label: "create entity",
		run: func(w *World) error {
			id := w.CreateEntity()
			if init != nil {
				init(w, id)
			}
			d.resolve(id)
			return nil
		},
	})
	return d
}

// DestroyEntity queues entity destruction. Destroying an already-dead or
// stale handle is a silent no-op, which makes a double destroy within one
// batch idempotent.
func (b *CommandBuffer) DestroyEntity(id EntityID) {
	b.enqueue(command{
		label: "destroy entity",
		run: func(w *World) error {
			if !w.Alive(id) {
				return nil
			}
			w.DestroyEntity(id)
			return nil
		},
	})
}

// AddComponent queues a strict component attach: it fails during playback if
// the entity already carries the component. Commands against dead handles
// are silent no-ops.
func AddComponent[T any](b *CommandBuffer, s *Store[T], id EntityID, v T) {
	b.enqueue(command{
		label: "add component",
		run: func(w *World) error {
			if !w.Alive(id) {
				return nil
			}
			if s.Has(id) {
				return errComponentPresent
			}
			s.Set(id, &v)
			return nil
		},
	})
}

// SetComponent queues an upsert: add if absent, overwrite if present.
func SetComponent[T any](b *CommandBuffer, s *Store[T], id EntityID, v T) {
	b.enqueue(command{
		label: "set component",
		run: func(w *World) error {
			if !w.Alive(id) {
				return nil
			}
			s.Set(id, &v)
			return nil
		},
	})
}

// RemoveComponent queues a component detach. Missing components and dead
// handles are silent no-ops.
func RemoveComponent[T any](b *CommandBuffer, s *Store[T], id EntityID) {
	b.enqueue(command{
		label: "remove component",
		run: func(w *World) error {
			if !w.Alive(id) {
				return nil
			}
			s.Remove(id)
			return nil
		},
	})
}

// MutateComponent queues an in-place read-modify-write executed at playback
// time, so several queued mutations against the same component compose in
// FIFO order instead of clobbering each other. No-op if the entity is dead
// or the component absent.
func MutateComponent[T any](b *CommandBuffer, s *Store[T], id EntityID, fn func(*T)) {
	b.enqueue(command{
		label: "mutate component",
		run: func(w *World) error {
			if !w.Alive(id) {
				return nil
			}
			c, ok := s.Get(id)
			if !ok {
				return nil
			}
			fn(c)
			return nil
		},
	})
}

// PlaybackError aggregates per-command failures from a single playback run.
type PlaybackError struct {
	Failed int
	Total  int
	Errs   []error
}

func (e *PlaybackError) Error() string {
	parts := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("playback: %d of %d commands failed: %s", e.Failed, e.Total, strings.Join(parts, "; "))
}

func (e *PlaybackError) Unwrap() []error { return e.Errs }

// Playback executes every queued command in FIFO enqueue order, exactly once
// each. Commands are attempted independently: a failure is wrapped and
// collected, and playback continues with the remaining commands. The buffer
// is emptied afterwards regardless of failures. The returned count reflects
// commands that completed without error; if any failed, the error is a
// *PlaybackError summarizing counts. Only one playback may run at a time.
func (b *CommandBuffer) Playback(w *World) (int, error) {
	b.playMu.Lock()
	defer b.playMu.Unlock()

	b.mu.Lock()
	cmds := b.queue
	b.queue = make([]command, 0, 32)
	b.mu.Unlock()

	executed := 0
	var errs []error
	for i, cmd := range cmds {
		if err := cmd.run(w); err != nil {
			errs = append(errs, fmt.Errorf("command %d (%s): %w", i, cmd.label, err))
			continue
		}
		executed++
	}
	if len(errs) > 0 {
		return executed, &PlaybackError{Failed: len(errs), Total: len(cmds), Errs: errs}
	}
	return executed, nil
}
