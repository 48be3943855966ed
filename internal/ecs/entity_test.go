package ecs

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestPool_CreateDestroyGenerations(t *testing.T) {
	p := NewPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatalf("live handle must never be the zero EntityID")
	}
	if !p.Alive(a) {
		t.Fatalf("freshly created entity should be alive")
	}

	p.Destroy(a)
	if p.Alive(a) {
		t.Fatalf("destroyed entity still reported alive")
	}

	// The slot is recycled with a bumped generation: same index, different
	// handle, and the stale handle stays dead.
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("expected slot reuse: got index %d, want %d", b.Index(), a.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Fatalf("generation = %d, want %d", b.Generation(), a.Generation()+1)
	}
	if p.Alive(a) {
		t.Fatalf("stale handle revived by slot reuse")
	}
	if !p.Alive(b) {
		t.Fatalf("recycled handle should be alive")
	}
}

func TestPool_DestroyStaleIsNoop(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Destroy(a)
	b := p.Create()

	// Destroying the stale handle again must not touch the new occupant.
	p.Destroy(a)
	if !p.Alive(b) {
		t.Fatalf("stale destroy killed the slot's new occupant")
	}

	p.Destroy(NewEntityID(9999, 0))
	if !p.Alive(b) {
		t.Fatalf("out-of-range destroy affected live entities")
	}
}

func TestWorld_DestroyClearsAllStores(t *testing.T) {
	type health struct{ HP int }
	type tag struct{ Name string }

	w := NewWorld()
	hs := NewStore[health]()
	ts := NewStore[tag]()
	w.Register(hs)
	w.Register(ts)

	id := w.CreateEntity()
	hs.Set(id, &health{HP: 10})
	ts.Set(id, &tag{Name: "x"})

	w.DestroyEntity(id)
	if hs.Has(id) || ts.Has(id) {
		t.Fatalf("destroy must clear every registered store")
	}
	if w.Alive(id) {
		t.Fatalf("destroyed entity reported alive")
	}
}

func TestWorld_DestroyStaleWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	w := NewWorld()
	id := w.CreateEntity()
	w.DestroyEntity(id)
	if strings.Contains(buf.String(), "stale") {
		t.Fatalf("live destroy must not warn: %q", buf.String())
	}

	w.DestroyEntity(id)
	if !strings.Contains(buf.String(), "stale entity handle") {
		t.Fatalf("stale destroy should log a warning, got: %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("warning should carry warn level, got: %q", buf.String())
	}
}
