package ecs

import (
	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
)

// World is the entity store substrate: it owns the pool of generational
// handles and knows every registered component store so a destroy can clear
// all of an entity's data in one call. Component stores themselves are
// created and held by the domain layer and registered here.
type World struct {
	pool   *Pool
	stores []Removable
}

func NewWorld() *World {
	return &World{
		pool:   NewPool(),
		stores: make([]Removable, 0, 8),
	}
}

// Register adds a component store to the destroy fan-out.
func (w *World) Register(s Removable) {
	w.stores = append(w.stores, s)
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyEntity removes the entity's components from every registered store
// and releases the handle. A direct call on a stale handle is a no-op that
// logs a warning; buffered destroys stay silent.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Alive(id) {
		logging.Warn("destroy of stale entity handle", logging.Fields{
			constants.LogFieldEntityID: uint64(id),
		})
		return
	}
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.pool.Destroy(id)
}
