// Package data supplies the static species and move records the battle
// engine resolves against. The engine never caches these itself; caching is
// this package's concern.
package data

import (
	"errors"

	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
)

// ErrNotFound reports a missing species or move record. The engine treats
// this as fatal for the single action that needed it, never for the battle.
var ErrNotFound = errors.New("static data not found")

// Provider exposes synchronous lookups of immutable records.
type Provider interface {
	Species(id uint) (game.Species, error)
	Move(id uint) (game.Move, error)
}
