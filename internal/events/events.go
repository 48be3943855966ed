// Package events defines the battle-event stream consumed by presentation,
// audio and persistence layers.
package events

import "github.com/MrKumaPants/PokeNET-sub005/internal/ecs"

// Kind identifies a battle event.
type Kind string

const (
	KindDamageDealt     Kind = "damage_dealt"
	KindMoveMissed      Kind = "move_missed"
	KindMoveNoEffect    Kind = "move_no_effect"
	KindStatusApplied   Kind = "status_applied"
	KindStatusDamage    Kind = "status_damage"
	KindStageChanged    Kind = "stage_changed"
	KindFlinched        Kind = "flinched"
	KindActionPrevented Kind = "action_prevented"
	KindFainted         Kind = "fainted"
	KindDataNotFound    Kind = "data_not_found"
	KindConcluded       Kind = "battle_concluded"
)

// Event is a single entry in a battle's event stream. Only the fields
// relevant to the kind are populated.
type Event struct {
	Kind     Kind         `json:"kind"`
	Turn     int          `json:"turn"`
	Actor    ecs.EntityID `json:"actor,omitempty"`
	Target   ecs.EntityID `json:"target,omitempty"`
	MoveID   uint         `json:"move_id,omitempty"`
	MoveName string       `json:"move_name,omitempty"`
	Damage   int          `json:"damage,omitempty"`
	Critical bool         `json:"critical,omitempty"`
	// TypeMultiplier carries the effectiveness factor on damage events.
	TypeMultiplier float64 `json:"type_multiplier,omitempty"`
	Status         string  `json:"status,omitempty"`
	Stat           string  `json:"stat,omitempty"`
	Delta          int     `json:"delta,omitempty"`
	Winner         string  `json:"winner,omitempty"`
	Detail         string  `json:"detail,omitempty"`
}

// Sink receives the engine's events. The websocket hub implements it;
// tests use a recording sink.
type Sink interface {
	Publish(e Event)
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Publish(Event) {}

// Recorder collects events for inspection in tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(e Event) {
	r.Events = append(r.Events, e)
}

// Filter returns recorded events of one kind.
func (r *Recorder) Filter(k Kind) []Event {
	out := []Event{}
	for _, e := range r.Events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
