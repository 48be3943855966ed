// Package battle implements turn-based battle resolution: turn ordering,
// move execution, status processing and termination detection. All
// structural and data mutations flow through the shared command buffer
// rather than direct writes, so resolution can destroy, tag and
// re-component entities while iteration is still in flight.
package battle

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/MrKumaPants/PokeNET-sub005/internal/data"
	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
	"github.com/MrKumaPants/PokeNET-sub005/internal/events"
	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

var (
	ErrNotInProgress = errors.New("battle is not in progress")
	// ErrInvalidMoveSelection rejects an action at submission time: fainted
	// attacker, unknown slot or exhausted PP. Nothing is enqueued.
	ErrInvalidMoveSelection = errors.New("invalid move selection")
	ErrNotAParticipant      = errors.New("combatant not in this battle")
	ErrAlreadySubmitted     = errors.New("action already submitted for this turn")
)

// CritDenominator is the critical-hit rate: 1 in 16 attacks.
const CritDenominator = 16

// thawChancePercent is the per-turn chance a frozen combatant thaws and acts.
const thawChancePercent = 20

// statusTickDivisor: poison and burn remove 1/8 of max HP at end of turn.
const statusTickDivisor = 8

// State is the battle lifecycle.
type State uint8

const (
	NotStarted State = iota
	TurnInProgress
	Concluded
)

// SideCount: battles resolve between exactly two sides.
const SideCount = 2

// DrawSide marks a concluded battle with no winner.
const DrawSide = -1

// Outcome describes how a battle concluded.
type Outcome struct {
	Winner int // side index, or DrawSide
	Reason string
}

// Action is one submitted combatant action for the current turn.
type Action struct {
	Combatant ecs.EntityID
	MoveIndex int
	// Target is optional; zero value means the first able opposing
	// combatant, re-resolved at execution time.
	Target ecs.EntityID
}

// Stores groups the combatant component stores over one world.
type Stores struct {
	Identity *ecs.Store[game.Identity]
	Stats    *ecs.Store[game.BattleStats]
	Training *ecs.Store[game.TrainingValues]
	State    *ecs.Store[game.BattleState]
	Moves    *ecs.Store[game.MoveSet]
	Status   *ecs.Store[game.StatusCondition]
}

// NewStores creates the component stores and registers them with the world
// so entity destruction clears all combatant data.
func NewStores(w *ecs.World) *Stores {
	s := &Stores{
		Identity: ecs.NewStore[game.Identity](),
		Stats:    ecs.NewStore[game.BattleStats](),
		Training: ecs.NewStore[game.TrainingValues](),
		State:    ecs.NewStore[game.BattleState](),
		Moves:    ecs.NewStore[game.MoveSet](),
		Status:   ecs.NewStore[game.StatusCondition](),
	}
	w.Register(s.Identity)
	w.Register(s.Stats)
	w.Register(s.Training)
	w.Register(s.State)
	w.Register(s.Moves)
	w.Register(s.Status)
	return s
}

// Battle is a single battle instance. Resolution is single-threaded and
// synchronous: one turn fully resolves before the next begins. The command
// buffer it consumes is safe for concurrent producers.
type Battle struct {
	mu sync.Mutex

	world    *ecs.World
	stores   *Stores
	buffer   *ecs.CommandBuffer
	chart    *typechart.Table
	provider data.Provider
	sink     events.Sink
	rng      *rand.Rand

	sides   [SideCount][]ecs.EntityID
	pending map[ecs.EntityID]Action

	state   State
	turn    int
	outcome *Outcome
}

// Config bundles the collaborators a battle needs.
type Config struct {
	World    *ecs.World
	Stores   *Stores
	Buffer   *ecs.CommandBuffer
	Chart    *typechart.Table
	Provider data.Provider
	Sink     events.Sink
	// Seed drives every probabilistic decision (tie breaks, accuracy,
	// crits, status rolls) so battles replay deterministically in tests.
	Seed int64
}

func New(cfg Config, sideA, sideB []ecs.EntityID) *Battle {
	sink := cfg.Sink
	if sink == nil {
		sink = events.Discard{}
	}
	return &Battle{
		world:    cfg.World,
		stores:   cfg.Stores,
		buffer:   cfg.Buffer,
		chart:    cfg.Chart,
		provider: cfg.Provider,
		sink:     sink,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		sides:    [SideCount][]ecs.EntityID{sideA, sideB},
		pending:  make(map[ecs.EntityID]Action, len(sideA)+len(sideB)),
		state:    NotStarted,
	}
}

// Begin transitions NotStarted -> TurnInProgress.
func (b *Battle) Begin() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != NotStarted {
		return
	}
	b.state = TurnInProgress
	b.turn = 1
}

func (b *Battle) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Battle) Turn() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.turn
}

// Outcome returns the conclusion, or nil while the battle runs.
func (b *Battle) Outcome() *Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outcome
}

// Sides returns the combatant handles per side.
func (b *Battle) Sides() [SideCount][]ecs.EntityID {
	return b.sides
}

// sideOf returns the side index of a combatant, or -1.
func (b *Battle) sideOf(id ecs.EntityID) int {
	for s := range b.sides {
		for _, c := range b.sides[s] {
			if c == id {
				return s
			}
		}
	}
	return -1
}

// SubmitAction validates and stores one combatant's action for the current
// turn. Invalid selections are rejected here and never enqueued.
func (b *Battle) SubmitAction(a Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != TurnInProgress {
		return ErrNotInProgress
	}
	if b.sideOf(a.Combatant) < 0 || !b.world.Alive(a.Combatant) {
		return ErrNotAParticipant
	}
	st, ok := b.stores.State.Get(a.Combatant)
	if !ok || st.Participation != game.Active {
		return ErrInvalidMoveSelection
	}
	ms, ok := b.stores.Moves.Get(a.Combatant)
	if !ok {
		return ErrInvalidMoveSelection
	}
	slot := ms.Slot(a.MoveIndex)
	if slot == nil || slot.PP <= 0 {
		return ErrInvalidMoveSelection
	}
	if _, dup := b.pending[a.Combatant]; dup {
		return ErrAlreadySubmitted
	}
	b.pending[a.Combatant] = a
	return nil
}

// AllSubmitted reports whether every able combatant has an action pending.
func (b *Battle) AllSubmitted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != TurnInProgress {
		return false
	}
	for s := range b.sides {
		for _, id := range b.sides[s] {
			if !b.eligible(id) {
				continue
			}
			if _, ok := b.pending[id]; !ok {
				return false
			}
		}
	}
	return true
}

// eligible: alive, active, not fainted. Callers hold b.mu.
func (b *Battle) eligible(id ecs.EntityID) bool {
	if !b.world.Alive(id) {
		return false
	}
	st, ok := b.stores.State.Get(id)
	return ok && st.Participation == game.Active
}

// Conclude ends the battle from outside normal resolution. Fleeing and
// capture are terminal transitions triggered externally, not derived from
// HP.
func (b *Battle) Conclude(winner int, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.concludeLocked(winner, reason)
}

func (b *Battle) concludeLocked(winner int, reason string) {
	if b.state == Concluded {
		return
	}
	b.state = Concluded
	b.outcome = &Outcome{Winner: winner, Reason: reason}
	b.sink.Publish(events.Event{
		Kind:   events.KindConcluded,
		Turn:   b.turn,
		Winner: winnerLabel(winner),
		Detail: reason,
	})
}

func winnerLabel(winner int) string {
	switch winner {
	case 0:
		return "side_a"
	case 1:
		return "side_b"
	default:
		return "draw"
	}
}
