// Package service coordinates live battles: it owns the in-memory registry
// of running battles, builds combatant entities through the command buffer,
// and persists records and outcomes through the storage repository.
package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/MrKumaPants/PokeNET-sub005/internal/battle"
	"github.com/MrKumaPants/PokeNET-sub005/internal/data"
	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
	"github.com/MrKumaPants/PokeNET-sub005/internal/events"
	"github.com/MrKumaPants/PokeNET-sub005/internal/storage"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotJoinable   = errors.New("battle is not waiting for an opponent")
	ErrBattleNotStarted    = errors.New("battle has not started yet")
	ErrTrainerNameRequired = errors.New("trainer name required")
	ErrEmptyParty          = errors.New("at least one combatant required")
	ErrPartyTooLarge       = errors.New("party exceeds the six-combatant limit")
	ErrTrainerNotFound     = errors.New("trainer not found")
)

// MaxPartySize bounds a side's combatant count.
const MaxPartySize = 6

// LiveBattle is one running battle and its supporting machinery. Battle
// state lives entirely in memory; storage keeps records and outcomes only.
type LiveBattle struct {
	mu sync.Mutex

	Code string
	Hub  *events.Hub

	world  *ecs.World
	stores *battle.Stores
	buffer *ecs.CommandBuffer

	sides    [battle.SideCount][]ecs.EntityID
	trainers [battle.SideCount]string

	// bt is nil until the second side joins.
	bt     *battle.Battle
	record *storage.BattleRecord
}

// Service is the battle application service.
type Service struct {
	repo     storage.Repository
	provider data.Provider
	chart    *typechart.Table

	// seed, when non-zero, fixes every battle's RNG for reproducible runs.
	seed int64

	mu      sync.RWMutex
	battles map[string]*LiveBattle
	rng     *rand.Rand
}

func New(repo storage.Repository, provider data.Provider, chart *typechart.Table, seed int64) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		chart:    chart,
		seed:     seed,
		battles:  make(map[string]*LiveBattle),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get returns the live battle registered under a join code.
func (s *Service) Get(code string) (*LiveBattle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lb, ok := s.battles[code]
	if !ok {
		return nil, ErrBattleNotFound
	}
	return lb, nil
}

// Leaderboard returns the top trainers by wins.
func (s *Service) Leaderboard(limit int) ([]storage.TrainerProfile, error) {
	return s.repo.GetTopTrainers(limit)
}

// Trainer returns one trainer's lifetime record.
func (s *Service) Trainer(name string) (*storage.TrainerProfile, error) {
	p, err := s.repo.GetTrainerByName(name)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return p, nil
}

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// newJoinCode generates a code unused by any registered battle or any
// persisted record, so historical codes stay unambiguous. Callers hold s.mu.
func (s *Service) newJoinCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeCharset[s.rng.Intn(len(codeCharset))]
		}
		code := string(b)
		if _, taken := s.battles[code]; taken {
			continue
		}
		if _, err := s.repo.FindBattleByJoinCode(code); err == nil {
			continue
		}
		return code
	}
}

func (s *Service) battleSeed() int64 {
	if s.seed != 0 {
		return s.seed
	}
	return time.Now().UnixNano()
}
