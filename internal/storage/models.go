package storage

import "time"

// BattleRecord is the persisted trace of a battle. Live battle state stays
// in memory; the record tracks identity, lifecycle and the final outcome.
type BattleRecord struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	JoinCode  string `gorm:"uniqueIndex"`
	Status    string // waiting, in_progress, concluded
	Winner    string // side_a, side_b, draw; empty until concluded
	Reason    string
	TurnCount int

	SideATrainer string
	SideBTrainer string

	Combatants []CombatantRecord `gorm:"foreignKey:BattleRecordID"`
}

// CombatantRecord snapshots one combatant's identity at battle creation.
type CombatantRecord struct {
	ID             uint `gorm:"primarykey"`
	BattleRecordID uint `gorm:"index"`

	Side      int
	SpeciesID uint
	Nickname  string
	Level     int
}

// TrainerProfile accumulates per-trainer results across battles.
type TrainerProfile struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name    string `gorm:"uniqueIndex"`
	Battles int
	Wins    int
	Losses  int
	Draws   int
}

// Battle lifecycle values stored in BattleRecord.Status.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusConcluded  = "concluded"
)
