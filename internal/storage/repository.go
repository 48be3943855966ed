package storage

// Repository is the persistence surface used by the battle service: records
// at creation and join, outcomes and trainer stats at conclusion.
type Repository interface {
	CreateBattle(r *BattleRecord) error
	FindBattleByJoinCode(code string) (*BattleRecord, error)
	UpdateBattle(r *BattleRecord) error

	// UpdateStatsOnConclusion upserts both trainers' profiles from a
	// concluded battle record.
	UpdateStatsOnConclusion(r *BattleRecord) error
	GetTrainerByName(name string) (*TrainerProfile, error)
	GetTopTrainers(limit int) ([]TrainerProfile, error)
}
