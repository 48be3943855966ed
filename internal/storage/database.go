package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema current via
// AutoMigrate. The database file is created on first use.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&BattleRecord{}, &CombatantRecord{}, &TrainerProfile{}); err != nil {
		return nil, err
	}
	return db, nil
}
