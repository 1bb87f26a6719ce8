package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema updated
// via AutoMigrate. The battle content itself (moves, species, type chart)
// is compiled in; only trainers and pets live in the database.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Trainer{}, &Pet{}); err != nil {
		return nil, err
	}
	return db, nil
}
