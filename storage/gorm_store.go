// storage/gorm_store.go
package storage

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
)

// battleRow is the table shape. Pos preserves insertion order across the
// delete-and-reinsert that SaveAll performs, so LoadAll keeps returning the
// collection in its natural (creation) order like the file backends do.
type battleRow struct {
	Pos         uint   `gorm:"primaryKey;autoIncrement"`
	BattleID    string `gorm:"column:battle_id;uniqueIndex;not null"`
	Title       string
	Description string
	Code        string
	Image       string
	CreatedAt   string
	UpdatedAt   string
}

func (battleRow) TableName() string { return "battles" }

// GormStore keeps the collection in a relational database while preserving
// the RecordStore contract: SaveAll replaces the whole table in one
// transaction, mirroring the whole-file rewrite of the other backends.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&battleRow{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorage, err)
	}
	return &GormStore{db: db}, nil
}

// OpenPostgres connects to the DATABASE_URL-style DSN used in production.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// OpenSQLite opens a file-backed (or :memory:) SQLite database; the pure-Go
// driver keeps the binary cgo-free.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func (s *GormStore) LoadAll(ctx context.Context) ([]models.Battle, error) {
	var rows []battleRow
	if err := s.db.WithContext(ctx).Order("pos").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: select battles: %v", ErrStorage, err)
	}

	battles := make([]models.Battle, 0, len(rows))
	for _, r := range rows {
		battles = append(battles, models.Battle{
			ID:          r.BattleID,
			Title:       r.Title,
			Description: r.Description,
			Code:        r.Code,
			Image:       r.Image,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return battles, nil
}

func (s *GormStore) SaveAll(ctx context.Context, battles []models.Battle) error {
	rows := make([]battleRow, 0, len(battles))
	for _, b := range battles {
		rows = append(rows, battleRow{
			BattleID:    b.ID,
			Title:       b.Title,
			Description: b.Description,
			Code:        b.Code,
			Image:       b.Image,
			CreatedAt:   b.CreatedAt,
			UpdatedAt:   b.UpdatedAt,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&battleRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("%w: replace battles: %v", ErrStorage, err)
	}
	return nil
}
