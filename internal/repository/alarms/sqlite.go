package alarms

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// collectionKey is the key under which the whole collection is stored.
const collectionKey = "alarms"

// kvEntry is a row of the key-value table.
type kvEntry struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value string `gorm:"column:value;type:text;not null"`
}

// TableName pins the table name independently of GORM naming rules.
func (kvEntry) TableName() string {
	return "kv_entries"
}

// SQLiteRepository persists the alarm collection as one JSON value in a
// SQLite key-value table.
type SQLiteRepository struct {
	// db is the GORM handle over the SQLite database.
	db *gorm.DB
}

// NewSQLiteRepository opens (creating if needed) the database at path.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := gorm.Open(sqlite.Open(filepath.Clean(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Load reads the collection from the key-value table.
func (r *SQLiteRepository) Load(ctx context.Context) ([]domain.Alarm, error) {
	var entry kvEntry

	err := r.db.WithContext(ctx).Where("name = ?", collectionKey).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read alarms: %w", err)
	}

	return decode([]byte(entry.Value))
}

// Save upserts the collection under its key.
func (r *SQLiteRepository) Save(ctx context.Context, alarms []domain.Alarm) error {
	data, err := encode(alarms)
	if err != nil {
		return err
	}

	entry := kvEntry{
		Name:  collectionKey,
		Value: string(data),
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write alarms: %w", err)
	}

	return nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}

	return sqlDB.Close()
}
