package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hupe1980/agendamesh/core"
)

// EntryRecord is the GORM row model for schedule entries. Dates and times are
// stored in their ISO string forms so rows stay human-readable and ordering
// can be pushed down to SQL.
type EntryRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    *int64 `gorm:"index:idx_entries_user_date"`
	EntryDate string `gorm:"index:idx_entries_user_date;index;not null"` // YYYY-MM-DD
	StartTime string `gorm:"not null"`                                   // HH:MM:SS
	EndTime   string `gorm:"not null"`                                   // HH:MM:SS
	Title     string `gorm:"not null"`
	Provider  string `gorm:"not null"`
	Note      string `gorm:"not null;default:''"`
	CreatedAt time.Time
}

// TableName keeps the historical table name.
func (EntryRecord) TableName() string { return "entries" }

// OpenPostgres connects to PostgreSQL and returns a *gorm.DB ready for
// NewGormStore.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// GormStore is the EntryStore implementation backed by GORM.
type GormStore struct {
	db *gorm.DB
}

var _ EntryStore = (*GormStore)(nil)

// NewGormStore migrates the entries table and returns a ready store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&EntryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate entries table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// AddEntry implements EntryStore.
func (s *GormStore) AddEntry(ctx context.Context, entry *core.Entry) (int64, error) {
	rec := recordFromEntry(*entry)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}
	entry.ID = rec.ID
	return rec.ID, nil
}

// RemoveEntry implements EntryStore. Deletion is scoped to rows owned by the
// principal or unowned, mirroring visibility in GetSchedule.
func (s *GormStore) RemoveEntry(ctx context.Context, entry *core.Entry, principalID int64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", entry.ID, principalID).
		Delete(&EntryRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete entry %d: %w", entry.ID, res.Error)
	}
	return res.RowsAffected, nil
}

// UpdateEntry implements EntryStore.
func (s *GormStore) UpdateEntry(ctx context.Context, entry *core.Entry, principalID int64) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&EntryRecord{}).
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", entry.ID, principalID).
		Updates(map[string]any{
			"entry_date": entry.DateString(),
			"start_time": entry.StartTime.String(),
			"end_time":   entry.EndTime.String(),
			"title":      entry.Title,
			"provider":   entry.Provider,
			"note":       entry.Note,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update entry %d: %w", entry.ID, res.Error)
	}
	return res.RowsAffected, nil
}

// GetSchedule implements EntryStore.
func (s *GormStore) GetSchedule(ctx context.Context, principalID int64, r core.DateRange) (*core.Schedule, error) {
	var records []EntryRecord
	err := s.db.WithContext(ctx).
		Where("(user_id = ? OR user_id IS NULL) AND entry_date BETWEEN ? AND ?",
			principalID,
			core.NormalizeDate(r.From).Format(core.DateLayout),
			core.NormalizeDate(r.To).Format(core.DateLayout),
		).
		Order("entry_date ASC, start_time ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	entries := make([]core.Entry, 0, len(records))
	for _, rec := range records {
		entry, err := entryFromRecord(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return core.NewSchedule(r, entries), nil
}

// GetEntriesByIDs implements EntryStore.
func (s *GormStore) GetEntriesByIDs(ctx context.Context, ids []int64) ([]core.Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var records []EntryRecord
	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("entry_date ASC, start_time ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by id: %w", err)
	}

	entries := make([]core.Entry, 0, len(records))
	for _, rec := range records {
		entry, err := entryFromRecord(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func recordFromEntry(e core.Entry) EntryRecord {
	return EntryRecord{
		ID:        e.ID,
		EntryDate: e.DateString(),
		StartTime: e.StartTime.String(),
		EndTime:   e.EndTime.String(),
		Title:     e.Title,
		Provider:  e.Provider,
		Note:      e.Note,
	}
}

func entryFromRecord(rec EntryRecord) (core.Entry, error) {
	date, err := core.ParseEntryDate(rec.EntryDate)
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry %d: %w", rec.ID, err)
	}
	start, err := core.ParseClockTime(rec.StartTime)
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry %d: %w", rec.ID, err)
	}
	end, err := core.ParseClockTime(rec.EndTime)
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry %d: %w", rec.ID, err)
	}
	return core.Entry{
		ID:        rec.ID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Title:     rec.Title,
		Provider:  rec.Provider,
		Note:      rec.Note,
	}, nil
}
