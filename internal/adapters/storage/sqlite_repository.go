package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"toga/internal/domain"
	"toga/internal/ports"
)

const (
	defaultListLimit = 50
	maxRetries       = 3
)

// SQLiteRepository implements ports.AttemptRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.AttemptRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens (and migrates) the journal at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:      newGormLogger(),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the history command read while a kiosk writes
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&AttemptModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate attempts schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Add stores one attempt
func (r *SQLiteRepository) Add(ctx context.Context, attempt domain.Attempt) error {
	if attempt.ID == "" {
		return fmt.Errorf("attempt id is required: %w", domain.ErrValidation)
	}
	model := attemptToModel(attempt)
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to add attempt: %w", err)
		}
		return nil
	}, maxRetries)
}

// List returns the newest attempts first
func (r *SQLiteRepository) List(ctx context.Context, filter ports.AttemptFilter) ([]domain.Attempt, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var models []AttemptModel
	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Model(&AttemptModel{})
		if filter.Identifier != "" {
			query = query.Where("identifier = ?", filter.Identifier)
		}
		if filter.Kind != "" {
			query = query.Where("kind = ?", string(filter.Kind))
		}
		return query.Order("created_at DESC").Limit(limit).Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]domain.Attempt, 0, len(models))
	for _, m := range models {
		attempts = append(attempts, modelToAttempt(m))
	}
	return attempts, nil
}

// CountByOutcome aggregates the journal by outcome
func (r *SQLiteRepository) CountByOutcome(ctx context.Context) (map[domain.AttemptOutcome]int64, error) {
	var rows []struct {
		Outcome string
		Total   int64
	}
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Model(&AttemptModel{}).
			Select("outcome, COUNT(*) AS total").
			Group("outcome").
			Scan(&rows).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}

	counts := make(map[domain.AttemptOutcome]int64, len(rows))
	for _, row := range rows {
		counts[domain.AttemptOutcome(row.Outcome)] = row.Total
	}
	return counts, nil
}

// withRetry retries fn while SQLite reports the database busy or locked
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
