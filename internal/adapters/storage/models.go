package storage

import "time"

// AttemptModel is the GORM model for the attempts table
type AttemptModel struct {
	CreatedAt  time.Time `gorm:"not null;index:idx_attempts_created_at"`
	DurationMS int64     `gorm:"not null;default:0"`
	ErrorKind  string    `gorm:"not null;default:''"`
	ID         string    `gorm:"primaryKey"`
	Identifier string    `gorm:"not null;index:idx_attempts_identifier"`
	Kind       string    `gorm:"not null;check:kind IN ('verify','generate')"`
	Outcome    string    `gorm:"not null;index:idx_attempts_outcome"`
}

// TableName specifies the table name for GORM
func (AttemptModel) TableName() string { return "attempts" }
