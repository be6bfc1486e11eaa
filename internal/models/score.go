package models

import "time"

// ScoreRecord is the persisted result of scoring one receipt
type ScoreRecord struct {
	ID        int64     `json:"id" db:"id"`
	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
