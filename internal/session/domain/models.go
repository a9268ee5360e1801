package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Session is one continuous occupancy of a table from open to close. At most
// one session per table may be open at a time.
type Session struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	TableID  snowflake.ID `json:"table_id" gorm:"column:table_id;not null;index"`
	OpenedAt time.Time    `json:"opened_at" gorm:"not null"`
	ClosedAt *time.Time   `json:"closed_at,omitempty" gorm:"index"`
}

func (Session) TableName() string { return "sessions" }

func (s Session) IsOpen() bool { return s.ClosedAt == nil }

var (
	ErrNotFound      = errors.New("session_not_found")
	ErrAlreadyClosed = errors.New("session_already_closed")
)
