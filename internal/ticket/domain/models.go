package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Ticket is one occupant's time span within a session. Open seating prices a
// ticket on its own elapsed time when it ends; room tickets carry their share
// of the room total computed at checkout.
type Ticket struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey"`
	SessionID  snowflake.ID      `json:"session_id" gorm:"column:session_id;not null;index"`
	Label      string            `json:"label" gorm:"type:text;not null"`
	StartedAt  time.Time         `json:"started_at" gorm:"not null;index"`
	EndedAt    *time.Time        `json:"ended_at,omitempty"`
	Minutes    *int              `json:"minutes,omitempty"`
	PriceCents *int64            `json:"price_cents,omitempty"`
	AutoEnded  bool              `json:"auto_ended" gorm:"not null;default:false"`
	Note       string            `json:"note" gorm:"type:text;not null;default:''"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
}

func (Ticket) TableName() string { return "tickets" }

func (t Ticket) IsOpen() bool { return t.EndedAt == nil }

var (
	ErrNotFound      = errors.New("ticket_not_found")
	ErrAlreadyClosed = errors.New("ticket_already_closed")
	ErrStillOpen     = errors.New("ticket_still_open")
)

// CloseUpdate is the per-row charge commit applied at ticket end or checkout.
type CloseUpdate struct {
	ID         snowflake.ID
	EndedAt    time.Time
	Minutes    int
	PriceCents int64
	AutoEnded  bool
	Metadata   map[string]any
}
