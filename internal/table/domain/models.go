package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TableKind distinguishes open seating from private rooms. Rooms are billed
// as a whole at checkout; open seating bills each ticket on its own.
type TableKind string

const (
	KindOpen TableKind = "open"
	KindRoom TableKind = "room"
)

type Table struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Area      string       `json:"area" gorm:"type:text;not null;default:''"`
	Kind      TableKind    `json:"kind" gorm:"type:text;not null;default:'open'"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Table) TableName() string { return "tables" }

func (t Table) IsRoom() bool { return t.Kind == KindRoom }
