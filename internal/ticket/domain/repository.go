package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertBatch(ctx context.Context, db *gorm.DB, tickets []Ticket) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Ticket, error)
	// ListBySession returns every ticket of the session in started_at order.
	ListBySession(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) ([]Ticket, error)
	ListOpenBySession(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) ([]Ticket, error)
	OldestOpen(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) (*Ticket, error)
	LatestClosed(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) (*Ticket, error)
	CountBySession(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) (int64, error)
	// Close commits a charge to one open ticket row. Closing an already
	// closed ticket is a no-op reported via ErrAlreadyClosed.
	Close(ctx context.Context, db *gorm.DB, update CloseUpdate) error
	// Reopen clears the end state of a closed ticket (undo).
	Reopen(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
