package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, session *Session) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Session, error)
	FindOpenByTable(ctx context.Context, db *gorm.DB, tableID snowflake.ID) (*Session, error)
	// Close stamps closed_at. It must only be called after every ticket row
	// of the session has been updated, so a crash mid-checkout leaves the
	// session recoverable as still open.
	Close(ctx context.Context, db *gorm.DB, id snowflake.ID, closedAt time.Time) error
}
