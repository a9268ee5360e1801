package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, table *Table) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Table, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Table, error)
	List(ctx context.Context, db *gorm.DB) ([]Table, error)
}
