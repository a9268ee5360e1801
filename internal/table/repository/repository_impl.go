package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() tabledomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, table *tabledomain.Table) error {
	return db.WithContext(ctx).Create(table).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*tabledomain.Table, error) {
	var table tabledomain.Table
	err := db.WithContext(ctx).First(&table, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*tabledomain.Table, error) {
	var table tabledomain.Table
	err := db.WithContext(ctx).First(&table, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]tabledomain.Table, error) {
	var items []tabledomain.Table
	err := db.WithContext(ctx).Order("area ASC, name ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
