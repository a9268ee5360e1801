package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	sessiondomain "github.com/smallbiznis/seatcounter/internal/session/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() sessiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, session *sessiondomain.Session) error {
	return db.WithContext(ctx).Create(session).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*sessiondomain.Session, error) {
	var session sessiondomain.Session
	err := db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *repo) FindOpenByTable(ctx context.Context, db *gorm.DB, tableID snowflake.ID) (*sessiondomain.Session, error) {
	var session sessiondomain.Session
	err := db.WithContext(ctx).
		Where("table_id = ? AND closed_at IS NULL", tableID).
		Order("opened_at ASC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *repo) Close(ctx context.Context, db *gorm.DB, id snowflake.ID, closedAt time.Time) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE sessions SET closed_at = ? WHERE id = ? AND closed_at IS NULL`,
		closedAt, id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return sessiondomain.ErrAlreadyClosed
	}
	return nil
}
