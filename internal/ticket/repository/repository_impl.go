package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	ticketdomain "github.com/smallbiznis/seatcounter/internal/ticket/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ticketdomain.Repository {
	return &repo{}
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, tickets []ticketdomain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&tickets).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ticketdomain.Ticket, error) {
	var ticket ticketdomain.Ticket
	err := db.WithContext(ctx).First(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repo) ListBySession(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) ([]ticketdomain.Ticket, error) {
	var items []ticketdomain.Ticket
	err := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("started_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListOpenBySession(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) ([]ticketdomain.Ticket, error) {
	var items []ticketdomain.Ticket
	err := db.WithContext(ctx).
		Where("session_id = ? AND ended_at IS NULL", sessionID).
		Order("started_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) OldestOpen(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) (*ticketdomain.Ticket, error) {
	var ticket ticketdomain.Ticket
	err := db.WithContext(ctx).
		Where("session_id = ? AND ended_at IS NULL", sessionID).
		Order("started_at ASC, id ASC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repo) LatestClosed(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) (*ticketdomain.Ticket, error) {
	var ticket ticketdomain.Ticket
	err := db.WithContext(ctx).
		Where("session_id = ? AND ended_at IS NOT NULL", sessionID).
		Order("ended_at DESC, id DESC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repo) CountBySession(ctx context.Context, db *gorm.DB, sessionID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&ticketdomain.Ticket{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

func (r *repo) Close(ctx context.Context, db *gorm.DB, update ticketdomain.CloseUpdate) error {
	values := map[string]any{
		"ended_at":    update.EndedAt,
		"minutes":     update.Minutes,
		"price_cents": update.PriceCents,
		"auto_ended":  update.AutoEnded,
	}
	if update.Metadata != nil {
		values["metadata"] = datatypes.JSONMap(update.Metadata)
	}

	res := db.WithContext(ctx).
		Model(&ticketdomain.Ticket{}).
		Where("id = ? AND ended_at IS NULL", update.ID).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ticketdomain.ErrAlreadyClosed
	}
	return nil
}

func (r *repo) Reopen(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	res := db.WithContext(ctx).
		Model(&ticketdomain.Ticket{}).
		Where("id = ? AND ended_at IS NOT NULL", id).
		Updates(map[string]any{
			"ended_at":    nil,
			"minutes":     nil,
			"price_cents": nil,
			"auto_ended":  false,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ticketdomain.ErrStillOpen
	}
	return nil
}
