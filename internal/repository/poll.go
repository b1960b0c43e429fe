package repository

import (
	"context"
	"time"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/xcontext"
)

type PollRepository interface {
	Create(ctx context.Context, poll *entity.Poll) error
	GetByID(ctx context.Context, id string) (*entity.Poll, error)
	Update(ctx context.Context, poll *entity.Poll, expectedVersion int64) error
	GetByGuild(ctx context.Context, guildID int64, offset, limit int) ([]entity.Poll, error)
	GetDue(ctx context.Context, before time.Time) ([]entity.Poll, error)
	DeleteClosedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type pollRepository struct{}

func NewPollRepository() PollRepository {
	return &pollRepository{}
}

func (r *pollRepository) Create(ctx context.Context, poll *entity.Poll) error {
	return xcontext.DB(ctx).Create(poll).Error
}

func (r *pollRepository) GetByID(ctx context.Context, id string) (*entity.Poll, error) {
	result := &entity.Poll{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pollRepository) Update(ctx context.Context, poll *entity.Poll, expectedVersion int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Poll{}).
		Where("id=? AND version=?", poll.ID, expectedVersion).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(poll)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func (r *pollRepository) GetByGuild(
	ctx context.Context, guildID int64, offset, limit int,
) ([]entity.Poll, error) {
	result := []entity.Poll{}
	err := xcontext.DB(ctx).
		Where("guild_id=?", guildID).
		Offset(offset).Limit(limit).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pollRepository) GetDue(ctx context.Context, before time.Time) ([]entity.Poll, error) {
	result := []entity.Poll{}
	err := xcontext.DB(ctx).
		Where("status=? AND deadline IS NOT NULL AND deadline <= ?", entity.PollActive, before).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pollRepository) DeleteClosedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("status=? AND updated_at < ?", entity.PollClosed, cutoff).
		Delete(&entity.Poll{})

	return tx.RowsAffected, tx.Error
}
