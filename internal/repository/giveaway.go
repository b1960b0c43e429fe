package repository

import (
	"context"
	"time"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/xcontext"
)

type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *entity.Giveaway) error
	GetByID(ctx context.Context, id string) (*entity.Giveaway, error)
	Update(ctx context.Context, giveaway *entity.Giveaway, expectedVersion int64) error
	GetByGuild(ctx context.Context, guildID int64, offset, limit int) ([]entity.Giveaway, error)
	GetDue(ctx context.Context, before time.Time) ([]entity.Giveaway, error)
	DeleteClosedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type giveawayRepository struct{}

func NewGiveawayRepository() GiveawayRepository {
	return &giveawayRepository{}
}

func (r *giveawayRepository) Create(ctx context.Context, giveaway *entity.Giveaway) error {
	return xcontext.DB(ctx).Create(giveaway).Error
}

func (r *giveawayRepository) GetByID(ctx context.Context, id string) (*entity.Giveaway, error) {
	result := &entity.Giveaway{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) Update(ctx context.Context, giveaway *entity.Giveaway, expectedVersion int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Giveaway{}).
		Where("id=? AND version=?", giveaway.ID, expectedVersion).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(giveaway)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func (r *giveawayRepository) GetByGuild(
	ctx context.Context, guildID int64, offset, limit int,
) ([]entity.Giveaway, error) {
	result := []entity.Giveaway{}
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

// GetDue returns active giveaways whose deadline has passed, plus any
// giveaway stuck in drawing. A draw interrupted by a crash persisted no
// winners, so re-driving it from the scan is safe.
func (r *giveawayRepository) GetDue(ctx context.Context, before time.Time) ([]entity.Giveaway, error) {
	result := []entity.Giveaway{}
	err := xcontext.DB(ctx).
		Where("(status=? AND deadline IS NOT NULL AND deadline <= ?) OR status=?",
			entity.GiveawayActive, before, entity.GiveawayDrawing).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) DeleteClosedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("status=? AND updated_at < ?", entity.GiveawayClosed, cutoff).
		Delete(&entity.Giveaway{})

	return tx.RowsAffected, tx.Error
}
