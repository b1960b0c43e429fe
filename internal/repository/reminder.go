package repository

import (
	"context"
	"time"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/xcontext"
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	GetByID(ctx context.Context, id string) (*entity.Reminder, error)
	Update(ctx context.Context, reminder *entity.Reminder, expectedVersion int64) error
	GetByOwner(ctx context.Context, guildID, ownerID int64) ([]entity.Reminder, error)
	GetDue(ctx context.Context, before time.Time) ([]entity.Reminder, error)
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type reminderRepository struct{}

func NewReminderRepository() ReminderRepository {
	return &reminderRepository{}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	return xcontext.DB(ctx).Create(reminder).Error
}

func (r *reminderRepository) GetByID(ctx context.Context, id string) (*entity.Reminder, error) {
	result := &entity.Reminder{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder, expectedVersion int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Reminder{}).
		Where("id=? AND version=?", reminder.ID, expectedVersion).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(reminder)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func (r *reminderRepository) GetByOwner(ctx context.Context, guildID, ownerID int64) ([]entity.Reminder, error) {
	result := []entity.Reminder{}
	err := xcontext.DB(ctx).
		Where("guild_id=? AND owner_id=? AND status=?", guildID, ownerID, entity.ReminderPending).
		Order("deadline ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reminderRepository) GetDue(ctx context.Context, before time.Time) ([]entity.Reminder, error) {
	result := []entity.Reminder{}
	err := xcontext.DB(ctx).
		Where("status=? AND deadline <= ?", entity.ReminderPending, before).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reminderRepository) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("status IN (?) AND updated_at < ?",
			[]entity.ReminderStatus{entity.ReminderDelivered, entity.ReminderCanceled}, cutoff).
		Delete(&entity.Reminder{})

	return tx.RowsAffected, tx.Error
}
