package repository

import (
	"context"
	"time"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/xcontext"
)

type TicketFilter struct {
	Status []entity.TicketStatus
	Offset int
	Limit  int
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	Update(ctx context.Context, ticket *entity.Ticket, expectedVersion int64) error
	GetList(ctx context.Context, guildID int64, filter TicketFilter) ([]entity.Ticket, error)
	CountOpenByOwner(ctx context.Context, guildID, ownerID int64) (int64, error)
	GetDue(ctx context.Context, before time.Time) ([]entity.Ticket, error)
	DeleteClosedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ticketRepository struct{}

func NewTicketRepository() TicketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	result := &entity.Ticket{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket, expectedVersion int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND version=?", ticket.ID, expectedVersion).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(ticket)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func (r *ticketRepository) GetList(
	ctx context.Context, guildID int64, filter TicketFilter,
) ([]entity.Ticket, error) {
	result := []entity.Ticket{}
	tx := xcontext.DB(ctx).
		Where("guild_id=?", guildID).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Order("created_at ASC")

	if len(filter.Status) > 0 {
		tx.Where("status IN (?)", filter.Status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) CountOpenByOwner(ctx context.Context, guildID, ownerID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("guild_id=? AND owner_id=? AND status IN (?)",
			guildID, ownerID, []entity.TicketStatus{entity.TicketOpen, entity.TicketClaimed}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ticketRepository) GetDue(ctx context.Context, before time.Time) ([]entity.Ticket, error) {
	result := []entity.Ticket{}
	err := xcontext.DB(ctx).
		Where("status IN (?) AND deadline IS NOT NULL AND deadline <= ?",
			[]entity.TicketStatus{entity.TicketOpen, entity.TicketClaimed}, before).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) DeleteClosedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("status=? AND closed_at IS NOT NULL AND closed_at < ?", entity.TicketClosed, cutoff).
		Delete(&entity.Ticket{})

	return tx.RowsAffected, tx.Error
}
