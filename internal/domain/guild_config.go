package domain

import (
	"context"
	"database/sql"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/internal/model"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/errorx"
	"github.com/guildkit/backend/pkg/xcontext"
)

type GuildConfigDomain interface {
	Get(ctx context.Context, req *model.GetGuildConfigRequest) (*model.GetGuildConfigResponse, error)
	Update(ctx context.Context, req *model.UpdateGuildConfigRequest) (*model.UpdateGuildConfigResponse, error)
}

type guildConfigDomain struct {
	guildConfigRepo repository.GuildConfigRepository
}

func NewGuildConfigDomain(guildConfigRepo repository.GuildConfigRepository) *guildConfigDomain {
	return &guildConfigDomain{guildConfigRepo: guildConfigRepo}
}

func (d *guildConfigDomain) Get(
	ctx context.Context, req *model.GetGuildConfigRequest,
) (*model.GetGuildConfigResponse, error) {
	cfg, err := d.guildConfigRepo.Get(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGuildConfigResponse{Config: convertGuildConfig(cfg)}, nil
}

func (d *guildConfigDomain) Update(
	ctx context.Context, req *model.UpdateGuildConfigRequest,
) (*model.UpdateGuildConfigResponse, error) {
	if req.Config.MaxTicketsPerUser < 0 || req.Config.TicketAutoCloseHours < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limits cannot be negative")
	}

	current, err := d.guildConfigRepo.Get(ctx, req.Config.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild config: %v", err)
		return nil, errorx.Unknown
	}

	// A guild with no stored admin roles delegates the permission check to
	// the command layer, which already requires the platform administrator
	// permission for configuration commands.
	if len(current.AdminRoles) > 0 && !current.IsAdmin(req.ActorRoles) {
		return nil, errorx.New(errorx.PermissionDenied, "Only an admin can change guild settings")
	}

	record := &entity.GuildConfig{
		GuildID:              req.Config.GuildID,
		AdminRoles:           req.Config.AdminRoles,
		MaxTicketsPerUser:    req.Config.MaxTicketsPerUser,
		TicketAutoCloseHours: req.Config.TicketAutoCloseHours,
		GiveawayBypassRoles:  req.Config.GiveawayBypassRoles,
	}

	if req.Config.GiveawayRequiredRole != 0 {
		record.GiveawayRequiredRole = sql.NullInt64{Int64: req.Config.GiveawayRequiredRole, Valid: true}
	}

	if err := d.guildConfigRepo.Upsert(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update guild config: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateGuildConfigResponse{}, nil
}
