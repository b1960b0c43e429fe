package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/xcontext"
	"github.com/guildkit/backend/pkg/xredis"
	"gorm.io/gorm"
)

const guildConfigCacheTTL = 5 * time.Minute

type GuildConfigRepository interface {
	// Get never fails on a missing record; a guild without stored
	// configuration gets zero-value defaults.
	Get(ctx context.Context, guildID int64) (*entity.GuildConfig, error)
	Upsert(ctx context.Context, cfg *entity.GuildConfig) error
}

type guildConfigRepository struct {
	redisClient xredis.Client
}

func NewGuildConfigRepository(redisClient xredis.Client) GuildConfigRepository {
	return &guildConfigRepository{redisClient: redisClient}
}

func (r *guildConfigRepository) cacheKey(guildID int64) string {
	return fmt.Sprintf("cache:guild_config:%d", guildID)
}

func (r *guildConfigRepository) Get(ctx context.Context, guildID int64) (*entity.GuildConfig, error) {
	if r.redisClient != nil {
		var cached entity.GuildConfig
		err := r.redisClient.GetObj(ctx, r.cacheKey(guildID), &cached)
		if err == nil {
			return &cached, nil
		}

		if !errors.Is(err, xredis.ErrNil) {
			xcontext.Logger(ctx).Warnf("Cannot get guild config from redis: %v", err)
		}
	}

	record := &entity.GuildConfig{}
	err := xcontext.DB(ctx).Take(record, "guild_id=?", guildID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.GuildConfig{GuildID: guildID}, nil
	}

	if err != nil {
		return nil, err
	}

	if r.redisClient != nil {
		if err := r.redisClient.SetObj(ctx, r.cacheKey(guildID), record, guildConfigCacheTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache guild config: %v", err)
		}
	}

	return record, nil
}

func (r *guildConfigRepository) Upsert(ctx context.Context, cfg *entity.GuildConfig) error {
	if err := xcontext.DB(ctx).Save(cfg).Error; err != nil {
		return err
	}

	if r.redisClient != nil {
		if err := r.redisClient.Del(ctx, r.cacheKey(cfg.GuildID)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate guild config cache: %v", err)
		}
	}

	return nil
}
