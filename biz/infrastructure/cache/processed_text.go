package cache

import (
	"context"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/redis"
	"fmt"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	processedTextCachePrefix = "processed_text"
	processedTextCacheExpire = 3600 // 1小时
)

// ProcessedTextCacheMapper 批改端展示用的整理后文本缓存
// 键包含内容哈希：定稿写入时主动重算，读取时按哈希命中即新鲜
type IProcessedTextCacheMapper interface {
	Get(ctx context.Context, itemKey, hash string) (string, error)
	Set(ctx context.Context, itemKey, hash, text string) error
	Delete(ctx context.Context, itemKey, hash string) error
}

type ProcessedTextCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewProcessedTextCacheMapper(config *config.Config) *ProcessedTextCacheMapper {
	return &ProcessedTextCacheMapper{
		rds: redis.GetRedis(config),
	}
}

func (m *ProcessedTextCacheMapper) Get(ctx context.Context, itemKey, hash string) (string, error) {
	cached, err := m.rds.GetCtx(ctx, m.buildCacheKey(itemKey, hash))
	if err != nil {
		return "", err
	}
	if cached == "" {
		return "", fmt.Errorf("cache miss")
	}
	return cached, nil
}

func (m *ProcessedTextCacheMapper) Set(ctx context.Context, itemKey, hash, text string) error {
	return m.rds.SetexCtx(ctx, m.buildCacheKey(itemKey, hash), text, processedTextCacheExpire)
}

func (m *ProcessedTextCacheMapper) Delete(ctx context.Context, itemKey, hash string) error {
	_, err := m.rds.DelCtx(ctx, m.buildCacheKey(itemKey, hash))
	return err
}

// buildCacheKey 构造缓存key
func (m *ProcessedTextCacheMapper) buildCacheKey(itemKey, hash string) string {
	return fmt.Sprintf("%s:%s:%s", processedTextCachePrefix, itemKey, hash)
}
