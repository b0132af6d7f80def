package service

import (
	"context"
	"encoding/json"
	"resto-doc-server/internal/config"
	"time"
)

// 统计接口的 Redis 读穿缓存。未启用或不可用时全部直查数据库，
// 缓存读写失败一律静默降级，绝不影响主流程。

const statsCacheTimeout = time.Second

func statsCacheKey(projectID string) string {
	return RedisKey("stats", projectID)
}

func loadStatsCache(projectID string) (*ImageStats, bool) {
	client := GetRedisClient()
	if client == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), statsCacheTimeout)
	defer cancel()

	raw, err := client.Get(ctx, statsCacheKey(projectID)).Bytes()
	if err != nil {
		return nil, false
	}

	var stats ImageStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func storeStatsCache(projectID string, stats *ImageStats) {
	client := GetRedisClient()
	if client == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	ttl := time.Duration(config.Get().Redis.StatsTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), statsCacheTimeout)
	defer cancel()
	_ = client.Set(ctx, statsCacheKey(projectID), raw, ttl).Err()
}

// InvalidateStatsCache 写操作后清除项目的统计缓存。
// 排序位不参与统计口径，排序批量写入无需失效。
func InvalidateStatsCache(projectID string) {
	client := GetRedisClient()
	if client == nil || projectID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), statsCacheTimeout)
	defer cancel()
	_ = client.Del(ctx, statsCacheKey(projectID)).Err()
}
