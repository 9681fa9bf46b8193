package cache

import (
	"context"
	"fmt"
	"time"

	"AttendBot/storage/redis"
)

// Redis 标记位：调度防重与消息去重。
// 都是尽力而为的防护，Redis 不可用时调用方自行降级。
const (
	triggerFiredPrefix     = "trigger:fired"
	messageProcessedPrefix = "message:processed"

	firedTTL     = 48 * time.Hour
	processedTTL = 48 * time.Hour
)

// TryMarkTriggerFired 原子性标记触发器在指定窗口已触发（SETNX）。
// 返回 true 表示本进程抢到了该窗口，可以执行任务；false 表示已被触发过，
// 用于进程重启或多实例部署下避免同一分钟窗口重复发送。
func TryMarkTriggerFired(ctx context.Context, trigger, window string) (bool, error) {
	key := redis.Key(triggerFiredPrefix, trigger, window)

	result, err := redis.Client().SetNX(ctx, key, "1", firedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark trigger fired: %w", err)
	}
	return result, nil
}

// TryMarkMessageProcessing 尝试原子性地标记消息正在处理（SETNX）。
// 返回 true 表示首次处理，false 表示重复消息或正在处理。
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing 取消消息处理标记（处理失败时调用，允许重试）
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed 标记消息已处理（处理成功时调用，延长 TTL）
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}
