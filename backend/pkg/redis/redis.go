package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
)

// Client Redis 客户端封装
// 当前用于评估结果跨请求缓存与上传限流；连接失败时上层降级运行
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 评估结果缓存 ──

const evalCachePrefix = "eval:"

// GetEval 读取缓存的评估结果（JSON 文本）；未命中返回 ok=false
func (c *Client) GetEval(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, evalCachePrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetEval 写入评估结果缓存
func (c *Client) SetEval(ctx context.Context, key string, payload string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, evalCachePrefix+key, payload, ttl).Err(); err != nil {
		c.logger.Warn("评估缓存写入失败", zap.Error(err))
	}
}

// InvalidateEval 删除某用户的全部评估缓存（成绩单/方案变更后调用）
func (c *Client) InvalidateEval(ctx context.Context, userID string) {
	iter := c.rdb.Scan(ctx, 0, evalCachePrefix+userID+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("评估缓存删除失败", zap.Error(err))
		}
	}
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数限流：窗口内不超过 limit 次为放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
