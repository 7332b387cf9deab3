package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ramp-cyb/workhours/config"
)

// Client Redis 客户端封装
// 当前用于月报缓存与接口速率限制；后续可扩展分布式锁等场景
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

// ── 月报缓存 ──

const reportPrefix = "report:monthly:"

func reportKey(employeeID string, year, month int) string {
	return fmt.Sprintf("%s%s:%04d-%02d", reportPrefix, employeeID, year, month)
}

// GetReport 读取月报缓存；未命中返回 (nil, nil)
func (c *Client) GetReport(ctx context.Context, employeeID string, year, month int) ([]byte, error) {
	raw, err := c.rdb.Get(ctx, reportKey(employeeID, year, month)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// SetReport 写入月报缓存
func (c *Client) SetReport(ctx context.Context, employeeID string, year, month int, raw []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return c.rdb.Set(ctx, reportKey(employeeID, year, month), raw, ttl).Err()
}

// InvalidateReport 数据变更后失效对应月份的月报缓存
func (c *Client) InvalidateReport(ctx context.Context, employeeID string, year, month int) error {
	return c.rdb.Del(ctx, reportKey(employeeID, year, month)).Err()
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数限流；窗口内首次访问时设置过期
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
