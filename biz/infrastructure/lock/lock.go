package lock

import (
	"context"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/redis"
	"time"

	"github.com/google/uuid"
	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

// Locker 可获取可释放的互斥锁
type Locker interface {
	Lock() error
	Unlock() error
}

// Factory 按key创建互斥锁
type Factory interface {
	NewMutex(ctx context.Context, key string, ttl, retry int) Locker
}

type RedisFactory struct{}

func NewRedisFactory() *RedisFactory {
	return &RedisFactory{}
}

func (f *RedisFactory) NewMutex(ctx context.Context, key string, ttl, retry int) Locker {
	return NewMutex(ctx, key, ttl, retry)
}

// Mutex 基于Redis的互斥锁
// 同一作文的缝合裁决在同一时刻只允许一个写入者
type Mutex struct {
	ctx      context.Context
	rds      *gozero_redis.Redis
	key      string
	value    string
	ttl      int // 秒
	retry    int // 获取锁的重试次数，每次间隔100ms
	acquired time.Time
}

func NewMutex(ctx context.Context, key string, ttl, retry int) *Mutex {
	return &Mutex{
		ctx:   ctx,
		rds:   redis.GetRedis(config.GetConfig()),
		key:   "lock:" + key,
		value: uuid.New().String(),
		ttl:   ttl,
		retry: retry,
	}
}

// Lock 尝试获取锁，获取失败返回error
func (m *Mutex) Lock() error {
	for i := 0; i <= m.retry; i++ {
		ok, err := m.rds.SetnxExCtx(m.ctx, m.key, m.value, m.ttl)
		if err != nil {
			return err
		}
		if ok {
			m.acquired = time.Now()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return ErrLockTimeout
}

// Unlock 释放锁，仅释放自己持有的锁
func (m *Mutex) Unlock() error {
	val, err := m.rds.GetCtx(m.ctx, m.key)
	if err != nil {
		return err
	}
	if val != m.value {
		// 锁已过期且被别人持有，不能删除
		return nil
	}
	_, err = m.rds.DelCtx(m.ctx, m.key)
	return err
}

// Expired 持有时间是否已超过TTL
func (m *Mutex) Expired() bool {
	return time.Since(m.acquired) > time.Duration(m.ttl)*time.Second
}

var ErrLockTimeout = errLockTimeout{}

type errLockTimeout struct{}

func (errLockTimeout) Error() string { return "acquire lock timeout" }
