package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/log"
)

type impl struct {
	pool *redis.Pool
}

func New(pool *redis.Pool) Service {
	return &impl{pool: pool}
}

func (im *impl) Get(c bCtx.Ctx, key string) ([]byte, error) {
	conn := im.pool.Get()
	defer conn.Close()
	data, err := redis.Bytes(conn.Do("GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"key": key, "err": err}).Error("redis GET failed")
		return nil, err
	}
	return data, nil
}

func (im *impl) Set(c bCtx.Ctx, key string, value []byte, expiration time.Duration) error {
	conn := im.pool.Get()
	defer conn.Close()
	var err error
	if expiration > 0 {
		_, err = conn.Do("SET", key, value, "PX", int64(expiration/time.Millisecond))
	} else {
		_, err = conn.Do("SET", key, value)
	}
	if err != nil {
		c.WithFields(log.Fields{"key": key, "err": err}).Error("redis SET failed")
		return err
	}
	return nil
}

func (im *impl) Del(c bCtx.Ctx, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	conn := im.pool.Get()
	defer conn.Close()
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	if _, err := conn.Do("DEL", args...); err != nil {
		c.WithFields(log.Fields{"keys": keys, "err": err}).Error("redis DEL failed")
		return err
	}
	return nil
}

func (im *impl) Exists(c bCtx.Ctx, key string) (bool, error) {
	conn := im.pool.Get()
	defer conn.Close()
	n, err := redis.Int(conn.Do("EXISTS", key))
	if err != nil {
		c.WithFields(log.Fields{"key": key, "err": err}).Error("redis EXISTS failed")
		return false, err
	}
	return n > 0, nil
}

func (im *impl) IncrBy(c bCtx.Ctx, key string, amount int64) (int64, error) {
	conn := im.pool.Get()
	defer conn.Close()
	val, err := redis.Int64(conn.Do("INCRBY", key, amount))
	if err != nil {
		c.WithFields(log.Fields{"key": key, "err": err}).Error("redis INCRBY failed")
		return 0, err
	}
	return val, nil
}
