package redisclient

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/mintleaf-xyz/venue/base/log"
)

const (
	connectTimeout = 3 * time.Second
	readTimeout    = 3 * time.Second
	writeTimeout   = 3 * time.Second

	retryCount    = 3
	retryInterval = 500 * time.Millisecond
)

// MustConnectRedis returns a redis pool or panics
func MustConnectRedis(uri, password string, maxIdle, maxActive int) *redis.Pool {
	pool, err := ConnectRedis(uri, password, maxIdle, maxActive)
	if err != nil {
		log.Log().WithFields(log.Fields{"uri": uri, "err": err}).Panic("fail to dial redis")
	}
	return pool
}

// ConnectRedis creates a redigo pool and verifies connectivity with a PING
func ConnectRedis(uri, password string, maxIdle, maxActive int) (*redis.Pool, error) {
	pool := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		IdleTimeout: 240 * time.Second,
		Wait:        true,
		Dial: func() (redis.Conn, error) {
			opts := []redis.DialOption{
				redis.DialConnectTimeout(connectTimeout),
				redis.DialReadTimeout(readTimeout),
				redis.DialWriteTimeout(writeTimeout),
			}
			if password != "" {
				opts = append(opts, redis.DialPassword(password))
			}
			return redis.Dial("tcp", uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	var err error
	for i := 0; i < retryCount; i++ {
		conn := pool.Get()
		_, err = conn.Do("PING")
		conn.Close()
		if err == nil {
			return pool, nil
		}
		log.Log().WithFields(log.Fields{"uri": uri, "err": err}).Warn("redis ping failed, retrying")
		time.Sleep(retryInterval)
	}
	return nil, err
}
