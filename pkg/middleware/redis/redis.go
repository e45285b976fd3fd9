package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/extra/rediscmd/v9"
	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
)

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

var redisClient *r.Client

func InitRedis(ctx context.Context, conf *Redis) {
	var err error
	redisClient, err = initRedis(ctx, conf)
	if err != nil {
		logger.Fatalf(ctx, "init redis fail err: %+v", err)
	}
}

func initRedis(ctx context.Context, conf *Redis) (*r.Client, error) {
	client := r.NewClient(&r.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})
	client.AddHook(logHook{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func CloseRedis(_ context.Context) {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}

// GetClient returns nil until InitRedis has succeeded.
func GetClient() *r.Client {
	return redisClient
}

type logHook struct{}

func (logHook) DialHook(next r.DialHook) r.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			logger.Errorf(ctx, "redis dial %s err: %+v", addr, err)
		}
		return conn, err
	}
}

func (logHook) ProcessHook(next r.ProcessHook) r.ProcessHook {
	return func(ctx context.Context, cmd r.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if err != nil && err != r.Nil {
			logger.Errorf(ctx, "redis cmd: %s cost: %s err: %+v", rediscmd.CmdString(cmd), time.Since(start), err)
			return err
		}
		logger.Debugf(ctx, "redis cmd: %s cost: %s", rediscmd.CmdString(cmd), time.Since(start))
		return err
	}
}

func (logHook) ProcessPipelineHook(next r.ProcessPipelineHook) r.ProcessPipelineHook {
	return func(ctx context.Context, cmds []r.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		summary, cmdsStr := rediscmd.CmdsString(cmds)
		if err != nil {
			logger.Errorf(ctx, "redis pipeline %s: %s cost: %s err: %+v", summary, cmdsStr, time.Since(start), err)
			return err
		}
		logger.Debugf(ctx, "redis pipeline %s: %s cost: %s", summary, cmdsStr, time.Since(start))
		return nil
	}
}
