package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/config"
	"github.com/YusovID/skillswap-service/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

var _ repository.KeyValueStore = (*KVRepository)(nil)

// NewClient connects to Redis and pings it before handing the client out.
func NewClient(cfg config.Redis, log *slog.Logger) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("can't connect to redis at %s: %w", cfg.Addr, err)
	}

	log.Info("connected to redis", slog.String("addr", cfg.Addr))

	return rdb, nil
}

type KVRepository struct {
	rdb goredis.UniversalClient
	log *slog.Logger
}

func NewKVRepository(rdb goredis.UniversalClient, log *slog.Logger) *KVRepository {
	return &KVRepository{
		rdb: rdb,
		log: log,
	}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "internal.repository.redis.Get"

	v, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%w: key '%s'", apperrors.ErrNotFound, key)
		}

		return nil, fmt.Errorf("%s: failed to get key: %w", op, err)
	}

	return v, nil
}

func (r *KVRepository) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	const op = "internal.repository.redis.GetMany"

	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to mget: %w", op, err)
	}

	for i, v := range values {
		switch val := v.(type) {
		case nil:
		case string:
			out[keys[i]] = []byte(val)
		default:
			return nil, fmt.Errorf("%s: unexpected value type %T for key '%s'", op, v, keys[i])
		}
	}

	return out, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	const op = "internal.repository.redis.Set"

	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: failed to set key: %w", op, err)
	}

	return nil
}

// SetMany wraps the writes in MULTI/EXEC so readers never see a partial
// snapshot.
func (r *KVRepository) SetMany(ctx context.Context, entries map[string][]byte) error {
	const op = "internal.repository.redis.SetMany"

	if len(entries) == 0 {
		return nil
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, k, v, 0)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: failed to exec transaction: %w", op, err)
	}

	r.log.Debug("keys written", slog.String("op", op), slog.Int("count", len(entries)))

	return nil
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	const op = "internal.repository.redis.Delete"

	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: failed to delete key: %w", op, err)
	}

	return nil
}
