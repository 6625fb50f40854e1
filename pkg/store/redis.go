package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pratikmalviya12/template-designer/pkg/cache"
	"github.com/Pratikmalviya12/template-designer/pkg/config"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
)

// RedisStore keeps templates in three keys under a prefix:
//
//	<prefix>templates          hash  id -> document JSON
//	<prefix>templates:summary  hash  id -> summary JSON
//	<prefix>templates:updated  zset  id scored by update time (ms)
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// DialRedis connects with cfg and pings the server, retrying transient
// failures with backoff.
func DialRedis(ctx context.Context, cfg config.Redis) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := cache.RetryWithBackoff(ctx, 100*time.Millisecond, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisStore(client, cfg.Prefix), nil
}

func (s *RedisStore) docsKey() string    { return s.prefix + "templates" }
func (s *RedisStore) summaryKey() string { return s.prefix + "templates:summary" }
func (s *RedisStore) indexKey() string   { return s.prefix + "templates:updated" }

func (s *RedisStore) Get(ctx context.Context, id string) (*document.Document, error) {
	data, err := s.client.HGet(ctx, s.docsKey(), id).Bytes()
	if err == redis.Nil {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load template %s", id)
	}
	return pkgio.UnmarshalJSON(data)
}

func (s *RedisStore) Put(ctx context.Context, doc *document.Document) error {
	if err := checkDoc(doc); err != nil {
		return err
	}
	body, err := pkgio.MarshalJSON(doc)
	if err != nil {
		return err
	}
	sum := summarize(doc, s.now())
	meta, err := json.Marshal(sum)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.docsKey(), sum.ID, body)
		p.HSet(ctx, s.summaryKey(), sum.ID, meta)
		p.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(sum.Updated.UnixMilli()), Member: sum.ID})
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save template %s", sum.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var removed *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		removed = p.HDel(ctx, s.docsKey(), id)
		p.HDel(ctx, s.summaryKey(), id)
		p.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete template %s", id)
	}
	if removed.Val() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list templates")
	}
	if len(ids) == 0 {
		return []Summary{}, nil
	}
	vals, err := s.client.HMGet(ctx, s.summaryKey(), ids...).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list templates")
	}

	out := make([]Summary, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // index entry without summary
		}
		var sum Summary
		if err := json.Unmarshal([]byte(str), &sum); err != nil {
			continue
		}
		out = append(out, sum)
	}
	sortSummaries(out)
	return out, nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
