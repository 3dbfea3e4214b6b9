package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisSignalStore keeps, per road, a sorted set of device ids scored by the
// time of their latest signal in unix milliseconds. Counting distinct devices
// since t is a ZCOUNT over [t, +inf).
type RedisSignalStore struct {
	Client    redis.Cmdable
	Prefix    string
	Retention time.Duration
}

func NewRedisSignalStore(client redis.Cmdable, retention time.Duration) *RedisSignalStore {
	return &RedisSignalStore{Client: client, Prefix: "traffic", Retention: retention}
}

func (s *RedisSignalStore) key(edgeID int64) string {
	return s.Prefix + ":road:" + strconv.FormatInt(edgeID, 10) + ":devices"
}

// Record a signal; older entries than Retention are trimmed from the road's set.
func (s *RedisSignalStore) RecordSignal(ctx context.Context, signal domain.Signal) (err error) {
	defer obs.Time(ctx, "signals.redis.Record")(&err)

	if s.Client == nil {
		return errors.New("redis signal store: client is nil")
	}
	device := strings.TrimSpace(signal.DeviceID)
	if device == "" {
		return errors.New("record signal: device id must not be empty")
	}

	key := s.key(signal.EdgeID)
	score := float64(signal.Timestamp.UnixMilli())

	_, err = s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		// GT keeps the latest timestamp when signals arrive out of order.
		p.ZAddArgs(ctx, key, redis.ZAddArgs{
			GT:      true,
			Members: []redis.Z{{Score: score, Member: device}},
		})
		if s.Retention > 0 {
			cutoff := signal.Timestamp.Add(-s.Retention).UnixMilli()
			p.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff, 10))
			p.Expire(ctx, key, s.Retention)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record signal road=%d: %w", signal.EdgeID, err)
	}

	return nil
}

func (s *RedisSignalStore) CountDistinctDevices(ctx context.Context, edgeID int64, since time.Time) (_ int, err error) {
	defer obs.Time(ctx, "signals.redis.Count")(&err)

	if s.Client == nil {
		return 0, errors.New("redis signal store: client is nil")
	}

	n, err := s.Client.ZCount(ctx, s.key(edgeID), strconv.FormatInt(since.UnixMilli(), 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("count distinct devices road=%d: %w", edgeID, err)
	}

	return int(n), nil
}
