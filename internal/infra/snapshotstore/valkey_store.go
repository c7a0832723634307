package snapshotstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/fortune"
)

const defaultTopLimit = 10

// ValkeyStore keeps dashboards and number tallies in a Valkey-compatible
// database. Dashboard keys embed a generation counter; InvalidateAll bumps
// it and the old generation ages out through its TTL.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "saju"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetDashboard(ctx context.Context, key string) (fortune.Dashboard, bool, error) {
	gen, err := s.generation(ctx)
	if err != nil {
		return fortune.Dashboard{}, false, err
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.dashboardKey(gen, key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return fortune.Dashboard{}, false, nil
		}
		return fortune.Dashboard{}, false, err
	}
	var d fortune.Dashboard
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return fortune.Dashboard{}, false, err
	}
	return d, true, nil
}

func (s *ValkeyStore) SaveDashboard(ctx context.Context, key string, d fortune.Dashboard, ttl time.Duration) error {
	gen, err := s.generation(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.setString(ctx, s.dashboardKey(gen, key), string(payload), ttl)
}

func (s *ValkeyStore) InvalidateAll(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Incr().Key(s.generationKey()).Build()).Error()
}

func (s *ValkeyStore) RecordNumbers(ctx context.Context, numbers []int) error {
	if len(numbers) == 0 {
		return nil
	}
	cmds := make([]valkey.Completed, 0, len(numbers))
	for _, n := range numbers {
		cmds = append(cmds, s.client.B().Zincrby().Key(s.tallyKey()).Increment(1).Member(strconv.Itoa(n)).Build())
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (s *ValkeyStore) TopNumbers(ctx context.Context, limit int) ([]fortune.NumberCount, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.tallyKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]fortune.NumberCount, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			// RESP3 returns [member, score] per element
			if member, err = tuple[0].ToString(); err != nil {
				return nil, err
			}
			if score, err = tuple[1].ToFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				return nil, err
			}
			if score, err = arr[i+1].ToFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		n, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("tally member %q: %w", member, err)
		}
		out = append(out, fortune.NumberCount{Number: n, Count: int64(score)})
	}
	sortCounts(out)
	return out, nil
}

func (s *ValkeyStore) generation(ctx context.Context) (int64, error) {
	gen, err := s.client.Do(ctx, s.client.B().Get().Key(s.generationKey()).Build()).AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}

func (s *ValkeyStore) setString(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := s.client.B().Set().Key(key).Value(value)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) dashboardKey(gen int64, key string) string {
	return fmt.Sprintf("%s:dash:%d:%s", s.prefix, gen, key)
}

func (s *ValkeyStore) generationKey() string {
	return fmt.Sprintf("%s:dash:gen", s.prefix)
}

func (s *ValkeyStore) tallyKey() string {
	return fmt.Sprintf("%s:numbers", s.prefix)
}

var _ fortune.SnapshotStore = (*ValkeyStore)(nil)
