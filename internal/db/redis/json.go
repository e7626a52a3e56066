package redis

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/ripple-forum/ripple/internal/db"
)

// JSONSet stores a JSON document at the given key and path.
func (s *Store) JSONSet(ctx context.Context, key, path string, data []byte) error {
	cmd := s.b().Arbitrary("JSON.SET").Keys(key).Args(path, string(data)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpJSONSet, Err: err}
	}
	return nil
}

// JSONSetMulti stores several JSON documents in one pipelined round trip.
func (s *Store) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(items))
	for _, it := range items {
		cmds = append(cmds, s.b().Arbitrary("JSON.SET").Keys(it.Key).Args(it.Path, string(it.Data)).Build())
	}

	for _, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpJSONSet, Err: err}
		}
	}
	return nil
}

// JSONGet retrieves a JSON document by key and optional paths.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	args := make([]string, len(paths))
	copy(args, paths)

	cmd := s.b().Arbitrary("JSON.GET").Keys(key).Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if raw == "" {
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}

// JSONGetMulti fetches the root document of every key in one pipelined
// round trip. Missing keys yield nil entries.
func (s *Store) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, 0, len(keys))
	for _, key := range keys {
		cmds = append(cmds, s.b().Arbitrary("JSON.GET").Keys(key).Args("$").Build())
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([][]byte, len(results))
	for i, res := range results {
		raw, err := res.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, &db.Error{Op: db.OpJSONGet, Err: err}
		}
		out[i] = []byte(raw)
	}
	return out, nil
}

// JSONNumIncrBy atomically adds delta to the number at path and returns the
// new value. Missing key or path maps to db.ErrKeyNotFound.
func (s *Store) JSONNumIncrBy(ctx context.Context, key, path string, delta int64) (int64, error) {
	cmd := s.b().Arbitrary("JSON.NUMINCRBY").Keys(key).Args(path, strconv.FormatInt(delta, 10)).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) || isRedisErr(err, "doesn't exist") {
			return 0, db.ErrKeyNotFound
		}
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: err}
	}

	// With a $-style path the reply is a JSON array of new values, one per
	// matched path; empty when the path matched nothing.
	var values []json.Number
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: err}
	}
	if len(values) == 0 {
		return 0, db.ErrKeyNotFound
	}
	n, err := values[0].Int64()
	if err != nil {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: err}
	}
	return n, nil
}
