package redis

import (
	"context"
	"sort"
	"strings"

	"github.com/urbanatlas/bdnbq/internal/db"
)

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// ListIndexes enumerates FT indexes via FT._LIST, keeping only names with the
// given prefix. Results are sorted for deterministic iteration order.
func (s *Store) ListIndexes(ctx context.Context, prefix string) ([]string, error) {
	cmd := s.b().Arbitrary("FT._LIST").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpIndexList, Err: err}
	}

	var names []string
	for _, msg := range raw {
		name, err := msg.ToString()
		if err != nil {
			continue
		}
		if prefix == "" || strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
