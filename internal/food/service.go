package food

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/idalopban/ComVida/internal/cache"
	"github.com/idalopban/ComVida/internal/repo"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Service answers food lookups, caching searches when a KV store is set.
type Service struct {
	repo   repo.FoodRepository
	kv     cache.KVStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewService builds a Service. kv may be nil to disable caching.
func NewService(r repo.FoodRepository, kv cache.KVStore, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{repo: r, kv: kv, ttl: ttl, logger: logger}
}

func SearchKey(query string, limit int) string {
	return fmt.Sprintf("food:search:%s:%d", strings.ToLower(strings.TrimSpace(query)), limit)
}

// Search returns foods whose code or name contains query. Cache failures
// are logged and the database is used instead.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]repo.Food, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	key := SearchKey(query, limit)

	if s.kv != nil {
		var cached []repo.Food
		err := cache.GetJSON(ctx, s.kv, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("food cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	foods, err := s.repo.SearchFoods(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if s.kv != nil {
		if err := cache.SetJSON(ctx, s.kv, key, foods, s.ttl); err != nil {
			s.logger.Warn("food cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return foods, nil
}

func (s *Service) Get(ctx context.Context, code string) (repo.Food, error) {
	return s.repo.GetFood(ctx, code)
}
