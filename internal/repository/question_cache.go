package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"quiz_scoring_backend/internal/model"
	"quiz_scoring_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const questionCachePrefix = "quiz:question:"

// CachedQuestionRepository 读穿透缓存：先查 Redis，未命中的再回源并回填
type CachedQuestionRepository struct {
	Source QuestionSource
	Redis  *redis.Client
	TTL    time.Duration
}

func NewCachedQuestionRepository(source QuestionSource, rdb *redis.Client, ttl time.Duration) *CachedQuestionRepository {
	return &CachedQuestionRepository{Source: source, Redis: rdb, TTL: ttl}
}

func questionCacheKey(id string) string {
	return questionCachePrefix + id
}

func (r *CachedQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if r.Redis == nil {
		return r.Source.GetByIDs(ctx, ids)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = questionCacheKey(id)
	}

	vals, err := r.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		// 缓存不可用时直接回源
		logger.Log.Warn("question cache read failed", zap.Error(err))
		return r.Source.GetByIDs(ctx, ids)
	}

	hits := make([]model.Question, 0, len(ids))
	var misses []string
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			misses = append(misses, ids[i])
			continue
		}
		var q model.Question
		if err := json.Unmarshal([]byte(s), &q); err != nil {
			misses = append(misses, ids[i])
			continue
		}
		hits = append(hits, q)
	}

	if len(misses) > 0 {
		fetched, err := r.Source.GetByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		r.fill(ctx, fetched)
		hits = append(hits, fetched...)
	}

	sortQuestions(hits)
	return hits, nil
}

func (r *CachedQuestionRepository) fill(ctx context.Context, qs []model.Question) {
	if len(qs) == 0 {
		return
	}
	pipe := r.Redis.Pipeline()
	for _, q := range qs {
		data, err := json.Marshal(q)
		if err != nil {
			continue
		}
		pipe.Set(ctx, questionCacheKey(q.ID), data, r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("question cache write failed", zap.Error(err))
	}
}

// Invalidate 删除缓存的题目，题目更新后调用
func (r *CachedQuestionRepository) Invalidate(ctx context.Context, ids ...string) error {
	if r.Redis == nil || len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = questionCacheKey(id)
	}
	return r.Redis.Del(ctx, keys...).Err()
}

// sortQuestions 与数据库查询保持相同顺序
func sortQuestions(qs []model.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].SortOrder != qs[j].SortOrder {
			return qs[i].SortOrder < qs[j].SortOrder
		}
		return qs[i].ID < qs[j].ID
	})
}
