// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/oblog/internal/metrics"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/repository"
)

const categoriesKey = "categories:all"

type cachedCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRepository caches the full category list of another
// CategoryRepository. Every FindAll decodes fresh entities, so callers
// never share a graph. Cache failures fall through to the wrapped
// repository.
type CategoryRepository struct {
	next   repository.CategoryRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCategoryRepository wraps next with c.
func NewCategoryRepository(next repository.CategoryRepository, c Cache, ttl time.Duration, logger *slog.Logger) *CategoryRepository {
	return &CategoryRepository{next: next, cache: c, ttl: ttl, logger: logger}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*model.Category, error) {
	data, err := r.cache.Get(ctx, categoriesKey)
	if err == nil {
		var cached []cachedCategory
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheLookups.WithLabelValues("categories", "hit").Inc()
			out := make([]*model.Category, 0, len(cached))
			for _, c := range cached {
				out = append(out, &model.Category{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
			}
			return out, nil
		}
		r.logger.WarnContext(ctx, "discarding corrupt category cache entry")
	} else if !errors.Is(err, ErrCacheMiss) {
		r.logger.WarnContext(ctx, "category cache read failed", "error", err)
	}
	metrics.CacheLookups.WithLabelValues("categories", "miss").Inc()

	categories, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cached := make([]cachedCategory, 0, len(categories))
	for _, c := range categories {
		cached = append(cached, cachedCategory{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	if data, err := json.Marshal(cached); err == nil {
		if err := r.cache.Set(ctx, categoriesKey, data, r.ttl); err != nil {
			r.logger.WarnContext(ctx, "category cache write failed", "error", err)
		}
	}

	return categories, nil
}

// FindByName reads through to the wrapped repository.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return r.next.FindByName(ctx, name)
}

// Invalidate drops the cached category list.
func (r *CategoryRepository) Invalidate(ctx context.Context) error {
	return r.cache.Delete(ctx, categoriesKey)
}
