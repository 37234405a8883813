package repository

import (
	"context"
	"fmt"

	"feedgraph/internal/observability"

	"gorm.io/gorm"
)

// UniqueKeys returns the distinct keys of items in first-seen order.
func UniqueKeys[T any, K comparable](items []T, key func(T) K) []K {
	seen := make(map[K]struct{}, len(items))
	keys := make([]K, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// IndexBy maps each item by its key. Later items win on duplicate keys.
func IndexBy[T any, K comparable](items []T, key func(T) K) map[K]T {
	out := make(map[K]T, len(items))
	for _, item := range items {
		out[key(item)] = item
	}
	return out
}

// GroupBy buckets items by key, preserving their relative order.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		out[k] = append(out[k], item)
	}
	return out
}

type foreignKeyCount struct {
	FK    uint
	Count int
}

// CountByForeignKey counts rows of model per value of column in a single
// grouped query. Keys with no rows are absent from the result.
func CountByForeignKey(ctx context.Context, db *gorm.DB, model any, column string, ids []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	observability.StitchBatchSize.WithLabelValues(column).Observe(float64(len(ids)))

	var rows []foreignKeyCount
	err := db.WithContext(ctx).
		Model(model).
		Select(column+" AS fk, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}

	for _, row := range rows {
		counts[row.FK] = row.Count
	}
	return counts, nil
}
