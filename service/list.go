// Package service holds the business logic between the HTTP handlers and the
// store: list orchestration, record mutation with the email cascade, and the
// single-record detail lookup.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/ayush-verma1708/backend-crm/cache"
	"github.com/ayush-verma1708/backend-crm/models"
	"github.com/ayush-verma1708/backend-crm/storage"
)

// ListResult is the list endpoint's response body.
type ListResult struct {
	TotalRecords int64           `json:"totalRecords"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"totalPages"`
	TotalAmount  float64         `json:"totalAmount"`
	Records      []models.Record `json:"records"`
}

// ListService serves the list endpoint through a TTL cache.
type ListService struct {
	store storage.Store
	cache cache.Cache
}

func NewListService(store storage.Store, c cache.Cache) *ListService {
	return &ListService{store: store, cache: c}
}

// List returns the records matching q with pagination metadata and the
// amount sum. Identical queries within the cache TTL return the previously
// computed result verbatim; writes do not invalidate, so cached results may
// lag the store by up to the TTL.
//
// When q is in amount-only mode every match is returned on one page and the
// sum is taken over the returned set; otherwise retrieval is paged and the
// sum comes from a store-side aggregate.
func (s *ListService) List(ctx context.Context, q storage.ListQuery) (*ListResult, error) {
	key := cache.ListKey(q)
	if data, ok := s.cache.Get(ctx, key); ok {
		var res ListResult
		if err := json.Unmarshal(data, &res); err == nil {
			return &res, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	}

	res, err := s.compute(ctx, q)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := s.cache.Set(ctx, key, data); err != nil {
			slog.Warn("caching list result failed", "key", key, "error", err)
		}
	}
	return res, nil
}

func (s *ListService) compute(ctx context.Context, q storage.ListQuery) (*ListResult, error) {
	if q.AmountOnly() {
		records, err := s.store.FindRecords(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("retrieving records: %w", err)
		}
		var sum float64
		for _, rec := range records {
			sum += rec.Amount
		}
		return &ListResult{
			TotalRecords: int64(len(records)),
			Page:         1,
			TotalPages:   1,
			TotalAmount:  sum,
			Records:      records,
		}, nil
	}

	records, err := s.store.FindRecords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("retrieving records: %w", err)
	}
	total, err := s.store.CountRecords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	sum, err := s.store.SumAmounts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("summing amounts: %w", err)
	}
	return &ListResult{
		TotalRecords: total,
		Page:         q.Page,
		TotalPages:   int(math.Ceil(float64(total) / float64(q.Limit))),
		TotalAmount:  sum,
		Records:      records,
	}, nil
}
