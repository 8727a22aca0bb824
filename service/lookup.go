package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush-verma1708/backend-crm/models"
	"github.com/ayush-verma1708/backend-crm/storage"
)

// RecordDetail is the detail-view response: the record itself, every record
// sharing its email (the record included), and the linked user profile when
// one exists.
type RecordDetail struct {
	Record           *models.Record  `json:"record"`
	SameEmailRecords []models.Record `json:"sameEmailRecords"`
	UserDetails      *models.User    `json:"userDetails"`
}

// LookupService serves the single-record detail view. No caching, no
// pagination.
type LookupService struct {
	store storage.Store
}

func NewLookupService(store storage.Store) *LookupService {
	return &LookupService{store: store}
}

// Get fetches the record plus its email siblings and user profile. A missing
// record is storage.ErrRecordNotFound; a missing user just leaves
// UserDetails nil.
func (s *LookupService) Get(ctx context.Context, id string) (*RecordDetail, error) {
	rec, err := s.store.FindRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	siblings, err := s.store.FindRecordsByEmail(ctx, rec.Email)
	if err != nil {
		return nil, fmt.Errorf("loading records sharing %s: %w", rec.Email, err)
	}

	user, err := s.store.FindUserByEmail(ctx, rec.Email)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("loading user %s: %w", rec.Email, err)
	}

	return &RecordDetail{
		Record:           rec,
		SameEmailRecords: siblings,
		UserDetails:      user,
	}, nil
}
