package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ayush-verma1708/backend-crm/models"
	"github.com/ayush-verma1708/backend-crm/storage"
)

// ErrNoValidFields means every field an update carried was empty or absent.
var ErrNoValidFields = errors.New("no valid fields supplied for update")

// RecordService handles create, update, notes and delete for records.
type RecordService struct {
	store storage.Store
}

func NewRecordService(store storage.Store) *RecordService {
	return &RecordService{store: store}
}

// Create validates the payload and persists a new record. The first violated
// constraint is returned as a *models.ValidationError.
func (s *RecordService) Create(ctx context.Context, p *models.RecordPayload) (*models.Record, error) {
	if err := p.ValidateCreate(); err != nil {
		return nil, err
	}
	rec := &models.Record{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		FullName:       models.DeriveFullName(p.FirstName, p.LastName),
		Magazine:       p.Magazine,
		Amount:         *p.Amount,
		Email:          p.Email,
		ModelInstaLink: p.ModelInstaLink,
		LeadSource:     p.LeadSource,
		Notes:          p.Notes,
		NoteDate:       p.NoteDate,
	}
	if err := s.store.InsertRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating record: %w", err)
	}
	return rec, nil
}

// Update applies the non-empty payload fields to the record with the given
// id, then cascades the same fields to every record sharing the updated
// email and to the matching user profile.
//
// The cascade is best effort: there is no multi-document transaction, the
// sibling writes run concurrently, and a failure after the primary update
// leaves some documents updated and others not. A reader racing the cascade
// may observe a mix of old and new sibling values.
func (s *RecordService) Update(ctx context.Context, id string, p *models.RecordPayload) (*models.Record, error) {
	u := buildUpdate(p)
	if u.Empty() {
		return nil, ErrNoValidFields
	}
	if err := p.ValidateUpdate(); err != nil {
		return nil, err
	}

	target, err := s.store.FindRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateRecordByID(ctx, id, withFullName(u, target))
	if err != nil {
		return nil, fmt.Errorf("updating record %s: %w", id, err)
	}

	if err := s.cascade(ctx, updated, u, p); err != nil {
		return nil, err
	}
	return updated, nil
}

// cascade pushes the update out to same-email records and the linked user.
func (s *RecordService) cascade(ctx context.Context, updated *models.Record, u storage.RecordUpdate, p *models.RecordPayload) error {
	siblings, err := s.store.FindRecordsByEmail(ctx, updated.Email)
	if err != nil {
		return fmt.Errorf("loading records sharing %s: %w", updated.Email, err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for _, sib := range siblings {
		if sib.ID == updated.ID {
			continue
		}
		wg.Add(1)
		go func(sib models.Record) {
			defer wg.Done()
			if _, err := s.store.UpdateRecordByID(ctx, sib.ID.Hex(), withFullName(u, &sib)); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(sib)
	}
	wg.Wait()
	if firstErr != nil {
		return fmt.Errorf("propagating update to records sharing %s: %w", updated.Email, firstErr)
	}

	user, err := s.store.FindUserByEmail(ctx, updated.Email)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading user %s: %w", updated.Email, err)
	}

	uu := storage.UserUpdate{
		EmailAddress:   fallback(p.Email, user.EmailAddress),
		ModelType:      fallback(p.ModelType, user.ModelType),
		StageName:      fallback(p.StageName, user.StageName),
		ModelInstaLink: fallback(p.ModelInstaLink, user.ModelInstaLink),
	}
	if err := s.store.UpdateUserByEmail(ctx, user.EmailAddress, uu); err != nil {
		return fmt.Errorf("propagating update to user %s: %w", user.EmailAddress, err)
	}
	return nil
}

// UpdateNotes sets the notes annotation on a record. A missing note date
// defaults to now.
func (s *RecordService) UpdateNotes(ctx context.Context, id, note string, noteDate *time.Time) (*models.Record, error) {
	if noteDate == nil {
		now := time.Now().UTC()
		noteDate = &now
	}
	updated, err := s.store.UpdateRecordByID(ctx, id, storage.RecordUpdate{
		Notes:    &note,
		NoteDate: noteDate,
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a record by id.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteRecordByID(ctx, id)
}

// buildUpdate keeps only payload fields that actually carry a value; empty
// strings count as absent.
func buildUpdate(p *models.RecordPayload) storage.RecordUpdate {
	u := storage.RecordUpdate{}
	if p.FirstName != "" {
		u.FirstName = &p.FirstName
	}
	if p.LastName != "" {
		u.LastName = &p.LastName
	}
	if p.Magazine != "" {
		u.Magazine = &p.Magazine
	}
	if p.Amount != nil {
		u.Amount = p.Amount
	}
	if p.Email != "" {
		u.Email = &p.Email
	}
	if p.ModelInstaLink != "" {
		u.ModelInstaLink = &p.ModelInstaLink
	}
	if p.LeadSource != "" {
		u.LeadSource = &p.LeadSource
	}
	if p.Notes != "" {
		u.Notes = &p.Notes
	}
	if p.NoteDate != nil {
		u.NoteDate = p.NoteDate
	}
	return u
}

// withFullName re-derives full_name for one target record when the update
// touches either name part, merging the update over the record's current
// values.
func withFullName(u storage.RecordUpdate, rec *models.Record) storage.RecordUpdate {
	if u.FirstName == nil && u.LastName == nil {
		return u
	}
	first := rec.FirstName
	if u.FirstName != nil {
		first = *u.FirstName
	}
	last := rec.LastName
	if u.LastName != nil {
		last = *u.LastName
	}
	full := models.DeriveFullName(first, last)
	u.FullName = &full
	return u
}

func fallback(v, existing string) string {
	if v != "" {
		return v
	}
	return existing
}
