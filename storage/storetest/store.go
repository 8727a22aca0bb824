// Package storetest provides an in-memory storage.Store for service and
// handler tests. Filtering mirrors the mongo predicate semantics closely
// enough for the behaviors the tests assert on.
package storetest

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush-verma1708/backend-crm/models"
	"github.com/ayush-verma1708/backend-crm/storage"
)

// Store keeps records and users in slices, newest record last. When Err is
// set every method fails with it, which is how tests simulate store outages.
type Store struct {
	mu      sync.Mutex
	records []models.Record
	users   []models.User

	Err error

	// FindRecordsCalls counts FindRecords invocations so cache tests can
	// tell a hit from a recompute.
	FindRecordsCalls int
}

func New() *Store {
	return &Store{}
}

var _ storage.Store = (*Store)(nil)

// AddRecord seeds a record, assigning an ID when it has none, and returns
// the stored copy.
func (s *Store) AddRecord(rec models.Record) models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	if rec.FullName == "" {
		rec.FullName = models.DeriveFullName(rec.FirstName, rec.LastName)
	}
	s.records = append(s.records, rec)
	return rec
}

// AddUser seeds a user profile.
func (s *Store) AddUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, user)
	return user
}

func (s *Store) InsertRecord(_ context.Context, rec *models.Record) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	s.records = append(s.records, *rec)
	return nil
}

func (s *Store) FindRecords(_ context.Context, q storage.ListQuery) ([]models.Record, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FindRecordsCalls++

	matched := s.matching(q)
	if !q.Paginated() {
		return matched, nil
	}
	skip := q.Skip()
	if skip >= len(matched) {
		return []models.Record{}, nil
	}
	end := skip + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], nil
}

func (s *Store) CountRecords(_ context.Context, q storage.ListQuery) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matching(q))), nil
}

func (s *Store) SumAmounts(_ context.Context, q storage.ListQuery) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, rec := range s.matching(q) {
		sum += rec.Amount
	}
	return sum, nil
}

func (s *Store) FindRecordByID(_ context.Context, id string) (*models.Record, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID.Hex() == id {
			out := rec
			return &out, nil
		}
	}
	return nil, storage.ErrRecordNotFound
}

func (s *Store) FindRecordsByEmail(_ context.Context, email string) ([]models.Record, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Record{}
	for _, rec := range s.records {
		if rec.Email == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) UpdateRecordByID(_ context.Context, id string, u storage.RecordUpdate) (*models.Record, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID.Hex() != id {
			continue
		}
		applyUpdate(&s.records[i], u)
		out := s.records[i]
		return &out, nil
	}
	return nil, storage.ErrRecordNotFound
}

func (s *Store) DeleteRecordByID(_ context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID.Hex() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return storage.ErrRecordNotFound
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.EmailAddress == email {
			out := user
			return &out, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (s *Store) UpdateUserByEmail(_ context.Context, email string, u storage.UserUpdate) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].EmailAddress != email {
			continue
		}
		s.users[i].EmailAddress = u.EmailAddress
		s.users[i].ModelType = u.ModelType
		s.users[i].StageName = u.StageName
		s.users[i].ModelInstaLink = u.ModelInstaLink
		return nil
	}
	return storage.ErrUserNotFound
}

// matching returns the filtered records newest first. Callers must hold mu.
func (s *Store) matching(q storage.ListQuery) []models.Record {
	out := []models.Record{}
	for i := len(s.records) - 1; i >= 0; i-- {
		if matches(q, s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}

func matches(q storage.ListQuery, rec models.Record) bool {
	if rec.FullName == "undefined undefined" {
		return false
	}
	if q.Search != "" && !searchMatches(q.Search, rec) {
		return false
	}
	if q.Magazine != "" && !containsFold(rec.Magazine, q.Magazine) {
		return false
	}
	if q.MinPrice != nil && rec.Amount < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && rec.Amount > *q.MaxPrice {
		return false
	}
	return true
}

func searchMatches(term string, rec models.Record) bool {
	for _, v := range []string{
		rec.FirstName, rec.LastName, rec.FullName, rec.Magazine,
		rec.Email, rec.ModelInstaLink, rec.LeadSource, rec.Notes,
	} {
		if containsFold(v, term) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func applyUpdate(rec *models.Record, u storage.RecordUpdate) {
	if u.FirstName != nil {
		rec.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		rec.LastName = *u.LastName
	}
	if u.FullName != nil {
		rec.FullName = *u.FullName
	}
	if u.Magazine != nil {
		rec.Magazine = *u.Magazine
	}
	if u.Amount != nil {
		rec.Amount = *u.Amount
	}
	if u.Email != nil {
		rec.Email = *u.Email
	}
	if u.ModelInstaLink != nil {
		rec.ModelInstaLink = *u.ModelInstaLink
	}
	if u.LeadSource != nil {
		rec.LeadSource = *u.LeadSource
	}
	if u.Notes != nil {
		rec.Notes = *u.Notes
	}
	if u.NoteDate != nil {
		rec.NoteDate = u.NoteDate
	}
}
