// Package storage defines the persistence abstraction the services are built
// on, so the mongo implementation can be swapped for a fake in tests.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ayush-verma1708/backend-crm/models"
)

var (
	// ErrRecordNotFound is returned when no record has the given id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUserNotFound is returned when no user profile has the given email.
	ErrUserNotFound = errors.New("user not found")
)

// Store is the document-store surface consumed by the service layer.
type Store interface {
	// InsertRecord persists a new record and fills in its assigned ID.
	InsertRecord(ctx context.Context, rec *models.Record) error

	// FindRecords returns the records matching the query, newest first.
	// Pagination (skip/limit) applies unless the query is in amount-only
	// mode, in which case every match is returned.
	FindRecords(ctx context.Context, q ListQuery) ([]models.Record, error)

	// CountRecords returns the total number of records matching the query,
	// ignoring pagination.
	CountRecords(ctx context.Context, q ListQuery) (int64, error)

	// SumAmounts returns the sum of the amount field over every record
	// matching the query, ignoring pagination.
	SumAmounts(ctx context.Context, q ListQuery) (float64, error)

	FindRecordByID(ctx context.Context, id string) (*models.Record, error)
	FindRecordsByEmail(ctx context.Context, email string) ([]models.Record, error)

	// UpdateRecordByID applies the non-nil fields of u and returns the
	// updated document.
	UpdateRecordByID(ctx context.Context, id string, u RecordUpdate) (*models.Record, error)

	DeleteRecordByID(ctx context.Context, id string) error

	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUserByEmail overwrites the profile fields of the user whose
	// Email_Address matches email.
	UpdateUserByEmail(ctx context.Context, email string, u UserUpdate) error
}

// RecordUpdate is a partial update: nil fields are left unchanged.
type RecordUpdate struct {
	FirstName      *string
	LastName       *string
	FullName       *string
	Magazine       *string
	Amount         *float64
	Email          *string
	ModelInstaLink *string
	LeadSource     *string
	Notes          *string
	NoteDate       *time.Time
}

// Empty reports whether the update carries no fields at all.
func (u RecordUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.FullName == nil &&
		u.Magazine == nil && u.Amount == nil && u.Email == nil &&
		u.ModelInstaLink == nil && u.LeadSource == nil &&
		u.Notes == nil && u.NoteDate == nil
}

// UserUpdate carries the full replacement values for a user profile; callers
// fill in existing values for anything the request omitted.
type UserUpdate struct {
	EmailAddress   string
	ModelType      string
	StageName      string
	ModelInstaLink string
}
