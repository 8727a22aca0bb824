package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is a single sale/lead entry. FullName is derived from FirstName and
// LastName on every write; it is never accepted from a client directly.
type Record struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"first_name" json:"firstName"`
	LastName       string             `bson:"last_name" json:"lastName"`
	FullName       string             `bson:"full_name" json:"fullName"`
	Magazine       string             `bson:"magazine" json:"magazine"`
	Amount         float64            `bson:"amount" json:"amount"`
	Email          string             `bson:"email" json:"email"`
	ModelInstaLink string             `bson:"model_insta_link" json:"modelInstaLink"`
	LeadSource     string             `bson:"lead_source,omitempty" json:"leadSource,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	NoteDate       *time.Time         `bson:"note_date,omitempty" json:"noteDate,omitempty"`
}

// DeriveFullName joins the name parts the same way the stored full_name
// field is built.
func DeriveFullName(first, last string) string {
	return first + " " + last
}

// RecordPayload is the wire shape for create and update requests. Amount is a
// pointer so an absent amount is distinguishable from zero. ModelType and
// StageName only matter for the user-profile side of a cascade update.
type RecordPayload struct {
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Magazine       string     `json:"magazine"`
	Amount         *float64   `json:"amount"`
	Email          string     `json:"email"`
	ModelInstaLink string     `json:"modelInstaLink"`
	LeadSource     string     `json:"leadSource"`
	Notes          string     `json:"notes"`
	NoteDate       *time.Time `json:"noteDate"`
	ModelType      string     `json:"modelType"`
	StageName      string     `json:"stageName"`
}
