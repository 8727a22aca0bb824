// Package mongostore implements storage.Store on top of MongoDB collections.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush-verma1708/backend-crm/models"
	"github.com/ayush-verma1708/backend-crm/storage"
)

const (
	recordsCollection = "records"
	usersCollection   = "users"
)

// Store talks to the records and users collections of one database.
type Store struct {
	records *mongo.Collection
	users   *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		records: db.Collection(recordsCollection),
		users:   db.Collection(usersCollection),
	}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) InsertRecord(ctx context.Context, rec *models.Record) error {
	res, err := s.records.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	rec.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindRecords(ctx context.Context, q storage.ListQuery) ([]models.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if q.Paginated() {
		opts.SetSkip(int64(q.Skip())).SetLimit(int64(q.Limit))
	}
	cur, err := s.records.Find(ctx, buildFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("finding records: %w", err)
	}
	defer cur.Close(ctx)

	records := []models.Record{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return records, nil
}

func (s *Store) CountRecords(ctx context.Context, q storage.ListQuery) (int64, error) {
	n, err := s.records.CountDocuments(ctx, buildFilter(q))
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

func (s *Store) SumAmounts(ctx context.Context, q storage.ListQuery) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(q)}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}
	cur, err := s.records.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("summing amounts: %w", err)
	}
	defer cur.Close(ctx)

	var out []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("decoding amount sum: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

func (s *Store) FindRecordByID(ctx context.Context, id string) (*models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any document.
		return nil, storage.ErrRecordNotFound
	}
	var rec models.Record
	err = s.records.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) FindRecordsByEmail(ctx context.Context, email string) ([]models.Record, error) {
	cur, err := s.records.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("finding records for %s: %w", email, err)
	}
	defer cur.Close(ctx)

	records := []models.Record{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding records for %s: %w", email, err)
	}
	return records, nil
}

func (s *Store) UpdateRecordByID(ctx context.Context, id string, u storage.RecordUpdate) (*models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrRecordNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec models.Record
	err = s.records.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": updateSet(u)}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) DeleteRecordByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrRecordNotFound
	}
	res, err := s.records.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrRecordNotFound
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"Email_Address": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", email, err)
	}
	return &user, nil
}

func (s *Store) UpdateUserByEmail(ctx context.Context, email string, u storage.UserUpdate) error {
	set := bson.M{
		"Email_Address":    u.EmailAddress,
		"Model_Type":       u.ModelType,
		"Stage_Name":       u.StageName,
		"Model_Insta_Link": u.ModelInstaLink,
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"Email_Address": email}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating user %s: %w", email, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

func updateSet(u storage.RecordUpdate) bson.M {
	set := bson.M{}
	if u.FirstName != nil {
		set["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		set["last_name"] = *u.LastName
	}
	if u.FullName != nil {
		set["full_name"] = *u.FullName
	}
	if u.Magazine != nil {
		set["magazine"] = *u.Magazine
	}
	if u.Amount != nil {
		set["amount"] = *u.Amount
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.ModelInstaLink != nil {
		set["model_insta_link"] = *u.ModelInstaLink
	}
	if u.LeadSource != nil {
		set["lead_source"] = *u.LeadSource
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}
	if u.NoteDate != nil {
		set["note_date"] = *u.NoteDate
	}
	return set
}
