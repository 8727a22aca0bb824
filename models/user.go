package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the profile attached to an email address. There is at most one per
// distinct email across records; the join is by string equality, not a
// foreign key. Field names keep the legacy Email_Address style the users
// collection was created with.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmailAddress   string             `bson:"Email_Address" json:"Email_Address"`
	ModelType      string             `bson:"Model_Type" json:"Model_Type"`
	StageName      string             `bson:"Stage_Name" json:"Stage_Name"`
	ModelInstaLink string             `bson:"Model_Insta_Link" json:"Model_Insta_Link"`
}
