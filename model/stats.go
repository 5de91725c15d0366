package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type AdminStats struct {
	TotalUsers  int64     `json:"totalUsers"`
	TotalAdmins int64     `json:"totalAdmins"`
	TotalNotes  int64     `json:"totalNotes"`
	RecentUsers int64     `json:"recentUsers"` // non-admin users, trailing 7 days
	RecentNotes int64     `json:"recentNotes"` // trailing 7 days
	TopUsers    []TopUser `json:"topUsers"`
}

type TopUser struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	NoteCount int64              `bson:"noteCount" json:"noteCount"`
}

// RoleCount is one row of a group-by-role aggregation. Role is nil for
// records without a role field.
type RoleCount struct {
	Role  *string `bson:"_id"`
	Count int64   `bson:"count"`
}
