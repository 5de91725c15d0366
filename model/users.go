package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`         // lower-cased, trimmed
	Password  string             `bson:"password" json:"-"`          // bcrypt hash
	Role      Role               `bson:"role,omitempty" json:"role"` // empty for legacy records
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectiveRole treats a missing or unknown role as RoleUser.
func (u *User) EffectiveRole() Role {
	if u.Role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

func (u *User) IsAdmin() bool {
	return u.EffectiveRole() == RoleAdmin
}
