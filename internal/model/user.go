package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the portal role of a user.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Roles lists every accepted role.
var Roles = []string{string(RoleStudent), string(RoleAdmin)}

// User is a portal account. Email is the natural identity key used by
// register and login but is not unique at the store level.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Role      Role          `bson:"role"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// UserInput carries the caller-supplied fields of a new user.
type UserInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role" validate:"omitempty,role"`
}

// LoginInput identifies a user by email only.
type LoginInput struct {
	Email string `json:"email" validate:"required,email"`
}
