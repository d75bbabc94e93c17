package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message is a note exchanged between two users.
type Message struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	FromUserID string        `bson:"fromUserId"`
	ToUserID   string        `bson:"toUserId"`
	Content    string        `bson:"content"`
	CreatedAt  time.Time     `bson:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at"`
}

// MessageInput carries the fields of a new message.
type MessageInput struct {
	FromUserID string `json:"fromUserId" validate:"required"`
	ToUserID   string `json:"toUserId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}
