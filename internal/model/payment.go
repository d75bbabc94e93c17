package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Payment is a manual payment record submitted by a student and verified by an admin.
type Payment struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	StudentID       string        `bson:"studentId"`
	ProjectID       *string       `bson:"projectId,omitempty"`
	Amount          float64       `bson:"amount"`
	TransactionID   *string       `bson:"transactionId,omitempty"`
	PaymentProofURL *string       `bson:"paymentProofURL,omitempty"`
	Verified        bool          `bson:"verified"`
	VerifiedBy      *string       `bson:"verifiedBy,omitempty"`
	VerifiedDate    *time.Time    `bson:"verifiedDate,omitempty"`
	CreatedAt       time.Time     `bson:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
}

// PaymentInput carries the fields of a new payment record.
type PaymentInput struct {
	StudentID       string   `json:"studentId" validate:"required"`
	ProjectID       *string  `json:"projectId"`
	Amount          *float64 `json:"amount" validate:"required,gte=0"`
	TransactionID   *string  `json:"transactionId"`
	PaymentProofURL *string  `json:"paymentProofURL"`
}

// PaymentPatch holds the mutable payment fields. Nil means leave unchanged.
type PaymentPatch struct {
	Verified     *bool      `json:"verified"`
	VerifiedBy   *string    `json:"verifiedBy"`
	VerifiedDate *time.Time `json:"verifiedDate"`
}

// Fields returns the present fields as a $set document.
func (p PaymentPatch) Fields() bson.D {
	var fields bson.D
	if p.Verified != nil {
		fields = append(fields, bson.E{Key: "verified", Value: *p.Verified})
	}
	if p.VerifiedBy != nil {
		fields = append(fields, bson.E{Key: "verifiedBy", Value: *p.VerifiedBy})
	}
	if p.VerifiedDate != nil {
		fields = append(fields, bson.E{Key: "verifiedDate", Value: p.VerifiedDate.UTC()})
	}
	return fields
}
