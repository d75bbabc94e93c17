package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Technology is the stack a project is built with.
type Technology string

const (
	TechnologyPython  Technology = "Python"
	TechnologyJava    Technology = "Java"
	TechnologyAIML    Technology = "AI/ML"
	TechnologyIoT     Technology = "IoT"
	TechnologyWeb     Technology = "Web"
	TechnologyAndroid Technology = "Android"
)

// Technologies lists every accepted technology.
var Technologies = []string{
	string(TechnologyPython),
	string(TechnologyJava),
	string(TechnologyAIML),
	string(TechnologyIoT),
	string(TechnologyWeb),
	string(TechnologyAndroid),
}

// ProjectStatus tracks a project through review and delivery.
type ProjectStatus string

const (
	ProjectStatusRequested     ProjectStatus = "Requested"
	ProjectStatusInReview      ProjectStatus = "In Review"
	ProjectStatusInDevelopment ProjectStatus = "In Development"
	ProjectStatusCompleted     ProjectStatus = "Completed"
)

// ProjectStatuses lists every accepted project status.
var ProjectStatuses = []string{
	string(ProjectStatusRequested),
	string(ProjectStatusInReview),
	string(ProjectStatusInDevelopment),
	string(ProjectStatusCompleted),
}

// PaymentStatus is the payment state recorded on a project.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
)

// PaymentStatuses lists every accepted project payment status.
var PaymentStatuses = []string{string(PaymentStatusPending), string(PaymentStatusVerified)}

// Project is a student's project request.
// StudentID is an unchecked reference to a user id.
type Project struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	StudentID       string        `bson:"studentId"`
	Title           string        `bson:"title"`
	Description     *string       `bson:"description,omitempty"`
	Technology      Technology    `bson:"technology"`
	Status          ProjectStatus `bson:"status"`
	PaymentStatus   PaymentStatus `bson:"paymentStatus"`
	PaymentProofURL *string       `bson:"paymentProofURL,omitempty"`
	AdminRemarks    *string       `bson:"adminRemarks,omitempty"`
	Deliverables    []string      `bson:"deliverables"`
	CreatedAt       time.Time     `bson:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
}

// ProjectInput carries the fields of a new project request. FileURL, when set,
// is attached as the first deliverable after creation.
type ProjectInput struct {
	StudentID       string         `json:"studentId" validate:"required"`
	Title           string         `json:"title" validate:"required"`
	Technology      Technology     `json:"technology" validate:"required,technology"`
	Description     *string        `json:"description"`
	FileURL         *string        `json:"fileUrl"`
	Status          *ProjectStatus `json:"status" validate:"omitempty,project_status"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus" validate:"omitempty,payment_status"`
	PaymentProofURL *string        `json:"paymentProofURL"`
}

// ProjectPatch holds the mutable project fields. Nil means leave unchanged.
// Deliverables replaces the stored set when present.
type ProjectPatch struct {
	Status        *ProjectStatus `json:"status" validate:"omitempty,project_status"`
	PaymentStatus *PaymentStatus `json:"paymentStatus" validate:"omitempty,payment_status"`
	AdminRemarks  *string        `json:"adminRemarks"`
	Deliverables  *[]string      `json:"deliverables"`
}

// Fields returns the present fields as a $set document.
func (p ProjectPatch) Fields() bson.D {
	var fields bson.D
	if p.Status != nil {
		fields = append(fields, bson.E{Key: "status", Value: *p.Status})
	}
	if p.PaymentStatus != nil {
		fields = append(fields, bson.E{Key: "paymentStatus", Value: *p.PaymentStatus})
	}
	if p.AdminRemarks != nil {
		fields = append(fields, bson.E{Key: "adminRemarks", Value: *p.AdminRemarks})
	}
	if p.Deliverables != nil {
		deliverables := *p.Deliverables
		if deliverables == nil {
			deliverables = []string{}
		}
		fields = append(fields, bson.E{Key: "deliverables", Value: deliverables})
	}
	return fields
}

// DeliverableInput attaches one file reference to a project.
type DeliverableInput struct {
	URL string `json:"url" validate:"required"`
}
