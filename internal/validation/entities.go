package validation

import (
	"strings"

	"studentportal/internal/model"
)

// User validates in and returns an unsaved user, defaulting role to student.
func (v *Validator) User(in model.UserInput) (*model.User, error) {
	if err := v.Validate(&in); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = model.RoleStudent
	}

	return &model.User{
		Name:  in.Name,
		Email: NormalizeEmail(in.Email),
		Role:  role,
	}, nil
}

// Project validates in and returns an unsaved project with status Requested,
// payment status pending and an empty deliverable set unless overridden.
// FileURL is not copied; attaching it is a separate operation.
func (v *Validator) Project(in model.ProjectInput) (*model.Project, error) {
	if err := v.Validate(&in); err != nil {
		return nil, err
	}

	project := &model.Project{
		StudentID:       in.StudentID,
		Title:           in.Title,
		Description:     in.Description,
		Technology:      in.Technology,
		Status:          model.ProjectStatusRequested,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentProofURL: in.PaymentProofURL,
		Deliverables:    []string{},
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.PaymentStatus != nil {
		project.PaymentStatus = *in.PaymentStatus
	}
	return project, nil
}

// Payment validates in and returns an unsaved, unverified payment.
func (v *Validator) Payment(in model.PaymentInput) (*model.Payment, error) {
	if err := v.Validate(&in); err != nil {
		return nil, err
	}

	return &model.Payment{
		StudentID:       in.StudentID,
		ProjectID:       in.ProjectID,
		Amount:          *in.Amount,
		TransactionID:   in.TransactionID,
		PaymentProofURL: in.PaymentProofURL,
		Verified:        false,
	}, nil
}

// Message validates in and returns an unsaved message.
func (v *Validator) Message(in model.MessageInput) (*model.Message, error) {
	if err := v.Validate(&in); err != nil {
		return nil, err
	}

	return &model.Message{
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		Content:    in.Content,
	}, nil
}

// ProjectPatch validates only the fields present in p.
func (v *Validator) ProjectPatch(p model.ProjectPatch) error {
	return v.Validate(&p)
}

// PaymentPatch validates only the fields present in p.
func (v *Validator) PaymentPatch(p model.PaymentPatch) error {
	return v.Validate(&p)
}

// NormalizeEmail lower-cases the domain part of an address. The local part is
// case sensitive and left alone.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
