package domain

import "context"

// Submission is a job application left on the Jobly landing form.
// Only Name and TG are mandatory; empty optional fields are left out of the
// notification entirely.
type Submission struct {
	Name    string `json:"name" validate:"not_blank"`
	TG      string `json:"tg" validate:"not_blank"`
	Email   string `json:"email,omitempty"`
	Job     string `json:"job,omitempty"`
	City    string `json:"city,omitempty"`
	Message string `json:"message,omitempty"`
}

// RelayUsecase forwards submissions to the operators' Telegram chat.
type RelayUsecase interface {
	// Relay validates, formats and sends one submission. A nil error is
	// success; failures are *apperror.AppError classified by Kind.
	Relay(ctx context.Context, sub *Submission) error
}
