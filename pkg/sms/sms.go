package sms

import (
	"context"
	"fmt"
	"regexp"
)

// Sender represents an interface for sending SMS messages.
type Sender interface {
	SendSMS(ctx context.Context, params SendSMSParams) error
}

// SendSMSParams represents the parameters for sending an SMS.
type SendSMSParams struct {
	To   string `json:"to"`   // Recipient phone number in E.164 format
	Body string `json:"body"` // Message text
}

// phoneRegex accepts E.164-style numbers, optionally with a leading +.
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

// MaxBodyLength bounds the SMS body. Longer bodies are rejected rather
// than silently split into segments.
const MaxBodyLength = 1600

// Validate checks the parameters before a send attempt.
func (p SendSMSParams) Validate() error {
	if p.To == "" {
		return fmt.Errorf("%w: To is required", ErrInvalidParams)
	}
	if !phoneRegex.MatchString(p.To) {
		return fmt.Errorf("%w: To must be an E.164 phone number", ErrInvalidParams)
	}
	if p.Body == "" {
		return fmt.Errorf("%w: Body is required", ErrInvalidParams)
	}
	if len(p.Body) > MaxBodyLength {
		return fmt.Errorf("%w: Body exceeds %d characters", ErrInvalidParams, MaxBodyLength)
	}
	return nil
}
