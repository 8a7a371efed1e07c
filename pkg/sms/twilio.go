package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates a Twilio-backed SMS sender. All credentials
// are required so that a misconfigured service fails at startup.
func NewTwilioSender(cfg Config) (Sender, error) {
	if cfg.TwilioAccountSID == "" {
		return nil, fmt.Errorf("%w: TwilioAccountSID is required", ErrInvalidConfig)
	}
	if cfg.TwilioAuthToken == "" {
		return nil, fmt.Errorf("%w: TwilioAuthToken is required", ErrInvalidConfig)
	}
	if cfg.FromNumber == "" || !phoneRegex.MatchString(cfg.FromNumber) {
		return nil, fmt.Errorf("%w: FromNumber must be an E.164 phone number", ErrInvalidConfig)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &twilioSender{client: client, from: cfg.FromNumber}, nil
}

func (s *twilioSender) SendSMS(ctx context.Context, params SendSMSParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := &twilioapi.CreateMessageParams{}
	msg.SetTo(params.To)
	msg.SetFrom(s.from)
	msg.SetBody(params.Body)

	resp, err := s.client.Api.CreateMessage(msg)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		reason := ""
		if resp.ErrorMessage != nil {
			reason = *resp.ErrorMessage
		}
		return errors.Join(ErrFailedToSend,
			fmt.Errorf("twilio error: %d - %s", *resp.ErrorCode, reason),
		)
	}
	return nil
}
