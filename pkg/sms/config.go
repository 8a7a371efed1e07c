package sms

// Config holds SMS channel configuration. All fields are optional so
// deployments without an SMS provider can run with the dev sender.
type Config struct {
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber       string `env:"TWILIO_FROM_NUMBER"`
}

// Enabled reports whether config is complete enough to construct the
// Twilio sender.
func (c Config) Enabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.FromNumber != ""
}
