package email

// Config holds email channel configuration. The Postmark tokens are
// optional to support development environments where outbound email is
// disabled; SenderEmail establishes the sender identity for all
// outbound mail and is required whenever a real sender is constructed.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
}

// Enabled reports whether config is complete enough to construct the
// Postmark sender.
func (c Config) Enabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != "" && c.SenderEmail != ""
}
