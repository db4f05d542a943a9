package postmark

// Config holds Postmark credentials and sender identity.
// Empty tokens mean the application falls back to the dev sender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
}

// Enabled reports whether enough credentials are present to send real mail.
func (c Config) Enabled() bool {
	return c.PostmarkServerToken != ""
}
