package resend

// Config holds Resend API settings.
type Config struct {
	APIKey string `env:"RESEND_API_KEY"`
	// BaseURL overrides the API endpoint, e.g. for a regional or mock server.
	BaseURL string `env:"RESEND_BASE_URL"`
}
