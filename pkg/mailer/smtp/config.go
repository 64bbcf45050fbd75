package smtp

import "time"

// Config holds SMTP relay settings.
type Config struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Secure   bool          `env:"SMTP_SECURE" envDefault:"false"`
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}
