package ses

// Config holds Amazon SES settings. Empty keys fall back to the default AWS
// credential chain (environment, shared config, instance role).
type Config struct {
	Region           string `env:"SES_REGION" envDefault:"us-east-1"`
	AccessKey        string `env:"SES_ACCESS_KEY"`
	SecretKey        string `env:"SES_SECRET_KEY"`
	ConfigurationSet string `env:"SES_CONFIGURATION_SET"`
}
