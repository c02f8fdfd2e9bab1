package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            int    `envconfig:"PORT" default:"8080"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL     string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL  int    `envconfig:"ACCESS_TOKEN_TTL_MINUTES" default:"15"`
	RefreshTokenTTL int    `envconfig:"REFRESH_TOKEN_TTL_HOURS" default:"168"`
	BcryptCost      int    `envconfig:"BCRYPT_COST" default:"12"`
	MailgunDomain   string `envconfig:"MAILGUN_DOMAIN" default:""`
	MailgunAPIKey   string `envconfig:"MAILGUN_API_KEY" default:""`
	MailFrom        string `envconfig:"MAIL_FROM" default:"noreply@taskforge.local"`
	MailQueueSize   int    `envconfig:"MAIL_QUEUE_SIZE" default:"64"`
	Version         string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
