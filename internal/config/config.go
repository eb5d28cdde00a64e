package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the club portal.
type Config struct {
	Addr           string        `env:"ADDR,default=:8080"`
	DBDSN          string        `env:"DB_DSN,required"`
	BaseURL        string        `env:"BASE_URL,default=http://localhost:8080"`
	OTLPEndpoint   string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	SessionTTL     time.Duration `env:"SESSION_TTL,default=168h"`
	VerifyTokenTTL time.Duration `env:"VERIFY_TOKEN_TTL,default=24h"`
	CookieDomain   string        `env:"COOKIE_DOMAIN"`
	CookieSecure   bool          `env:"COOKIE_SECURE,default=false"`

	S3Endpoint       string `env:"S3_ENDPOINT,required"`
	S3Region         string `env:"S3_REGION,default=us-east-1"`
	S3AccessKey      string `env:"S3_ACCESS_KEY,required"`
	S3SecretKey      string `env:"S3_SECRET_KEY,required"`
	S3DisableTLS     bool   `env:"S3_DISABLE_TLS,default=false"`
	S3ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE,default=true"`
	AvatarBucket     string `env:"AVATAR_BUCKET,default=avatars"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`
	MailFrom     string `env:"MAIL_FROM,default=no-reply@club.local"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
